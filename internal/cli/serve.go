package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"FearGreed/internal/collector"
	"FearGreed/internal/config"
	"FearGreed/internal/metrics"
	"FearGreed/internal/notifier"
	"FearGreed/internal/recorder"
	"FearGreed/internal/scheduler"
	"FearGreed/internal/server"
)

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the refresh scheduler.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	log.Println("[INFO] FearGreed starting...")

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := metrics.NewRegistry()
	upstream := metrics.NewUpstreamMetrics(reg)
	source := upstream.Instrument(newSource(cfg))
	log.Printf("[INFO] data source: %s", source.Name())

	col := collector.NewCollector(source, nil)

	rdr, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, nil)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	var tn *notifier.TelegramNotifier
	var n scheduler.Notifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	}

	sched := scheduler.NewScheduler(ctx, col, rec, rdr, n, nil, scheduler.Options{
		HistoryDays: cfg.History.MaxDays,
		ChartDays:   cfg.Render.ChartDays,
		HistoryFile: cfg.Output.HistoryFile,
		ChartFile:   cfg.Output.ChartFile,
		GaugeFile:   cfg.Output.GaugeFile,
	})
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh now")
		go sched.RunNow()
	}

	srv := server.NewServer(server.Options{
		Addr:        cfg.Server.Addr,
		DefaultDays: cfg.History.DefaultDays,
		MaxDays:     cfg.History.MaxDays,
		ChartDays:   cfg.Render.ChartDays,
	}, col, rdr, reg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] %v", err)
	}
	log.Println("[INFO] FearGreed stopped")
	return nil
}
