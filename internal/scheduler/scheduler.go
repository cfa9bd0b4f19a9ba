package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"FearGreed/internal/collector"
	"FearGreed/internal/model"
	"FearGreed/internal/notifier"
	"FearGreed/internal/recorder"
	"FearGreed/internal/render"
	"FearGreed/internal/snapshot"
)

// Notifier delivers refresh summaries. A nil Notifier disables notifications.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Options configures what a refresh fetches and where it writes.
type Options struct {
	HistoryDays int
	ChartDays   int
	HistoryFile string
	ChartFile   string
	GaugeFile   string
}

// Scheduler manages the periodic refresh of the snapshot, database and images.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Renderer  *render.Renderer
	Notifier  Notifier
	Clock     clockwork.Clock
	Options   Options
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. A nil clock means the real clock.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, rdr *render.Renderer, n Notifier, clock clockwork.Clock, opts Options) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  rec,
		Renderer:  rdr,
		Notifier:  n,
		Clock:     clock,
		Options:   opts,
		Ctx:       ctx,
	}
}

// Register adds the refresh task on the given six-field cron spec.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a refresh immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh task")
	if err := s.Refresh(s.Ctx); err != nil {
		log.Printf("[ERROR] refresh: %v", err)
	}
}

// Refresh fetches the history once and fans it out to the snapshot file, the
// recorder, both images and the notifier. A failed fetch stops the refresh;
// failures after that are logged and joined into the returned error.
func (s *Scheduler) Refresh(ctx context.Context) error {
	started := s.Clock.Now()
	history, fetchErr := s.Collector.FetchHistory(ctx, s.Options.HistoryDays)

	run := &model.FetchRun{
		ID:        uuid.NewString(),
		Source:    s.Collector.Source.Name(),
		Days:      s.Options.HistoryDays,
		Points:    len(history),
		StartedAt: started,
		Duration:  s.Clock.Since(started),
	}
	if fetchErr != nil {
		run.Err = fetchErr.Error()
	}
	if err := s.Recorder.RecordFetch(run); err != nil {
		log.Printf("[ERROR] record fetch run: %v", err)
	}
	if fetchErr != nil {
		return fetchErr
	}
	if len(history) == 0 {
		return fmt.Errorf("refresh: %w", render.ErrNoData)
	}
	log.Printf("[INFO] fetched %d points (run %s)", len(history), run.ID)

	var errs []error
	if s.Options.HistoryFile != "" {
		if err := snapshot.Save(s.Options.HistoryFile, history); err != nil {
			errs = append(errs, fmt.Errorf("save snapshot: %w", err))
		}
	}
	if err := s.Recorder.RecordHistory(history); err != nil {
		errs = append(errs, fmt.Errorf("record history: %w", err))
	}
	if s.Renderer != nil {
		if s.Options.ChartFile != "" {
			if err := s.Renderer.ChartFile(s.Options.ChartFile, tail(history, s.Options.ChartDays)); err != nil {
				errs = append(errs, fmt.Errorf("render chart: %w", err))
			}
		}
		if s.Options.GaugeFile != "" {
			if err := s.Renderer.GaugeFile(s.Options.GaugeFile, history[len(history)-1]); err != nil {
				errs = append(errs, fmt.Errorf("render gauge: %w", err))
			}
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.Send(ctx, notifier.FormatLatest(tail(history, 2))); err != nil {
			errs = append(errs, fmt.Errorf("notify: %w", err))
		}
	}
	return errors.Join(errs...)
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/latest", "지수":
		history, err := s.Collector.FetchHistory(ctx, 2)
		if err != nil {
			return fmt.Sprintf("❌ 데이터 조회 실패: %v", err)
		}
		return notifier.FormatLatest(history)
	case "/history", "기록":
		history, err := s.Collector.FetchHistory(ctx, 7)
		if err != nil {
			return fmt.Sprintf("❌ 데이터 조회 실패: %v", err)
		}
		return notifier.FormatHistory(history)
	case "/refresh", "갱신":
		if err := s.Refresh(ctx); err != nil {
			return fmt.Sprintf("❌ 갱신 실패: %v", err)
		}
		return ""
	default:
		return "사용 가능한 명령:\n• /latest\n• /history\n• /refresh"
	}
}

func tail(history []model.HistoryPoint, n int) []model.HistoryPoint {
	if n > 0 && len(history) > n {
		return history[len(history)-n:]
	}
	return history
}
