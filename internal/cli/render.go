package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"FearGreed/internal/collector"
	"FearGreed/internal/model"
	"FearGreed/internal/render"
	"FearGreed/internal/snapshot"
)

func newRenderCmd(load configLoader) *cobra.Command {
	var (
		days  int
		input string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the chart and gauge images.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if days == 0 {
				days = cfg.Render.ChartDays
			}
			if err := checkDays(days, cfg.History.MaxDays); err != nil {
				return err
			}

			var history []model.HistoryPoint
			if input != "" {
				history, err = snapshot.Load(input)
			} else {
				history, err = collector.NewCollector(newSource(cfg), nil).FetchHistory(cmd.Context(), days)
			}
			if err != nil {
				return err
			}
			if len(history) == 0 {
				return render.ErrNoData
			}
			if len(history) > days {
				history = history[len(history)-days:]
			}

			rdr, err := newRenderer(cfg)
			if err != nil {
				return err
			}
			if err := rdr.ChartFile(cfg.Output.ChartFile, history); err != nil {
				return fmt.Errorf("render chart: %w", err)
			}
			if err := rdr.GaugeFile(cfg.Output.GaugeFile, history[len(history)-1]); err != nil {
				return fmt.Errorf("render gauge: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", cfg.Output.ChartFile, cfg.Output.GaugeFile)
			return err
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "number of trailing days to chart (default render.chart_days)")
	cmd.Flags().StringVar(&input, "input", "", "render from this snapshot file instead of fetching")
	return cmd
}
