package cli

import (
	"github.com/spf13/cobra"

	"FearGreed/internal/collector"
	"FearGreed/internal/snapshot"
)

func newFetchCmd(load configLoader) *cobra.Command {
	var (
		days   int
		out    string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the index history and print it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if days == 0 {
				days = cfg.History.DefaultDays
			}
			if err := checkDays(days, cfg.History.MaxDays); err != nil {
				return err
			}

			col := collector.NewCollector(newSource(cfg), nil)
			history, err := col.FetchHistory(cmd.Context(), days)
			if err != nil {
				return err
			}

			if out != "" {
				if err := snapshot.Save(out, history); err != nil {
					return err
				}
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), history)
			}
			return printHistoryTable(cmd.OutOrStdout(), history)
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "number of trailing days (default history.default_days)")
	cmd.Flags().StringVar(&out, "out", "", "also write the history as a JSON snapshot to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
