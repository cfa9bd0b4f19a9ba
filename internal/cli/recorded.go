package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"FearGreed/internal/recorder"
)

func newRecordedCmd(load configLoader) *cobra.Command {
	var (
		days   int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "recorded",
		Short: "Print the history stored in the SQLite database.",
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

			rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, nil)
			if err != nil {
				return err
			}
			defer rec.Close()

			history, err := rec.LoadHistory(days)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), history)
			}
			if err := printHistoryTable(cmd.OutOrStdout(), history); err != nil {
				return err
			}

			runs, err := rec.CountFetches()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d points, %d fetch runs recorded\n", len(history), runs)
			return err
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "number of most recent days (default history.default_days)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
