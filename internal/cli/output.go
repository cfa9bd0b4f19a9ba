package cli

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"FearGreed/internal/model"
)

var statusColors = map[model.Status]*color.Color{
	model.StatusExtremeFear:  color.New(color.FgRed, color.Bold),
	model.StatusFear:         color.New(color.FgRed),
	model.StatusNeutral:      color.New(color.FgYellow),
	model.StatusGreed:        color.New(color.FgGreen),
	model.StatusExtremeGreed: color.New(color.FgGreen, color.Bold),
}

func colorStatus(s model.Status) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(s.String())
	}
	return s.String()
}

// printHistoryTable prints history newest first.
func printHistoryTable(w io.Writer, history []model.HistoryPoint) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Value", "Status"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		p := history[i]
		data = append(data, []string{
			p.Date,
			strconv.FormatFloat(p.Value, 'f', 1, 64),
			colorStatus(p.Status),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func printJSON(w io.Writer, history []model.HistoryPoint) error {
	if history == nil {
		history = []model.HistoryPoint{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(history)
}
