// Package render draws the sentiment history as a line chart and the latest
// score as a gauge, both as downscaled PNG images.
package render

import (
	"time"

	"github.com/jonboulle/clockwork"

	"FearGreed/internal/model"
)

// Style carries every visual parameter. Nothing in this package reads
// process-wide state; two renderers with different styles may run side by side.
type Style struct {
	Background string
	Foreground string
	Muted      string
	GaugeMuted string
	Line       string
	LineAlpha  float64
	LineWidth  float64
	GridAlpha  float64

	ChartWidth  int
	ChartHeight int
	GaugeSize   int

	// Supersample is the factor images are drawn at before downscaling.
	Supersample int
	// TickEvery is the spacing of x-axis date labels, in calendar days.
	TickEvery int

	StatusColors map[model.Status]string

	Location *time.Location
	Clock    clockwork.Clock
}

// DefaultStyle returns the dark theme: cyan line, red-to-green gauge, Seoul time.
func DefaultStyle() Style {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return Style{
		Background: "#000000",
		Foreground: "#FFFFFF",
		Muted:      "#CCCCCC",
		GaugeMuted: "#888888",
		Line:       "#00BFFF",
		LineAlpha:  0.9,
		LineWidth:  2.5,
		GridAlpha:  0.2,

		ChartWidth:  300,
		ChartHeight: 200,
		GaugeSize:   200,

		Supersample: 4,
		TickEvery:   15,

		StatusColors: map[model.Status]string{
			model.StatusExtremeFear:  "#FF4444",
			model.StatusFear:         "#FF8844",
			model.StatusNeutral:      "#FFAA44",
			model.StatusGreed:        "#44AA44",
			model.StatusExtremeGreed: "#44FF44",
		},

		Location: loc,
		Clock:    clockwork.NewRealClock(),
	}
}

// StatusColor returns the hex color for a label, white for unknown labels.
func (s Style) StatusColor(status model.Status) string {
	if c, ok := s.StatusColors[status]; ok {
		return c
	}
	return "#FFFFFF"
}

func (s Style) now() time.Time {
	clock := s.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return clock.Now().In(loc)
}
