package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/fogleman/gg"

	"FearGreed/internal/model"
)

// Reference canvas the margins and font sizes are expressed in.
const (
	chartBaseW = 300.0
	chartBaseH = 200.0
)

var yTicks = []float64{0, 25, 50, 75, 100}

// Chart draws history as a line chart with a fixed 0-100 y axis.
func (r *Renderer) Chart(w io.Writer, history []model.HistoryPoint) error {
	if len(history) == 0 {
		return ErrNoData
	}
	st := r.style
	width := st.ChartWidth * st.Supersample
	height := st.ChartHeight * st.Supersample
	k := math.Min(float64(width)/chartBaseW, float64(height)/chartBaseH)

	dc := gg.NewContext(width, height)
	dc.SetHexColor(st.Background)
	dc.Clear()

	left, right := 26*k, float64(width)-8*k
	top, bottom := 22*k, float64(height)-20*k
	plotW, plotH := right-left, bottom-top

	offsets, first, dated := dayOffsets(history)
	span := offsets[len(offsets)-1]

	yOf := func(v float64) float64 { return bottom - v/100*plotH }
	xOf := func(off float64) float64 {
		if span <= 0 {
			return left + plotW/2
		}
		return left + off/span*plotW
	}

	// Grid and y labels
	dc.SetFontFace(r.face(false, 11*k))
	for _, v := range yTicks {
		y := yOf(v)
		dc.SetRGBA(1, 1, 1, st.GridAlpha)
		dc.SetLineWidth(0.5 * k)
		dc.DrawLine(left, y, right, y)
		dc.Stroke()
		dc.SetHexColor(st.Foreground)
		dc.DrawStringAnchored(strconv.Itoa(int(v)), left-4*k, y, 1, 0.5)
	}

	// X labels
	for _, tick := range dateTicks(history, offsets, first, dated, st.TickEvery) {
		x := xOf(tick.Offset)
		dc.SetRGBA(1, 1, 1, st.GridAlpha)
		dc.SetLineWidth(0.5 * k)
		dc.DrawLine(x, top, x, bottom)
		dc.Stroke()
		dc.SetHexColor(st.Foreground)
		dc.DrawStringAnchored(tick.Label, x, bottom+4*k, 0.5, 1)
	}

	// Axes: left and bottom only
	dc.SetHexColor(st.Foreground)
	dc.SetLineWidth(0.5 * k)
	dc.DrawLine(left, top, left, bottom)
	dc.DrawLine(left, bottom, right, bottom)
	dc.Stroke()

	// Series
	if err := setHexAlpha(dc, st.Line, st.LineAlpha); err != nil {
		return err
	}
	dc.SetLineWidth(st.LineWidth * k)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for i, p := range history {
		if i == 0 {
			dc.MoveTo(xOf(offsets[i]), yOf(p.Value))
			continue
		}
		dc.LineTo(xOf(offsets[i]), yOf(p.Value))
	}
	if len(history) == 1 {
		dc.DrawCircle(xOf(offsets[0]), yOf(history[0].Value), st.LineWidth*k)
		dc.Fill()
	} else {
		dc.Stroke()
	}

	dc.SetHexColor(st.Muted)
	dc.SetFontFace(r.face(false, 10*k))
	dc.DrawStringAnchored(lastUpdatedChart(st), right, top/2, 1, 0.5)

	return writeScaled(w, dc, st.ChartWidth, st.ChartHeight)
}

// ChartFile renders the chart to path.
func (r *Renderer) ChartFile(path string, history []model.HistoryPoint) error {
	return writeFile(path, func(w io.Writer) error { return r.Chart(w, history) })
}

type xTick struct {
	Offset float64
	Label  string
}

// dayOffsets positions each point by its distance in days from the first
// point, so gaps in the series stay visible. If any date fails to parse, the
// points are spaced evenly by index instead.
func dayOffsets(history []model.HistoryPoint) (offsets []float64, first time.Time, dated bool) {
	offsets = make([]float64, len(history))
	for i, p := range history {
		t, err := p.Time(nil)
		if err != nil {
			for j := range offsets {
				offsets[j] = float64(j)
			}
			return offsets, time.Time{}, false
		}
		if i == 0 {
			first = t
		}
		offsets[i] = math.Round(t.Sub(first).Hours() / 24)
	}
	return offsets, first, true
}

// dateTicks labels every `every` calendar days starting at the first date.
// Undated series get a label every `every` points.
func dateTicks(history []model.HistoryPoint, offsets []float64, first time.Time, dated bool, every int) []xTick {
	var ticks []xTick
	if !dated {
		for i := 0; i < len(history); i += every {
			ticks = append(ticks, xTick{Offset: offsets[i], Label: history[i].Date})
		}
		return ticks
	}
	span := offsets[len(offsets)-1]
	for d := 0; float64(d) <= span; d += every {
		ticks = append(ticks, xTick{Offset: float64(d), Label: first.AddDate(0, 0, d).Format("01/02")})
	}
	return ticks
}

func lastUpdatedChart(st Style) string {
	return "Last updated: " + st.now().Format("2006-01-02 15:04")
}

func setHexAlpha(dc *gg.Context, hex string, alpha float64) error {
	if len(hex) != 7 || hex[0] != '#' {
		return fmt.Errorf("parse color %q: want #RRGGBB", hex)
	}
	rgb, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return fmt.Errorf("parse color %q: %w", hex, err)
	}
	dc.SetRGBA(float64(rgb>>16&0xFF)/255, float64(rgb>>8&0xFF)/255, float64(rgb&0xFF)/255, alpha)
	return nil
}
