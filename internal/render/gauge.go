package render

import (
	"io"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"FearGreed/internal/model"
)

const (
	gaugeBase     = 200.0
	gaugeSegments = 100
)

// gradient stops from red through yellow to green, left to right.
var gaugeStops = [][3]float64{
	{0.84, 0.19, 0.15},
	{0.99, 0.68, 0.38},
	{1.00, 1.00, 0.75},
	{0.65, 0.85, 0.42},
	{0.10, 0.60, 0.31},
}

// Gauge draws a half-circle dial with the needle at p.Value.
func (r *Renderer) Gauge(w io.Writer, p model.HistoryPoint) error {
	st := r.style
	size := st.GaugeSize * st.Supersample
	k := float64(size) / gaugeBase

	dc := gg.NewContext(size, size)
	dc.SetHexColor(st.Background)
	dc.Clear()

	cx, cy := float64(size)/2, 95*k
	radius := 75 * k
	band := 14 * k

	dc.SetLineCapButt()
	dc.SetLineWidth(band)
	dc.SetRGBA(0.2, 0.2, 0.2, 0.3)
	dc.DrawArc(cx, cy, radius, math.Pi, 2*math.Pi)
	dc.Stroke()

	for i := 0; i < gaugeSegments; i++ {
		f := float64(i) / float64(gaugeSegments-1)
		c := gradientAt(f)
		dc.SetRGB(c[0], c[1], c[2])
		a1 := math.Pi + float64(i)/gaugeSegments*math.Pi
		a2 := math.Pi + float64(i+1)/gaugeSegments*math.Pi
		dc.DrawArc(cx, cy, radius, a1, a2)
		dc.Stroke()
	}

	angle := NeedleAngle(p.Value)
	nx := cx + 0.8*radius*math.Cos(angle)
	ny := cy + 0.8*radius*math.Sin(angle)
	dc.SetHexColor(st.Foreground)
	dc.SetLineCapRound()
	dc.SetLineWidth(6 * k)
	dc.DrawLine(cx, cy, nx, ny)
	dc.Stroke()
	dc.DrawCircle(nx, ny, 0.05*radius)
	dc.Fill()
	dc.DrawCircle(cx, cy, 0.08*radius)
	dc.Fill()

	dc.SetFontFace(r.face(true, 30*k))
	dc.DrawStringAnchored(strconv.Itoa(int(p.Value)), cx, cy+0.3*radius+12*k, 0.5, 0.5)

	dc.SetHexColor(st.StatusColor(p.Status))
	dc.SetFontFace(r.face(true, 22*k))
	dc.DrawStringAnchored(string(p.Status), cx, cy+0.5*radius+30*k, 0.5, 0.5)

	dc.SetHexColor(st.GaugeMuted)
	dc.SetFontFace(r.face(false, 9*k))
	dc.DrawStringAnchored(lastUpdatedGauge(st), cx, cy+0.7*radius+42*k, 0.5, 0.5)

	return writeScaled(w, dc, st.GaugeSize, st.GaugeSize)
}

// GaugeFile renders the gauge to path.
func (r *Renderer) GaugeFile(path string, p model.HistoryPoint) error {
	return writeFile(path, func(w io.Writer) error { return r.Gauge(w, p) })
}

// NeedleAngle maps a value to a canvas angle in radians: 0 points left (pi),
// 100 points right (2*pi). Out-of-range values are pinned to the dial ends.
func NeedleAngle(value float64) float64 {
	v := math.Max(0, math.Min(100, value))
	return math.Pi + v/100*math.Pi
}

func gradientAt(f float64) [3]float64 {
	if f <= 0 {
		return gaugeStops[0]
	}
	if f >= 1 {
		return gaugeStops[len(gaugeStops)-1]
	}
	pos := f * float64(len(gaugeStops)-1)
	i := int(pos)
	t := pos - float64(i)
	a, b := gaugeStops[i], gaugeStops[i+1]
	return [3]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func lastUpdatedGauge(st Style) string {
	return "Last updated: " + st.now().Format("2006. 01. 02. PM 03:04")
}
