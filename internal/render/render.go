package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to render")

// Renderer draws charts and gauges with a fixed Style.
type Renderer struct {
	style   Style
	regular *truetype.Font
	bold    *truetype.Font
}

// NewRenderer parses the bundled Go fonts and validates the style sizes.
func NewRenderer(style Style) (*Renderer, error) {
	if style.ChartWidth <= 0 || style.ChartHeight <= 0 || style.GaugeSize <= 0 {
		return nil, fmt.Errorf("render: image sizes must be positive")
	}
	if style.Supersample < 1 {
		style.Supersample = 1
	}
	if style.TickEvery < 1 {
		style.TickEvery = 15
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Renderer{style: style, regular: regular, bold: bold}, nil
}

func (r *Renderer) face(bold bool, size float64) font.Face {
	f := r.regular
	if bold {
		f = r.bold
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

// writeScaled downsizes the drawn canvas to w x h and encodes it as PNG.
func writeScaled(out io.Writer, dc *gg.Context, w, h int) error {
	src := dc.Image()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	if err := png.Encode(out, dst); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// writeFile renders into a temp sibling of path and renames it into place.
func writeFile(path string, renderFn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := renderFn(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
