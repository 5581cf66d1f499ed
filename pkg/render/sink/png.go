package sink

import (
	"bytes"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/echoplot/echoplot/pkg/errors"
)

// Default figure geometry.
const (
	DefaultDPI    = 300
	DefaultWidth  = 6.4 // inches
	DefaultHeight = 4.8 // inches
)

// Drawer paints a figure onto a canvas.
type Drawer interface {
	Draw(c draw.Canvas)
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	dpi           int
	width, height float64
}

// WithDPI sets the output resolution in dots per inch (default 300).
func WithDPI(dpi int) PNGOption {
	return func(r *pngRenderer) { r.dpi = dpi }
}

// WithSize sets the figure size in inches (default 6.4x4.8).
func WithSize(width, height float64) PNGOption {
	return func(r *pngRenderer) { r.width, r.height = width, height }
}

// RenderPNG draws d and encodes the result as PNG.
func RenderPNG(d Drawer, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{dpi: DefaultDPI, width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errors.ValidateDPI(r.dpi); err != nil {
		return nil, err
	}
	if err := errors.ValidateFigureSize(r.width, r.height); err != nil {
		return nil, err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(r.width)*vg.Inch, vg.Length(r.height)*vg.Inch),
		vgimg.UseDPI(r.dpi),
	)
	d.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
