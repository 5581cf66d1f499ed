package render

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"

	"github.com/echoplot/echoplot/pkg/colorscale"
)

// Kind identifies what a raster was rendered from.
type Kind string

const (
	KindSv   Kind = "sv"
	KindMask Kind = "mask"
)

// Legend describes the colour bar drawn next to a raster.
type Legend struct {
	// ColorMap colours the bar between Min and Max.
	ColorMap palette.ColorMap
	Min, Max float64
	// Ticks label the bar. For Sv renders they sit on the scale boundaries.
	Ticks []plot.Tick
}

// Raster is a rendered grid: one pixel per cell plus its legend.
// A Raster is not modified after it is returned.
type Raster struct {
	Kind       Kind
	Rows, Cols int

	Title  string
	XLabel string
	YLabel string
	YTicks []plot.Tick

	Legend Legend

	img     *image.NRGBA
	buckets []colorscale.Bucket
	heat    heatSpec
	levels  []float64
}

// Image returns the raster pixels, Cols wide and Rows high. The returned
// image must not be modified.
func (r *Raster) Image() *image.NRGBA {
	return r.img
}

// At returns the colour of cell (i, j).
func (r *Raster) At(i, j int) color.NRGBA {
	return r.img.NRGBAAt(j, i)
}

// Bucket returns the scale bucket of cell (i, j) for Sv rasters.
// Mask rasters report colorscale.Invalid for NaN cells and 0 otherwise.
func (r *Raster) Bucket(i, j int) colorscale.Bucket {
	if r.buckets == nil {
		if math.IsNaN(r.levels[i*r.Cols+j]) {
			return colorscale.Invalid
		}
		return 0
	}
	return r.buckets[i*r.Cols+j]
}

// Counts returns the number of cells in each bucket.
func (r *Raster) Counts() map[colorscale.Bucket]int {
	out := make(map[colorscale.Bucket]int)
	for i := 0; i < r.Rows; i++ {
		for j := 0; j < r.Cols; j++ {
			out[r.Bucket(i, j)]++
		}
	}
	return out
}

// heatSpec maps per-cell levels to colours exactly the way gonum's
// plotter.HeatMap does, so the raster pixels and the drawn figure agree.
type heatSpec struct {
	palette            []color.Color
	min, max           float64
	under, over, undef color.Color
}

func (h heatSpec) color(v float64) color.Color {
	switch {
	case math.IsNaN(v):
		return h.undef
	case v < h.min:
		return h.under
	case v > h.max:
		return h.over
	}
	if len(h.palette) == 1 || h.max == h.min {
		return h.palette[0]
	}
	ps := float64(len(h.palette)-1) / (h.max - h.min)
	return h.palette[int((v-h.min)*ps+0.5)]
}

func newRaster(kind Kind, rows, cols int, heat heatSpec, levels []float64) *Raster {
	r := &Raster{
		Kind:   kind,
		Rows:   rows,
		Cols:   cols,
		XLabel: "columns",
		YLabel: "rows",
		img:    image.NewNRGBA(image.Rect(0, 0, cols, rows)),
		heat:   heat,
		levels: levels,
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c := color.NRGBAModel.Convert(heat.color(levels[i*cols+j])).(color.NRGBA)
			r.img.SetNRGBA(j, i, c)
		}
	}
	return r
}
