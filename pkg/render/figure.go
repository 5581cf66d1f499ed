package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultBarWidth is the width reserved for the colour bar.
const DefaultBarWidth = vg.Inch

// Figure is a raster laid out for output: the heat map on the left and its
// colour bar on the right.
type Figure struct {
	Main     *plot.Plot
	Bar      *plot.Plot
	BarWidth vg.Length
}

// Figure builds the plots for r. Row 0 is drawn at the top.
func (r *Raster) Figure() *Figure {
	main := plot.New()
	main.Title.Text = r.Title
	main.X.Label.Text = r.XLabel
	main.Y.Label.Text = r.YLabel
	main.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	if len(r.YTicks) > 0 {
		main.Y.Tick.Marker = plot.ConstantTicks(r.YTicks)
	}
	main.Add(&plotter.HeatMap{
		GridXYZ:   heatGrid{rows: r.Rows, cols: r.Cols, levels: r.levels},
		Palette:   colors(r.heat.palette),
		Underflow: r.heat.under,
		Overflow:  r.heat.over,
		NaN:       r.heat.undef,
		Min:       r.heat.min,
		Max:       r.heat.max,
	})

	bar := plot.New()
	bar.HideX()
	bar.Add(&plotter.ColorBar{
		ColorMap: r.Legend.ColorMap,
		Vertical: true,
		Colors:   legendColors,
	})
	if len(r.Legend.Ticks) > 0 {
		bar.Y.Tick.Marker = plot.ConstantTicks(r.Legend.Ticks)
	}
	// Match the main plot's title band so the bar lines up with the heat map.
	if r.Title != "" {
		bar.Title.Text = " "
	}

	return &Figure{Main: main, Bar: bar, BarWidth: DefaultBarWidth}
}

// Draw paints the figure on c.
func (f *Figure) Draw(c draw.Canvas) {
	w := c.Max.X - c.Min.X
	barW := f.BarWidth
	if barW > w/2 {
		barW = w / 2
	}
	f.Main.Draw(draw.Crop(c, 0, -barW, 0, 0))
	f.Bar.Draw(draw.Crop(c, w-barW, 0, 0, 0))
}

// heatGrid exposes raster levels to plotter.HeatMap, one unit per cell.
type heatGrid struct {
	rows, cols int
	levels     []float64
}

func (g heatGrid) Dims() (c, r int)   { return g.cols, g.rows }
func (g heatGrid) Z(c, r int) float64 { return g.levels[r*g.cols+c] }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(r) }

type colors []color.Color

func (p colors) Colors() []color.Color { return p }
