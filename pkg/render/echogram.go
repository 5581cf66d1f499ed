package render

import (
	"context"
	"image/color"
	"math"
	"time"

	"gonum.org/v1/plot"

	"github.com/echoplot/echoplot/pkg/colorscale"
	"github.com/echoplot/echoplot/pkg/grid"
	"github.com/echoplot/echoplot/pkg/observability"
)

// legendColors is the number of samples drawn in a colour bar.
const legendColors = 256

// RenderSv renders an Sv grid with the context's colour scale. Cells where
// mask is zero, and NaN cells, are drawn in the scale's invalid colour. A nil
// mask keeps every cell.
//
// On success the raster becomes the context's current raster. On error the
// current raster is left as it was.
func (c *Context) RenderSv(ctx context.Context, sv, mask *grid.Grid, opts ...RenderOption) (r *Raster, err error) {
	masked, err := grid.Apply(sv, mask)
	if err != nil {
		return nil, err
	}
	rows, cols := masked.Dims()

	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, c.id, string(KindSv), rows, cols)
	defer func() {
		hooks.OnRenderComplete(ctx, c.id, string(KindSv), time.Since(start), err)
	}()

	s := c.scale
	heat := svHeat(s)
	levels := make([]float64, rows*cols)
	buckets := make([]colorscale.Bucket, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			b := colorscale.Invalid
			if cell := masked.At(i, j); cell.Valid {
				b = s.Bucket(cell.Value)
			}
			buckets[i*cols+j] = b
			levels[i*cols+j] = bucketLevel(b, heat)
		}
	}

	r = newRaster(KindSv, rows, cols, heat, levels)
	r.buckets = buckets
	r.Legend = Legend{
		ColorMap: s.ColorMap(),
		Min:      s.Min(),
		Max:      s.Max(),
		Ticks:    boundaryTicks(s),
	}
	newRenderConfig(opts).apply(r)

	c.logger.Debug("rendered sv", "run", c.id, "rows", rows, "cols", cols,
		"masked", masked.InvalidCount(), "scale", s.Name())
	c.current = r
	return r, nil
}

// svHeat lays the scale's interior bins out as heat map levels 0..bins-1.
func svHeat(s colorscale.Scale) heatSpec {
	bins := s.Bins()
	pal := make([]color.Color, bins)
	for i := range pal {
		pal[i] = s.Color(colorscale.Bucket(i))
	}
	return heatSpec{
		palette: pal,
		min:     0,
		max:     math.Max(float64(bins-1), 1),
		under:   s.UnderColor(),
		over:    s.OverColor(),
		undef:   s.InvalidColor(),
	}
}

func bucketLevel(b colorscale.Bucket, h heatSpec) float64 {
	switch b {
	case colorscale.Under:
		return h.min - 1
	case colorscale.Over:
		return h.max + 1
	case colorscale.Invalid:
		return math.NaN()
	default:
		return float64(b)
	}
}

func boundaryTicks(s colorscale.Scale) []plot.Tick {
	bounds := s.Boundaries()
	labels := s.Labels()
	ticks := make([]plot.Tick, len(bounds))
	for i, b := range bounds {
		ticks[i] = plot.Tick{Value: b, Label: labels[i]}
	}
	return ticks
}
