package render

import (
	"context"
	"image/color"
	"time"

	"github.com/echoplot/echoplot/pkg/colorscale"
	"github.com/echoplot/echoplot/pkg/grid"
	"github.com/echoplot/echoplot/pkg/observability"
)

// maskPaletteSize is the number of colours sampled from the mask ramp.
const maskPaletteSize = 256

// RenderMask renders a mask or flag grid with the context's continuous ramp,
// scaled to the grid's own finite range. NaN cells are drawn black. The
// raster becomes the context's current raster.
func (c *Context) RenderMask(ctx context.Context, mask *grid.Grid, opts ...RenderOption) (r *Raster, err error) {
	if err := grid.Validate(mask); err != nil {
		return nil, err
	}
	rows, cols := mask.Dims()

	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, c.id, string(KindMask), rows, cols)
	defer func() {
		hooks.OnRenderComplete(ctx, c.id, string(KindMask), time.Since(start), err)
	}()

	lo, hi := maskRange(mask)
	cm, err := colorscale.Ramp(c.ramp)
	if err != nil {
		return nil, err
	}
	cm.SetMin(lo)
	cm.SetMax(hi)

	pal := cm.Palette(maskPaletteSize).Colors()
	heat := heatSpec{
		palette: pal,
		min:     lo,
		max:     hi,
		under:   pal[0],
		over:    pal[len(pal)-1],
		undef:   color.NRGBA{A: 255},
	}

	levels := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			levels[i*cols+j] = mask.At(i, j)
		}
	}

	r = newRaster(KindMask, rows, cols, heat, levels)
	r.Legend = Legend{ColorMap: cm, Min: lo, Max: hi}
	newRenderConfig(opts).apply(r)

	c.logger.Debug("rendered mask", "run", c.id, "rows", rows, "cols", cols,
		"min", lo, "max", hi, "ramp", c.ramp)
	c.current = r
	return r, nil
}

// maskRange returns the colour range for a mask: its finite extent, widened
// to a unit interval when the grid is constant or has no finite values.
func maskRange(g *grid.Grid) (lo, hi float64) {
	lo, hi, ok := g.Range()
	switch {
	case !ok:
		return 0, 1
	case lo == hi:
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}
