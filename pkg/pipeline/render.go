package pipeline

import (
	"context"
	"strconv"
	"strings"

	"gonum.org/v1/plot"

	"github.com/echoplot/echoplot/pkg/cache"
	"github.com/echoplot/echoplot/pkg/grid"
	"github.com/echoplot/echoplot/pkg/render"
)

// Render draws in on a fresh render context and returns the raster with its
// encoded PNG.
func Render(ctx context.Context, in *Input, opts Options) (*render.Raster, []byte, error) {
	rc, err := render.NewContext(render.WithRamp(opts.Ramp), render.WithLogger(opts.Logger))
	if err != nil {
		return nil, nil, err
	}
	defer rc.Clear()

	ropts := []render.RenderOption{render.WithTitle(opts.Title)}
	if len(in.YTicks) > 0 {
		ropts = append(ropts, render.WithYTicks(in.YTicks))
	}

	var r *render.Raster
	if opts.IsSv() {
		r, err = rc.RenderSv(ctx, in.Grid, in.Mask, ropts...)
	} else {
		r, err = rc.RenderMask(ctx, in.Grid, ropts...)
	}
	if err != nil {
		return nil, nil, err
	}

	data, err := render.Encode(r, opts.saveOptions()...)
	if err != nil {
		return nil, nil, err
	}
	return r, data, nil
}

// hashGrid returns the content hash of g, or "" for a nil grid.
func hashGrid(g *grid.Grid) string {
	if g == nil {
		return ""
	}
	rows, cols := g.Dims()
	values := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		values = append(values, g.Row(i)...)
	}
	return cache.HashGrid(rows, cols, values)
}

// ticksKey flattens ticks into a stable cache key component.
func ticksKey(ticks []plot.Tick) string {
	var b strings.Builder
	for _, t := range ticks {
		b.WriteString(strconv.FormatFloat(t.Value, 'g', -1, 64))
		b.WriteByte('=')
		b.WriteString(t.Label)
		b.WriteByte(';')
	}
	return b.String()
}
