package render

import (
	"gonum.org/v1/plot"

	"github.com/echoplot/echoplot/pkg/errors"
)

var errInvalidScale = errors.New(errors.ErrCodeInvalidInput, "colour scale has no bins")

// RenderOption decorates a raster with presentation details.
type RenderOption func(*renderConfig)

type renderConfig struct {
	title          string
	xLabel, yLabel string
	yTicks         []plot.Tick
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{xLabel: "columns", yLabel: "rows"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (cfg renderConfig) apply(r *Raster) {
	r.Title = cfg.title
	r.XLabel = cfg.xLabel
	r.YLabel = cfg.yLabel
	r.YTicks = append([]plot.Tick(nil), cfg.yTicks...)
}

// WithTitle sets the figure title.
func WithTitle(title string) RenderOption {
	return func(c *renderConfig) { c.title = title }
}

// WithLabels overrides the "columns" and "rows" axis labels.
func WithLabels(x, y string) RenderOption {
	return func(c *renderConfig) { c.xLabel, c.yLabel = x, y }
}

// WithYTicks places labelled ticks on the row axis. Tick values are row
// indices.
func WithYTicks(ticks []plot.Tick) RenderOption {
	return func(c *renderConfig) { c.yTicks = ticks }
}
