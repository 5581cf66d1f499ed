package render

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/echoplot/echoplot/pkg/colorscale"
)

// Context carries the state shared by a sequence of renders: the colour
// scale, the mask ramp, a logger, and the raster waiting to be saved.
//
// A Context is not safe for concurrent use. Use one Context per goroutine.
type Context struct {
	id      string
	scale   colorscale.Scale
	ramp    string
	logger  *log.Logger
	current *Raster
}

// Option configures a Context.
type Option func(*Context)

// WithScale replaces the ek500 scale used for Sv renders.
func WithScale(s colorscale.Scale) Option {
	return func(c *Context) { c.scale = s }
}

// WithRamp selects the continuous ramp used for mask renders by name.
// See colorscale.RampNames.
func WithRamp(name string) Option {
	return func(c *Context) { c.ramp = name }
}

// WithLogger sets the logger used for debug output (default log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// NewContext creates a render context. The ek500 scale is built once here and
// reused for every Sv render on the context.
func NewContext(opts ...Option) (*Context, error) {
	c := &Context{
		id:     uuid.NewString(),
		scale:  colorscale.EK500(),
		ramp:   colorscale.DefaultRamp,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ramp == "" {
		c.ramp = colorscale.DefaultRamp
	}
	if c.scale.Bins() < 1 {
		return nil, errInvalidScale
	}
	if _, err := colorscale.Ramp(c.ramp); err != nil {
		return nil, err
	}
	return c, nil
}

// ID returns the run identifier reported to observability hooks.
func (c *Context) ID() string { return c.id }

// Scale returns the colour scale used for Sv renders.
func (c *Context) Scale() colorscale.Scale { return c.scale }

// Ramp returns the name of the mask ramp.
func (c *Context) Ramp() string { return c.ramp }

// Current returns the most recent raster, or nil if there is none or it has
// been saved or cleared.
func (c *Context) Current() *Raster { return c.current }

// Clear drops the current raster.
func (c *Context) Clear() { c.current = nil }
