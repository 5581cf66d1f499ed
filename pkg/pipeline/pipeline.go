// Package pipeline runs the load → render → encode pipeline behind the CLI.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the Sv or mask grid (and optional mask) from disk, or
//     synthesize a layer
//  2. Render: colour the grid on a render.Context
//  3. Encode: draw the figure and encode it as PNG
//
// Encoded figures are cached under a key derived from the grid contents and
// every option that affects the output, so repeated runs skip stages 2 and 3.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:  pipeline.KindSv,
//	    Input: "sv.json",
//	    Mask:  "mask.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, err := runner.Write(result, "out", "echogram")
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/echoplot/echoplot/pkg/cache"
	"github.com/echoplot/echoplot/pkg/colorscale"
	"github.com/echoplot/echoplot/pkg/errors"
	"github.com/echoplot/echoplot/pkg/grid"
	gridio "github.com/echoplot/echoplot/pkg/io"
	"github.com/echoplot/echoplot/pkg/render"
	"github.com/echoplot/echoplot/pkg/render/sink"
	"github.com/echoplot/echoplot/pkg/synth"
)

// Render kinds.
const (
	KindSv    = "sv"
	KindMask  = "mask"
	KindSynth = "synth"
)

// ValidKinds is the set of supported render kinds.
var ValidKinds = map[string]bool{
	KindSv:    true,
	KindMask:  true,
	KindSynth: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	Kind   string        `json:"kind"`
	Input  string        `json:"input,omitempty"`
	Mask   string        `json:"mask,omitempty"`
	Format gridio.Format `json:"format,omitempty"`
	Synth  synth.Params  `json:"synth"`

	// Render options
	Title string `json:"title,omitempty"`
	Ramp  string `json:"ramp,omitempty"`

	// Encode options
	DPI    int     `json:"dpi,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Refresh bypasses cached artifacts and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifact is the encoded PNG.
	Artifact []byte

	// InputHash is the content hash of the rendered grid.
	InputHash string

	// Raster is the rendered raster. It is nil when the artifact came from
	// the cache.
	Raster *render.Raster

	// Grid is the grid that was rendered. For synth runs it is the
	// synthesized layer.
	Grid *grid.Grid

	// Seed is the seed used for synth runs.
	Seed uint64

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows, Cols   int
	MaskedCells  int
	LoadTime     time.Duration
	RenderTime   time.Duration
	EncodedBytes int
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether the artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateKind checks that a render kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: sv, mask, synth)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	switch o.Kind {
	case KindSv, KindMask:
		if o.Input == "" {
			return errors.New(errors.ErrCodeInvalidInput, "input grid is required")
		}
	case KindSynth:
		if err := o.Synth.Validate(); err != nil {
			return err
		}
	}
	if o.Mask != "" && o.Kind != KindSv {
		return errors.New(errors.ErrCodeInvalidInput, "a mask can only be applied to sv renders")
	}

	o.SetRenderDefaults()
	if err := errors.ValidateDPI(o.DPI); err != nil {
		return err
	}
	if err := errors.ValidateFigureSize(o.Width, o.Height); err != nil {
		return err
	}
	if _, err := colorscale.Ramp(o.Ramp); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering and encoding.
func (o *Options) SetRenderDefaults() {
	if o.DPI == 0 {
		o.DPI = sink.DefaultDPI
	}
	if o.Width == 0 {
		o.Width = sink.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = sink.DefaultHeight
	}
	if o.Ramp == "" {
		o.Ramp = colorscale.DefaultRamp
	}
	if o.Synth.Cols == 0 {
		o.Synth.Cols = synth.DefaultCols
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsSv reports whether the run renders through the ek500 scale.
func (o *Options) IsSv() bool {
	return o.Kind == KindSv || o.Kind == KindSynth
}

// saveOptions returns the encode options.
func (o *Options) saveOptions() []render.SaveOption {
	return []render.SaveOption{render.WithDPI(o.DPI), render.WithSize(o.Width, o.Height)}
}

// ArtifactKeyOpts returns cache key options for the encoded figure.
func (o *Options) ArtifactKeyOpts(maskHash, yTicks string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Kind:     o.Kind,
		MaskHash: maskHash,
		Title:    o.Title,
		YTicks:   yTicks,
		DPI:      o.DPI,
		Width:    o.Width,
		Height:   o.Height,
	}
	if o.IsSv() {
		opts.Scale = colorscale.EK500Name
	} else {
		opts.Ramp = o.Ramp
	}
	return opts
}
