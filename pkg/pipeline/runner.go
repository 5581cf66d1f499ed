package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/echoplot/echoplot/pkg/cache"
	"github.com/echoplot/echoplot/pkg/colorscale"
	"github.com/echoplot/echoplot/pkg/errors"
	"github.com/echoplot/echoplot/pkg/observability"
	"github.com/echoplot/echoplot/pkg/render"
	"github.com/echoplot/echoplot/pkg/render/sink"
)

// artifactKeyType labels artifact events for cache hooks.
const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Every Execute call renders on its own
// render.Context, so multiple goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → render → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stage 1: Load
	loadStart := time.Now()
	in, err := Load(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Grid: in.Grid, Seed: in.Seed}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Rows, result.Stats.Cols = in.Grid.Dims()
	result.InputHash = hashGrid(in.Grid)

	r.Logger.Debug("loaded grid",
		"kind", opts.Kind,
		"rows", result.Stats.Rows,
		"cols", result.Stats.Cols,
		"masked", in.Mask != nil,
		"duration", result.Stats.LoadTime)

	// Stages 2 and 3: Render and encode
	renderStart := time.Now()
	raster, data, hit, err := r.RenderWithCacheInfo(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Raster = raster
	result.Artifact = data
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.EncodedBytes = len(data)
	result.CacheInfo.RenderHit = hit
	if raster != nil {
		result.Stats.MaskedCells = raster.Counts()[colorscale.Invalid]
	}

	r.Logger.Debug("rendered figure",
		"bytes", len(data),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders and encodes in, serving the artifact from the
// cache when possible. The raster is nil on a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, in *Input, opts Options) (*render.Raster, []byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()

	keyOpts := opts.ArtifactKeyOpts(hashGrid(in.Mask), ticksKey(in.YTicks))
	cacheKey := r.Keyer.ArtifactKey(hashGrid(in.Grid), keyOpts)
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			hooks.OnCacheHit(ctx, artifactKeyType)
			return nil, data, true, nil
		}
	}
	hooks.OnCacheMiss(ctx, artifactKeyType)

	raster, data, err := Render(ctx, in, opts)
	if err != nil {
		return nil, nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}
	return raster, data, false, nil
}

// Write stores the result's artifact as dir/name.png and returns the path.
func (r *Runner) Write(res *Result, dir, name string) (string, error) {
	if err := errors.ValidateFilename(name); err != nil {
		return "", err
	}
	if res == nil || len(res.Artifact) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "nothing rendered to write")
	}
	return sink.WriteFile(dir, name+".png", res.Artifact)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
