package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplot/echoplot/pkg/cache"
	"github.com/echoplot/echoplot/pkg/colorscale"
	"github.com/echoplot/echoplot/pkg/errors"
	"github.com/echoplot/echoplot/pkg/grid"
	gridio "github.com/echoplot/echoplot/pkg/io"
	"github.com/echoplot/echoplot/pkg/observability"
	"github.com/echoplot/echoplot/pkg/synth"
)

func TestValidateKind(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"sv", false},
		{"mask", false},
		{"synth", false},
		{"SV", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateKind(tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateKind(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"sv", Options{Kind: KindSv, Input: "sv.json"}, false},
		{"sv with mask", Options{Kind: KindSv, Input: "sv.json", Mask: "m.json"}, false},
		{"mask", Options{Kind: KindMask, Input: "m.json"}, false},
		{"synth", Options{Kind: KindSynth, Synth: synth.NewParams(-60, 2, 10, 50)}, false},
		{"missing input", Options{Kind: KindSv}, true},
		{"mask on mask", Options{Kind: KindMask, Input: "m.json", Mask: "m.json"}, true},
		{"bad synth", Options{Kind: KindSynth, Synth: synth.Params{Thickness: 0}}, true},
		{"bad dpi", Options{Kind: KindSv, Input: "sv.json", DPI: -3}, true},
		{"bad size", Options{Kind: KindSv, Input: "sv.json", Width: -1}, true},
		{"bad ramp", Options{Kind: KindMask, Input: "m.json", Ramp: "jet"}, true},
		{"unknown kind", Options{Kind: "volume"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Kind: KindSv, Input: "sv.json"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.DPI != first.DPI || opts.Width != first.Width || opts.Ramp != first.Ramp {
		t.Error("defaults changed on second call")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if opts.DPI != 300 {
		t.Errorf("DPI should be 300, got %d", opts.DPI)
	}
	if opts.Width != 6.4 || opts.Height != 4.8 {
		t.Errorf("size should be 6.4x4.8, got %gx%g", opts.Width, opts.Height)
	}
	if opts.Ramp != colorscale.DefaultRamp {
		t.Errorf("Ramp should be %s, got %s", colorscale.DefaultRamp, opts.Ramp)
	}
	if opts.Synth.Cols != synth.DefaultCols {
		t.Errorf("Synth.Cols should be %d, got %d", synth.DefaultCols, opts.Synth.Cols)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	sv := Options{Kind: KindSv, Ramp: "blackbody"}
	mask := Options{Kind: KindMask, Ramp: "blackbody"}

	if got := sv.ArtifactKeyOpts("", ""); got.Scale != colorscale.EK500Name || got.Ramp != "" {
		t.Errorf("sv key opts = %+v, want scale only", got)
	}
	if got := mask.ArtifactKeyOpts("", ""); got.Ramp != "blackbody" || got.Scale != "" {
		t.Errorf("mask key opts = %+v, want ramp only", got)
	}
}

// writeGrid exports rows as JSON under dir.
func writeGrid(t *testing.T, dir, name string, rows [][]float64) string {
	t.Helper()
	g, err := grid.New(rows)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, gridio.Export(g, path))
	return path
}

// quick keeps encoded figures small.
func quick(o Options) Options {
	o.DPI = 20
	o.Width = 4
	o.Height = 3
	return o
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestRunnerExecuteSvWithCache(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	dir := t.TempDir()
	sv := writeGrid(t, dir, "sv.json", [][]float64{{-80, -60}, {-50, -40}})
	mask := writeGrid(t, dir, "mask.json", [][]float64{{1, 0}, {1, 1}})

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := quick(Options{Kind: KindSv, Input: sv, Mask: mask})
	first, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.RenderHit)
	require.NotNil(t, first.Raster)
	assert.Equal(t, 1, first.Stats.MaskedCells)
	assert.Equal(t, 2, first.Stats.Rows)
	assert.Equal(t, 2, first.Stats.Cols)
	_, err = png.Decode(bytes.NewReader(first.Artifact))
	require.NoError(t, err)

	second, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Nil(t, second.Raster)
	assert.Equal(t, first.Artifact, second.Artifact)
	assert.Equal(t, first.InputHash, second.InputHash)

	refresh := opts
	refresh.Refresh = true
	third, err := runner.Execute(context.Background(), refresh)
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.RenderHit)

	assert.Equal(t, 1, hooks.hits)
	assert.Equal(t, 2, hooks.misses)
	assert.Equal(t, 2, hooks.sets)
}

func TestRunnerExecuteCacheKeyTracksOptions(t *testing.T) {
	dir := t.TempDir()
	in := writeGrid(t, dir, "m.json", [][]float64{{0, 1}, {2, 3}})
	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	runner := NewRunner(fc, nil, nil)

	opts := quick(Options{Kind: KindMask, Input: in})
	_, err = runner.Execute(context.Background(), opts)
	require.NoError(t, err)

	opts.Title = "flags"
	res, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, res.CacheInfo.RenderHit, "a new title must not reuse the cached figure")
}

func TestRunnerExecuteSynth(t *testing.T) {
	p := synth.NewParams(-60, 2, 5, 25)
	p.Cols = 20
	p.Seed = 3

	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), quick(Options{Kind: KindSynth, Synth: p}))
	require.NoError(t, err)

	rows, cols := res.Grid.Dims()
	assert.Equal(t, 15, rows)
	assert.Equal(t, 20, cols)
	assert.Equal(t, uint64(3), res.Seed)
	require.NotNil(t, res.Raster)
	assert.Len(t, res.Raster.YTicks, 3)

	dir := t.TempDir()
	path, err := runner.Write(res, dir, "layer")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "layer.png"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRunnerExecuteErrors(t *testing.T) {
	dir := t.TempDir()
	sv := writeGrid(t, dir, "sv.json", [][]float64{{-80, -60}, {-50, -40}})
	wide := writeGrid(t, dir, "wide.json", [][]float64{{1, 1, 1}})

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"shape mismatch", Options{Kind: KindSv, Input: sv, Mask: wide}, errors.ErrCodeShapeMismatch},
		{"missing input", Options{Kind: KindSv, Input: filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"bad kind", Options{Kind: "x"}, errors.ErrCodeInvalidInput},
	}

	runner := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(context.Background(), quick(tt.opts))
			assert.True(t, errors.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}
}

func TestRunnerWrite(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Write(&Result{Artifact: []byte("x")}, t.TempDir(), "a/b")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = runner.Write(&Result{}, t.TempDir(), "empty")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = runner.Write(&Result{Artifact: []byte("x")}, filepath.Join(t.TempDir(), "missing"), "out")
	assert.True(t, errors.Is(err, errors.ErrCodeIO))
}

func TestLoadExplicitFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n3,4\n"), 0644))

	in, err := Load(Options{Kind: KindMask, Input: path, Format: gridio.FormatCSV})
	require.NoError(t, err)
	assert.Nil(t, in.Mask)
	assert.Equal(t, 4.0, in.Grid.At(1, 1))

	_, err = Load(Options{Kind: KindMask, Input: path, Format: gridio.FormatJSON})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
}
