package pipeline

import (
	"gonum.org/v1/plot"

	"github.com/echoplot/echoplot/pkg/grid"
	gridio "github.com/echoplot/echoplot/pkg/io"
	"github.com/echoplot/echoplot/pkg/synth"
)

// Input is the loaded data for one render.
type Input struct {
	Grid *grid.Grid
	// Mask is nil when no mask was requested.
	Mask *grid.Grid
	// YTicks label synthesized layers.
	YTicks []plot.Tick
	// Seed is the seed used for synthesized layers.
	Seed uint64
}

// Load reads or synthesizes the grids named by opts.
func Load(opts Options) (*Input, error) {
	if opts.Kind == KindSynth {
		res, err := synth.Layer(opts.Synth)
		if err != nil {
			return nil, err
		}
		return &Input{Grid: res.Grid, YTicks: res.YTicks, Seed: res.Seed}, nil
	}

	g, err := readGrid(opts.Input, opts.Format)
	if err != nil {
		return nil, err
	}
	in := &Input{Grid: g}
	if opts.Mask != "" {
		if in.Mask, err = readGrid(opts.Mask, opts.Format); err != nil {
			return nil, err
		}
		if err := grid.CheckShape(in.Grid, in.Mask); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// readGrid honours an explicit format and otherwise goes by extension.
func readGrid(path string, f gridio.Format) (*grid.Grid, error) {
	if f == gridio.FormatAuto {
		return gridio.Import(path)
	}
	return gridio.ImportAs(path, f)
}
