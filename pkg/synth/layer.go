package synth

import (
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"

	"github.com/echoplot/echoplot/pkg/errors"
	"github.com/echoplot/echoplot/pkg/grid"
)

// Defaults applied by NewParams.
const (
	DefaultCols       = 100
	DefaultNoiseLevel = -999.0 // dB
)

// Params describes a synthetic layer.
type Params struct {
	// Mean and Std are the layer Sv statistics in dB.
	Mean, Std float64
	// Thickness is the layer height in rows. The grid is 3*Thickness rows.
	Thickness int
	// Position is the depth of the layer centre, used for tick labels only.
	Position float64
	// Cols is the number of pings. Zero means DefaultCols.
	Cols int
	// NoiseLevel is the background Sv in dB. Non-positive intensities in the
	// layer are raised to this floor.
	NoiseLevel float64
	// Seed seeds the random source unless Random is set.
	Seed   uint64
	Random bool
}

// NewParams returns Params with the default width and noise floor.
func NewParams(mean, std float64, thickness int, position float64) Params {
	return Params{
		Mean:       mean,
		Std:        std,
		Thickness:  thickness,
		Position:   position,
		Cols:       DefaultCols,
		NoiseLevel: DefaultNoiseLevel,
	}
}

// Validate reports INVALID_INPUT for unusable parameters.
func (p Params) Validate() error {
	switch {
	case p.Thickness < 1:
		return errors.New(errors.ErrCodeInvalidInput, "layer thickness must be at least 1 row, got %d", p.Thickness)
	case p.Cols < 0:
		return errors.New(errors.ErrCodeInvalidInput, "columns must be positive, got %d", p.Cols)
	case !finite(p.Mean), !finite(p.Std), !finite(p.Position), !finite(p.NoiseLevel):
		return errors.New(errors.ErrCodeInvalidInput, "layer parameters must be finite")
	case p.Std < 0:
		return errors.New(errors.ErrCodeInvalidInput, "standard deviation must be non-negative, got %g", p.Std)
	}
	return nil
}

// Result is a synthesized layer.
type Result struct {
	Grid *grid.Grid
	// YTicks label the top, centre and bottom of the layer with depths.
	YTicks []plot.Tick
	// Seed is the seed actually used, so Random runs can be reproduced.
	Seed uint64
}

// Layer synthesizes a scattering layer. Rows [Thickness, 2*Thickness) are
// drawn from Normal(Mean, Std) in dB; all other cells sit at the noise floor.
// Intensities are floored in the linear domain before conversion back to dB,
// so every value in the grid is finite.
func Layer(p Params) (*Result, error) {
	if p.Cols == 0 {
		p.Cols = DefaultCols
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	seed := p.Seed
	if p.Random {
		seed = uint64(time.Now().UnixNano())
	}
	dist := distuv.Normal{
		Mu:    p.Mean,
		Sigma: p.Std,
		Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}

	floor := floorIntensity(p.NoiseLevel)
	rows := 3 * p.Thickness
	m := mat.NewDense(rows, p.Cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < p.Cols; j++ {
			lin := floor
			if i >= p.Thickness && i < 2*p.Thickness {
				lin = intensity(dist.Rand())
			}
			if !(lin > 0) || math.IsInf(lin, 0) {
				lin = floor
			}
			m.Set(i, j, 10*math.Log10(lin))
		}
	}

	g, err := grid.FromMatrix(m)
	if err != nil {
		return nil, err
	}
	return &Result{Grid: g, YTicks: depthTicks(p), Seed: seed}, nil
}

// intensity converts Sv in dB to linear backscatter.
func intensity(db float64) float64 {
	return math.Pow(10, db/10)
}

// floorIntensity is the linear noise floor. Levels too low to represent
// collapse to the smallest positive float so the logarithm stays finite.
func floorIntensity(db float64) float64 {
	lin := intensity(db)
	if !(lin > 0) {
		return math.SmallestNonzeroFloat64
	}
	if math.IsInf(lin, 1) {
		return math.MaxFloat64
	}
	return lin
}

func depthTicks(p Params) []plot.Tick {
	t := float64(p.Thickness)
	half := t / 2
	return []plot.Tick{
		{Value: t, Label: depthLabel(p.Position - half)},
		{Value: t + half, Label: depthLabel(p.Position)},
		{Value: 2 * t, Label: depthLabel(p.Position + half)},
	}
}

// depthLabel formats a depth and keeps at most five characters.
func depthLabel(d float64) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if len(s) > 5 {
		s = s[:5]
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
