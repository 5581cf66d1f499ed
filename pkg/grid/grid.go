package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/echoplot/echoplot/pkg/errors"
)

// Grid is an immutable 2D array of float64 values.
type Grid struct {
	m *mat.Dense
}

// New builds a grid from row slices. The rows are copied.
//
// It fails with INVALID_GRID if there are no rows, the first row is empty,
// or the rows have different lengths.
func New(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid has no rows")
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid has no columns")
	}

	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidGrid,
				"grid is not 2-dimensional: row %d has %d values, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Grid{m: mat.NewDense(len(rows), cols, data)}, nil
}

// FromMatrix copies any gonum matrix into a grid.
func FromMatrix(m mat.Matrix) (*Grid, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid is nil")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid is empty (%dx%d)", r, c)
	}
	return &Grid{m: mat.DenseCopyOf(m)}, nil
}

// Filled returns a rows x cols grid with every cell set to v.
func Filled(rows, cols int, v float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid is empty (%dx%d)", rows, cols)
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	return &Grid{m: mat.NewDense(rows, cols, data)}, nil
}

// Dims returns the number of rows and columns.
func (g *Grid) Dims() (rows, cols int) {
	return g.m.Dims()
}

// At returns the value at row i, column j.
func (g *Grid) At(i, j int) float64 {
	return g.m.At(i, j)
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) []float64 {
	return mat.Row(nil, i, g.m)
}

// Rows returns a copy of the grid as row slices.
func (g *Grid) Rows() [][]float64 {
	r, _ := g.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = g.Row(i)
	}
	return out
}

// Matrix returns a read-only view of the underlying matrix.
func (g *Grid) Matrix() mat.Matrix {
	return g.m
}

// SameShape reports whether g and o have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	gr, gc := g.Dims()
	or, oc := o.Dims()
	return gr == or && gc == oc
}

// Range returns the minimum and maximum finite values in the grid.
// ok is false when the grid has no finite values.
func (g *Grid) Range() (lo, hi float64, ok bool) {
	r, _ := g.Dims()
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < r; i++ {
		row := g.m.RawRowView(i)
		finite := make([]float64, 0, len(row))
		for _, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				finite = append(finite, v)
			}
		}
		if len(finite) == 0 {
			continue
		}
		lo = math.Min(lo, floats.Min(finite))
		hi = math.Max(hi, floats.Max(finite))
	}
	return lo, hi, lo <= hi
}

// Validate checks that g is usable as render input.
func Validate(g *Grid) error {
	if g == nil || g.m == nil {
		return errors.New(errors.ErrCodeInvalidGrid, "grid is nil")
	}
	if r, c := g.Dims(); r == 0 || c == 0 {
		return errors.New(errors.ErrCodeInvalidGrid, "grid is empty (%dx%d)", r, c)
	}
	return nil
}

// CheckShape fails with SHAPE_MISMATCH unless mask has the shape of sv.
func CheckShape(sv, mask *Grid) error {
	if sv.SameShape(mask) {
		return nil
	}
	sr, sc := sv.Dims()
	mr, mc := mask.Dims()
	return errors.New(errors.ErrCodeShapeMismatch, "mask is %dx%d, grid is %dx%d", mr, mc, sr, sc)
}
