package grid

import "math"

// Cell is one grid value tagged with its validity.
// Invalid cells carry no meaningful Value.
type Cell struct {
	Value float64
	Valid bool
}

// Valid returns a valid cell holding v.
func Valid(v float64) Cell { return Cell{Value: v, Valid: true} }

// Invalid returns an invalid cell.
func Invalid() Cell { return Cell{} }

// Masked is a grid of tagged cells produced by [Apply].
type Masked struct {
	rows, cols int
	cells      []Cell
}

// Apply combines sv with an optional mask.
//
// A cell is invalid when the mask value at that position is zero or the Sv
// value is NaN; otherwise it keeps the Sv value. A nil mask keeps every cell.
// It fails with INVALID_GRID for a nil or empty sv and SHAPE_MISMATCH when the
// mask shape differs.
func Apply(sv, mask *Grid) (*Masked, error) {
	if err := Validate(sv); err != nil {
		return nil, err
	}
	if mask != nil {
		if err := Validate(mask); err != nil {
			return nil, err
		}
		if err := CheckShape(sv, mask); err != nil {
			return nil, err
		}
	}

	r, c := sv.Dims()
	m := &Masked{rows: r, cols: c, cells: make([]Cell, r*c)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := sv.At(i, j)
			switch {
			case math.IsNaN(v):
				m.cells[i*c+j] = Invalid()
			case mask != nil && mask.At(i, j) == 0:
				m.cells[i*c+j] = Invalid()
			default:
				m.cells[i*c+j] = Valid(v)
			}
		}
	}
	return m, nil
}

// Dims returns the number of rows and columns.
func (m *Masked) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the cell at row i, column j.
func (m *Masked) At(i, j int) Cell {
	return m.cells[i*m.cols+j]
}

// InvalidCount returns the number of invalid cells.
func (m *Masked) InvalidCount() int {
	n := 0
	for _, c := range m.cells {
		if !c.Valid {
			n++
		}
	}
	return n
}
