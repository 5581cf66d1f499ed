// Package grid holds the 2D numeric grids echoplot renders.
//
// A [Grid] is an immutable rows x columns array of float64 backed by a gonum
// [mat.Dense]. Rows are range bins (depth) and columns are pings (time). The
// same type carries both Sv grids and mask grids.
//
// Masking is explicit: [Apply] combines an Sv grid with an optional mask and
// returns a [Masked] grid of tagged [Cell] values, each either valid with a
// value or invalid. No NaN sentinels are involved; NaN Sv values are simply
// reported as invalid cells.
//
//	sv, err := grid.New([][]float64{{-70, -65}, {-50, -40}})
//	mask, err := grid.New([][]float64{{1, 0}, {1, 1}})
//	m, err := grid.Apply(sv, mask) // cell (0,1) is invalid
//
// [mat.Dense]: https://pkg.go.dev/gonum.org/v1/gonum/mat#Dense
package grid
