// Package colorscale defines the colour scales used to draw echograms.
//
// # ek500
//
// [EK500] returns the standard fisheries-acoustics scale: 12 colours, with
// boundaries spaced linearly from -89 dB to -34 dB. Values below the lowest
// boundary draw white, values at or above the highest boundary draw the last
// scale colour, and invalid (masked) cells draw black.
//
// A [Scale] is an immutable value. EK500 is a pure function; callers hold
// and pass the returned value rather than looking it up by name, so building
// it any number of times has no side effects.
//
//	s := colorscale.EK500()
//	b := s.Bucket(-61.2) // interior bucket 5
//	c := s.Color(b)
//
// # Continuous ramps
//
// [Ramp] returns a continuous gonum [palette.ColorMap] used to draw mask and
// flag grids directly, scaled to the grid's own range.
//
// [palette.ColorMap]: https://pkg.go.dev/gonum.org/v1/plot/palette#ColorMap
package colorscale
