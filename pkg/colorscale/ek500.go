package colorscale

import (
	"image/color"
	"math"
)

// ek500 scale constants.
const (
	EK500Name = "ek500"
	EK500Low  = -89.0
	EK500High = -34.0

	// ek500Edges is the number of bin edges between EK500Low and EK500High.
	ek500Edges = 11
)

// ek500RGB is the scale in float RGB, darkest grey to brown.
var ek500RGB = [12][3]float64{
	{0.62, 0.62, 0.62},
	{0.37, 0.37, 0.37},
	{0.0, 0.0, 1.0},
	{0.0, 0.0, 0.498},
	{0.0, 0.749, 0.0},
	{0.0, 0.498, 0.0},
	{1.0, 1.0, 0.0},
	{1.0, 0.498, 0.0},
	{1.0, 0.0, 0.749},
	{1.0, 0.0, 0.0},
	{0.651, 0.325, 0.235},
	{0.471, 0.235, 0.157},
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

// EK500 returns the ek500 scale. It allocates a fresh value on every call.
func EK500() Scale {
	colors := make([]color.NRGBA, len(ek500RGB))
	for i, c := range ek500RGB {
		colors[i] = rgb(c[0], c[1], c[2])
	}
	s, _ := New(EK500Name, colors, Linspace(EK500Low, EK500High, ek500Edges),
		white, colors[len(colors)-1], black)
	return s
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

func rgb(r, g, b float64) color.NRGBA {
	return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
