package colorscale

import (
	"image/color"
	"math"
	"sort"
	"strconv"
)

// Bucket identifies the colour class a value falls into.
// Non-negative buckets are interior scale bins.
type Bucket int

// Edge buckets.
const (
	Under   Bucket = -1 // below the lowest boundary
	Over    Bucket = -2 // at or above the highest boundary
	Invalid Bucket = -3 // masked or NaN
)

// String returns "under", "over", "invalid", or the interior index.
func (b Bucket) String() string {
	switch b {
	case Under:
		return "under"
	case Over:
		return "over"
	case Invalid:
		return "invalid"
	default:
		return strconv.Itoa(int(b))
	}
}

// Interior reports whether b is one of the scale's interior bins.
func (b Bucket) Interior() bool { return b >= 0 }

// Scale maps values to colours through fixed boundaries.
type Scale struct {
	name       string
	colors     []color.NRGBA
	under      color.NRGBA
	over       color.NRGBA
	invalid    color.NRGBA
	boundaries []float64
}

// New builds a scale from colours and ascending boundaries. len(boundaries)-1
// interior bins use colours[0..]; the scale needs at least as many colours as
// bins. The boundaries and colours are copied.
func New(name string, colors []color.NRGBA, boundaries []float64, under, over, invalid color.NRGBA) (Scale, bool) {
	bins := len(boundaries) - 1
	if bins < 1 || len(colors) < bins || !sort.Float64sAreSorted(boundaries) {
		return Scale{}, false
	}
	return Scale{
		name:       name,
		colors:     append([]color.NRGBA(nil), colors...),
		under:      under,
		over:       over,
		invalid:    invalid,
		boundaries: append([]float64(nil), boundaries...),
	}, true
}

// Name returns the scale name.
func (s Scale) Name() string { return s.name }

// Bins returns the number of interior bins.
func (s Scale) Bins() int { return len(s.boundaries) - 1 }

// Boundaries returns a copy of the bin edges.
func (s Scale) Boundaries() []float64 {
	return append([]float64(nil), s.boundaries...)
}

// Min returns the lowest boundary.
func (s Scale) Min() float64 { return s.boundaries[0] }

// Max returns the highest boundary.
func (s Scale) Max() float64 { return s.boundaries[len(s.boundaries)-1] }

// Colors returns a copy of the scale colours. Scale therefore satisfies
// gonum's palette.Palette.
func (s Scale) Colors() []color.Color {
	out := make([]color.Color, len(s.colors))
	for i, c := range s.colors {
		out[i] = c
	}
	return out
}

// Bucket classifies v.
//
//	v < b[0]               -> Under
//	b[i] <= v < b[i+1]     -> i
//	v >= b[len(b)-1]       -> Over
//	NaN                    -> Invalid
func (s Scale) Bucket(v float64) Bucket {
	switch {
	case math.IsNaN(v):
		return Invalid
	case v < s.boundaries[0]:
		return Under
	case v >= s.boundaries[len(s.boundaries)-1]:
		return Over
	}
	// First boundary strictly greater than v, minus one.
	i := sort.Search(len(s.boundaries), func(i int) bool { return s.boundaries[i] > v })
	return Bucket(i - 1)
}

// Color returns the colour drawn for b.
func (s Scale) Color(b Bucket) color.NRGBA {
	switch {
	case b == Under:
		return s.under
	case b == Over:
		return s.over
	case b >= 0 && int(b) < s.Bins():
		return s.colors[b]
	default:
		return s.invalid
	}
}

// ColorOf is shorthand for s.Color(s.Bucket(v)).
func (s Scale) ColorOf(v float64) color.NRGBA {
	return s.Color(s.Bucket(v))
}

// UnderColor returns the colour for values below the scale.
func (s Scale) UnderColor() color.NRGBA { return s.under }

// OverColor returns the colour for values at or above the scale.
func (s Scale) OverColor() color.NRGBA { return s.over }

// InvalidColor returns the colour for masked cells.
func (s Scale) InvalidColor() color.NRGBA { return s.invalid }

// Labels formats the boundaries for a legend.
func (s Scale) Labels() []string {
	out := make([]string, len(s.boundaries))
	for i, b := range s.boundaries {
		out[i] = strconv.FormatFloat(b, 'f', -1, 64)
	}
	return out
}
