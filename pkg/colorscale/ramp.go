package colorscale

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/echoplot/echoplot/pkg/errors"
)

// Continuous ramp names accepted by Ramp.
const (
	RampSpectral  = "spectral"
	RampBlueRed   = "bluered"
	RampBlackBody = "blackbody"
	RampKindlmann = "kindlmann"

	// DefaultRamp is used for mask rendering when no ramp is configured.
	DefaultRamp = RampSpectral
)

// RampNames returns the accepted ramp names in sorted order.
func RampNames() []string {
	names := []string{RampSpectral, RampBlueRed, RampBlackBody, RampKindlmann}
	sort.Strings(names)
	return names
}

// Ramp returns a new continuous colour map by name, spanning [0, 1] until
// the caller sets its range.
func Ramp(name string) (palette.ColorMap, error) {
	var cm palette.ColorMap
	switch name {
	case RampSpectral, "":
		p, err := brewer.GetPalette(brewer.TypeDiverging, "Spectral", 11)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load spectral palette")
		}
		// ColorBrewer orders Spectral red to blue; reverse so low values are cool.
		cm = newInterpolated(reverse(p.Colors()))
	case RampBlueRed:
		cm = moreland.SmoothBlueRed()
	case RampBlackBody:
		cm = moreland.ExtendedBlackBody()
	case RampKindlmann:
		cm = moreland.ExtendedKindlmann()
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown ramp %q (want one of %v)", name, RampNames())
	}
	cm.SetMin(0)
	cm.SetMax(1)
	return cm, nil
}

func reverse(cols []color.Color) []color.Color {
	out := make([]color.Color, len(cols))
	for i, c := range cols {
		out[len(cols)-1-i] = c
	}
	return out
}

// interpolated is a ColorMap that linearly blends between evenly spaced
// control colours in RGB.
type interpolated struct {
	controls []color.NRGBA
	min, max float64
	alpha    float64
}

func newInterpolated(cols []color.Color) *interpolated {
	controls := make([]color.NRGBA, len(cols))
	for i, c := range cols {
		controls[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return &interpolated{controls: controls, max: 1, alpha: 1}
}

var _ palette.ColorMap = (*interpolated)(nil)

func (m *interpolated) At(v float64) (color.Color, error) {
	if m.max <= m.min {
		return nil, fmt.Errorf("colorscale: invalid range [%v, %v]", m.min, m.max)
	}
	if v < m.min || v > m.max || math.IsNaN(v) {
		return nil, fmt.Errorf("colorscale: value %v out of range [%v, %v]", v, m.min, m.max)
	}
	pos := (v - m.min) / (m.max - m.min) * float64(len(m.controls)-1)
	i := int(math.Floor(pos))
	if i >= len(m.controls)-1 {
		i = len(m.controls) - 2
	}
	f := pos - float64(i)
	lo, hi := m.controls[i], m.controls[i+1]
	return color.NRGBA{
		R: lerp(lo.R, hi.R, f),
		G: lerp(lo.G, hi.G, f),
		B: lerp(lo.B, hi.B, f),
		A: uint8(math.Round(255 * m.alpha)),
	}, nil
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

func (m *interpolated) Max() float64     { return m.max }
func (m *interpolated) SetMax(v float64) { m.max = v }
func (m *interpolated) Min() float64     { return m.min }
func (m *interpolated) SetMin(v float64) { m.min = v }
func (m *interpolated) Alpha() float64   { return m.alpha }

func (m *interpolated) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic("colorscale: alpha out of range")
	}
	m.alpha = a
}

func (m *interpolated) Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	cols := make([]color.Color, n)
	for i := range cols {
		v := m.min + (m.max-m.min)*float64(i)/float64(n-1)
		c, err := m.At(v)
		if err != nil {
			c = color.Transparent
		}
		cols[i] = c
	}
	return constPalette(cols)
}
