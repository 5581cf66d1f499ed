package colorscale

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
)

// ColorMap adapts s to gonum's palette.ColorMap so a plotter.ColorBar can
// draw it. Values are coloured through the scale's boundaries, so the bar
// shows discrete bands.
func (s Scale) ColorMap() palette.ColorMap {
	return &scaleMap{scale: s, min: s.Min(), max: s.Max(), alpha: 1}
}

type scaleMap struct {
	scale    Scale
	min, max float64
	alpha    float64
}

var _ palette.ColorMap = (*scaleMap)(nil)

// At returns the scale colour for v. The top edge maps into the last bin so
// a colour bar drawn over [Min, Max] never shows the over colour.
func (m *scaleMap) At(v float64) (color.Color, error) {
	if v < m.min || v > m.max {
		return nil, fmt.Errorf("colorscale: value %v out of range [%v, %v]", v, m.min, m.max)
	}
	b := m.scale.Bucket(v)
	if b == Over && v == m.scale.Max() {
		b = Bucket(m.scale.Bins() - 1)
	}
	c := m.scale.Color(b)
	c.A = uint8(float64(c.A) * m.alpha)
	return c, nil
}

func (m *scaleMap) Max() float64     { return m.max }
func (m *scaleMap) SetMax(v float64) { m.max = v }
func (m *scaleMap) Min() float64     { return m.min }
func (m *scaleMap) SetMin(v float64) { m.min = v }
func (m *scaleMap) Alpha() float64   { return m.alpha }

func (m *scaleMap) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic("colorscale: alpha out of range")
	}
	m.alpha = a
}

// Palette returns the interior bin colours. The argument is ignored: the
// scale is discrete.
func (m *scaleMap) Palette(int) palette.Palette {
	cols := make([]color.Color, m.scale.Bins())
	for i := range cols {
		cols[i] = m.scale.Color(Bucket(i))
	}
	return constPalette(cols)
}

type constPalette []color.Color

func (p constPalette) Colors() []color.Color { return p }
