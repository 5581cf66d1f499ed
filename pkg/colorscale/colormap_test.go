package colorscale

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleColorMap(t *testing.T) {
	s := EK500()
	cm := s.ColorMap()

	assert.Equal(t, EK500Low, cm.Min())
	assert.Equal(t, EK500High, cm.Max())

	c, err := cm.At(-61.2)
	require.NoError(t, err)
	assert.Equal(t, s.Color(5), c)

	// The top edge stays inside the bar.
	c, err = cm.At(EK500High)
	require.NoError(t, err)
	assert.Equal(t, s.Color(Bucket(s.Bins()-1)), c)

	_, err = cm.At(-100)
	assert.Error(t, err)

	assert.Len(t, cm.Palette(256).Colors(), s.Bins())
}

func TestScaleColorMapAlpha(t *testing.T) {
	cm := EK500().ColorMap()
	cm.SetAlpha(0)
	c, err := cm.At(-50)
	require.NoError(t, err)
	_, _, _, a := c.RGBA()
	assert.Zero(t, a)

	assert.Panics(t, func() { cm.SetAlpha(2) })
}

func TestRamp(t *testing.T) {
	for _, name := range RampNames() {
		t.Run(name, func(t *testing.T) {
			cm, err := Ramp(name)
			require.NoError(t, err)

			cm.SetMin(-5)
			cm.SetMax(5)
			for _, v := range []float64{-5, 0, 5} {
				c, err := cm.At(v)
				require.NoError(t, err, "At(%v)", v)
				require.NotNil(t, c)
			}
		})
	}

	_, err := Ramp("jet")
	assert.Error(t, err)
}

func TestRampSpectralEnds(t *testing.T) {
	cm, err := Ramp(RampSpectral)
	require.NoError(t, err)

	lo, err := cm.At(0)
	require.NoError(t, err)
	hi, err := cm.At(1)
	require.NoError(t, err)

	// Low end is the blue end of Spectral, high end the red end.
	l := color.NRGBAModel.Convert(lo).(color.NRGBA)
	h := color.NRGBAModel.Convert(hi).(color.NRGBA)
	assert.Greater(t, l.B, l.R)
	assert.Greater(t, h.R, h.B)
}
