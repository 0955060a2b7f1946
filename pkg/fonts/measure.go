package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measurer adapts a font.Face to layout.Measurer.
type Measurer struct {
	Face font.Face
}

// Advance returns the advance width of s in pixels.
func (m Measurer) Advance(s string) float64 {
	return toFloat(font.MeasureString(m.Face, s))
}

// Metrics returns the ascent and descent of the face in pixels.
func (m Measurer) Metrics() (ascent, descent float64) {
	met := m.Face.Metrics()
	return toFloat(met.Ascent), toFloat(met.Descent)
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
