package layout

const (
	// DefaultPadTop is the top padding as a fraction of frame height.
	DefaultPadTop = 0.12

	// DefaultPadBottom is the bottom padding as a fraction of frame height.
	DefaultPadBottom = 0.07

	// DefaultPadSide is the left and right padding as a fraction of frame width.
	DefaultPadSide = 0.09

	// LineHeightRatio is the line height as a multiple of the font pixel size.
	LineHeightRatio = 1.5
)

// Frame is the fixed-aspect region the overlay is composited into.
type Frame struct {
	Width, Height int // intrinsic size of the base image

	PadTop    float64 // fraction of Height
	PadBottom float64 // fraction of Height
	PadSide   float64 // fraction of Width, applied left and right

	// Scale multiplies the resolved pixel size. Templates larger than the
	// size the style was designed for use a scale above 1.
	Scale float64
}

// NewFrame returns a frame of the given size with default padding.
func NewFrame(width, height int) Frame {
	return Frame{
		Width:     width,
		Height:    height,
		PadTop:    DefaultPadTop,
		PadBottom: DefaultPadBottom,
		PadSide:   DefaultPadSide,
		Scale:     1,
	}
}

// Bounds returns the full frame rectangle.
func (f Frame) Bounds() Rect {
	return Rect{Right: float64(f.Width), Bottom: float64(f.Height)}
}

// Safe returns the text-safe rectangle after padding.
func (f Frame) Safe() Rect {
	w, h := float64(f.Width), float64(f.Height)
	return Rect{
		Left:   w * f.PadSide,
		Right:  w - w*f.PadSide,
		Top:    h * f.PadTop,
		Bottom: h - h*f.PadBottom,
	}
}

// FontScale returns the pixel-size multiplier, treating zero as 1.
func (f Frame) FontScale() float64 {
	if f.Scale <= 0 {
		return 1
	}
	return f.Scale
}

// Valid reports whether the frame has a positive size and leaves a
// non-empty safe rectangle.
func (f Frame) Valid() bool {
	if f.Width <= 0 || f.Height <= 0 {
		return false
	}
	s := f.Safe()
	return s.Width() > 0 && s.Height() > 0
}
