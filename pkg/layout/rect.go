package layout

// Rect is an axis-aligned rectangle in frame pixels, origin at the top left.
type Rect struct {
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }
