package render

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/fonts"
	"github.com/matzehuels/goodnews/pkg/layout"
	"github.com/matzehuels/goodnews/pkg/style"
)

// Option configures a Compositor.
type Option func(*Compositor)

// WithGuides outlines the text-safe rectangle, which helps when tuning
// frame padding for a custom template.
func WithGuides(on bool) Option {
	return func(c *Compositor) { c.guides = on }
}

// Compositor draws overlays. It holds no per-render state and can be shared.
type Compositor struct {
	fonts  *fonts.Registry
	guides bool
}

// NewCompositor creates a compositor that takes faces from reg.
func NewCompositor(reg *fonts.Registry, opts ...Option) *Compositor {
	c := &Compositor{fonts: reg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Measurer returns a measurer with the same metrics as the face the
// compositor will draw p with. The measurer owns its face.
// Placement must be computed with this measurer for drawn glyphs to line up.
func (c *Compositor) Measurer(res style.Resolved, f layout.Frame) (layout.Measurer, error) {
	face, err := c.fonts.Face(res, res.PixelSize*f.FontScale())
	if err != nil {
		return nil, err
	}
	return fonts.Measurer{Face: face}, nil
}

// Compose returns a new image of the placement's frame size with base
// drawn underneath the text.
func (c *Compositor) Compose(base image.Image, p layout.Placement, res style.Resolved) (*image.RGBA, error) {
	if !p.Frame.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid frame %dx%d", p.Frame.Width, p.Frame.Height)
	}
	if base == nil {
		return nil, errors.New(errors.ErrCodeTemplateLoad, "no template image")
	}

	face, err := c.fonts.Face(res, p.PixelSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	w, h := p.Frame.Width, p.Frame.Height
	dc := gg.NewContext(w, h)
	dc.DrawImage(fit(base, w, h), 0, 0)

	if c.guides {
		dc.SetRGBA(0, 0, 0, 0.35)
		dc.SetLineWidth(1)
		dc.SetDash(6, 4)
		dc.DrawRectangle(p.Safe.Left, p.Safe.Top, p.Safe.Width(), p.Safe.Height())
		dc.Stroke()
		dc.SetDash()
	}

	dc.SetFontFace(face)
	dc.SetHexColor(res.Color)
	for _, row := range p.Rows {
		if row.Mode == layout.ModeSpacer {
			continue
		}
		for _, u := range row.Units {
			dc.DrawString(u.Text, u.X, row.Baseline)
		}
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected canvas type %T", dc.Image())
	}
	return img, nil
}

// fit scales base to exactly w×h. Templates normally match the frame
// already, in which case the image is only converted.
func fit(base image.Image, w, h int) image.Image {
	b := base.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return imaging.Clone(base)
	}
	return imaging.Resize(base, w, h, imaging.Lanczos)
}
