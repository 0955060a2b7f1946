package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/layout"
	"github.com/matzehuels/goodnews/pkg/style"
)

// Synthetic template dimensions.
const (
	TemplateWidth  = 1200
	TemplateHeight = 900
)

type palette struct {
	paper, band color.NRGBA
}

var palettes = map[style.Category]palette{
	style.CategoryGood: {
		paper: color.NRGBA{0xfb, 0xf1, 0xde, 0xff},
		band:  color.NRGBA{0xf2, 0xc1, 0x4e, 0xff},
	},
	style.CategoryBad: {
		paper: color.NRGBA{0xee, 0xee, 0xee, 0xff},
		band:  color.NRGBA{0x9a, 0x9a, 0x9a, 0xff},
	},
}

// LoadTemplate opens the template image for a category. An empty path
// returns the synthetic template.
func LoadTemplate(c style.Category, path string) (image.Image, error) {
	if path == "" {
		return Synthetic(c), nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTemplateLoad, err, "open template %s", path)
	}
	return img, nil
}

// Synthetic draws a plain template: a paper background with a header and
// footer band sized to the default frame padding.
func Synthetic(c style.Category) *image.NRGBA {
	p, ok := palettes[c]
	if !ok {
		p = palettes[style.CategoryGood]
	}

	img := imaging.New(TemplateWidth, TemplateHeight, p.paper)
	h := float64(TemplateHeight)
	header := int(h * layout.DefaultPadTop * 0.6)
	footer := int(h * layout.DefaultPadBottom * 0.5)
	img = imaging.Paste(img, imaging.New(TemplateWidth, header, p.band), image.Pt(0, 0))
	img = imaging.Paste(img, imaging.New(TemplateWidth, footer, p.band), image.Pt(0, TemplateHeight-footer))
	return img
}

// FrameFor builds the layout frame of a template from its intrinsic size.
func FrameFor(img image.Image) layout.Frame {
	b := img.Bounds()
	return layout.NewFrame(b.Dx(), b.Dy())
}
