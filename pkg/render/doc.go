// Package render rasterizes a positioned overlay onto a template image.
//
// The [Compositor] draws the base image at the full frame bounds and then
// every placed unit of a [layout.Placement] in the resolved colour, size and
// weight. Spacer rows draw nothing. Text running past the frame is clipped
// by the canvas bounds.
//
//	base, _ := render.LoadTemplate(style.CategoryGood, "")
//	c := render.NewCompositor(fonts.NewRegistry())
//	img, err := c.Compose(base, placement, resolved)
//
// Templates come from image files; an empty path selects a synthetic
// template generated for the category.
package render
