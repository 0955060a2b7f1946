// Package layout turns caption lines into positioned text units inside an
// overlay frame.
//
// Layout happens in two steps:
//
//  1. [RenderLines] tags each line with a layout mode. Lines are rendered as
//     a single flow unit for left, center and right alignment; for justify,
//     each visual character becomes its own unit. Empty lines become a blank
//     spacer regardless of alignment.
//  2. [Place] computes absolute coordinates for every unit inside the
//     frame's text-safe rectangle, using a [Measurer] for glyph advances.
//
// # Frame
//
// A [Frame] has the intrinsic size of the template image and fixed padding
// fractions for the top, bottom and sides. The stacked lines are vertically
// centred inside the remaining safe rectangle; content that does not fit
// overflows and is clipped by the compositor.
//
// # Distributed Lines
//
// Justified lines use space-between distribution: the first unit touches the
// left edge, the last unit touches the right edge and the free space is
// split into equal gaps. A single unit sits at the left edge. When the units
// are wider than the line, they are packed from the left without gaps.
package layout
