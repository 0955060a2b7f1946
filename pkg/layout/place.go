package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/goodnews/pkg/style"
	"github.com/matzehuels/goodnews/pkg/text"
)

// Measurer reports glyph metrics at the placement's pixel size.
type Measurer interface {
	// Advance returns the horizontal advance of s in pixels.
	Advance(s string) float64

	// Metrics returns the ascent and descent of the face in pixels.
	Metrics() (ascent, descent float64)
}

// PlacedUnit is a unit of text at an absolute horizontal position.
type PlacedUnit struct {
	Text  string
	X     float64 // left edge in frame pixels
	Width float64
}

// Row is one visual row of the overlay. A flow line longer than the safe
// width wraps into several rows; distributed and spacer lines are always a
// single row.
type Row struct {
	Line     int // index into the rendered lines
	Mode     Mode
	Top      float64
	Baseline float64
	Units    []PlacedUnit
}

// Placement is the fully positioned overlay.
type Placement struct {
	Frame      Frame
	Safe       Rect
	PixelSize  float64
	LineHeight float64
	Align      style.Alignment
	Rows       []Row
}

// ContentHeight returns the height of the stacked rows.
func (p Placement) ContentHeight() float64 {
	return float64(len(p.Rows)) * p.LineHeight
}

// Overflows reports whether the rows are taller than the safe area.
func (p Placement) Overflows() bool {
	return p.ContentHeight() > p.Safe.Height()
}

// Place positions rendered lines inside the frame. The Measurer must be
// built for r.PixelSize multiplied by the frame's font scale.
func Place(lines []RenderedLine, r style.Resolved, f Frame, m Measurer) Placement {
	size := r.PixelSize * f.FontScale()
	p := Placement{
		Frame:      f,
		Safe:       f.Safe(),
		PixelSize:  size,
		LineHeight: size * LineHeightRatio,
		Align:      r.TextAlign,
	}

	for i, line := range lines {
		switch line.Mode {
		case ModeSpacer:
			p.Rows = append(p.Rows, Row{
				Line:  i,
				Mode:  ModeSpacer,
				Units: []PlacedUnit{{X: p.Safe.Left, Width: p.Safe.Width()}},
			})
		case ModeDistributed:
			p.Rows = append(p.Rows, Row{
				Line:  i,
				Mode:  ModeDistributed,
				Units: distribute(line.Units, p.Safe, m),
			})
		default:
			for _, seg := range Wrap(line.Text, p.Safe.Width(), m) {
				w := m.Advance(seg)
				p.Rows = append(p.Rows, Row{
					Line:  i,
					Mode:  ModeFlow,
					Units: []PlacedUnit{{Text: seg, X: alignX(r.TextAlign, p.Safe, w), Width: w}},
				})
			}
		}
	}

	ascent, descent := m.Metrics()
	top := p.Safe.CenterY() - p.ContentHeight()/2
	for i := range p.Rows {
		rowTop := top + float64(i)*p.LineHeight
		p.Rows[i].Top = rowTop
		p.Rows[i].Baseline = rowTop + (p.LineHeight-(ascent+descent))/2 + ascent
	}
	return p
}

// alignX returns the left edge of a flow unit of width w.
func alignX(a style.Alignment, safe Rect, w float64) float64 {
	switch a {
	case style.AlignRight:
		return safe.Right - w
	case style.AlignCenter:
		return safe.CenterX() - w/2
	default:
		return safe.Left
	}
}

// distribute spreads units across the safe width with equal gaps.
func distribute(units []string, safe Rect, m Measurer) []PlacedUnit {
	out := make([]PlacedUnit, len(units))
	total := 0.0
	for i, u := range units {
		w := m.Advance(u)
		out[i] = PlacedUnit{Text: u, Width: w}
		total += w
	}

	gap := 0.0
	if n := len(units); n > 1 {
		gap = max(0, (safe.Width()-total)/float64(n-1))
	}

	x := safe.Left
	for i := range out {
		out[i].X = x
		x += out[i].Width + gap
	}
	return out
}

// Wrap breaks a flow line into rows no wider than maxWidth. Breaks happen
// after spaces and around wide (CJK) characters; a single word wider than
// maxWidth is left to overflow.
func Wrap(line string, maxWidth float64, m Measurer) []string {
	if maxWidth <= 0 || m.Advance(line) <= maxWidth {
		return []string{line}
	}

	var rows []string
	var cur strings.Builder
	for _, atom := range breakAtoms(line) {
		candidate := cur.String() + atom
		if cur.Len() > 0 && m.Advance(strings.TrimRight(candidate, " ")) > maxWidth {
			rows = append(rows, strings.TrimRight(cur.String(), " "))
			cur.Reset()
			cur.WriteString(strings.TrimLeft(atom, " "))
			continue
		}
		cur.WriteString(atom)
	}
	if cur.Len() > 0 || len(rows) == 0 {
		rows = append(rows, strings.TrimRight(cur.String(), " "))
	}
	return rows
}

// breakAtoms splits a line into unbreakable pieces. Each word keeps its
// trailing spaces; every wide character stands alone.
func breakAtoms(line string) []string {
	var atoms []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			atoms = append(atoms, cur.String())
			cur.Reset()
		}
	}
	for _, g := range text.Graphemes(line) {
		switch {
		case runewidth.StringWidth(g) > 1:
			flush()
			atoms = append(atoms, g)
		case g == " ":
			cur.WriteString(g)
			flush()
		default:
			cur.WriteString(g)
		}
	}
	flush()
	return atoms
}
