package layout

import (
	"github.com/matzehuels/goodnews/pkg/style"
	"github.com/matzehuels/goodnews/pkg/text"
)

// Mode is the layout strategy of a rendered line.
type Mode string

const (
	// ModeFlow renders the line as one unit positioned by alignment.
	ModeFlow Mode = "flow"

	// ModeDistributed renders one unit per visual character spread across
	// the full line width.
	ModeDistributed Mode = "distributed"

	// ModeSpacer is a blank line that occupies one line height.
	ModeSpacer Mode = "spacer"
)

// RenderedLine is a source line tagged with its layout mode.
type RenderedLine struct {
	Text  string
	Mode  Mode
	Units []string // flow: the whole line; distributed: one per character; spacer: one empty marker
}

// RenderLines chooses a layout strategy for every line of doc.
// The result has exactly one RenderedLine per document line.
func RenderLines(doc text.Document, align style.Alignment) []RenderedLine {
	out := make([]RenderedLine, 0, len(doc))
	for _, line := range doc {
		out = append(out, renderLine(line, align))
	}
	return out
}

func renderLine(line string, align style.Alignment) RenderedLine {
	switch {
	case line == "":
		return RenderedLine{Mode: ModeSpacer, Units: []string{""}}
	case align == style.AlignJustify:
		return RenderedLine{Text: line, Mode: ModeDistributed, Units: text.Graphemes(line)}
	default:
		return RenderedLine{Text: line, Mode: ModeFlow, Units: []string{line}}
	}
}

// UnitCount returns the total number of units across lines.
func UnitCount(lines []RenderedLine) int {
	n := 0
	for _, l := range lines {
		n += len(l.Units)
	}
	return n
}
