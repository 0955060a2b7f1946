package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/goodnews/pkg/layout"
	"github.com/matzehuels/goodnews/pkg/style"
	"github.com/matzehuels/goodnews/pkg/text"
)

// previewLines lays the document out in terminal cells. It mirrors the
// raster layout: flow lines are aligned and wrapped, distributed lines
// spread their graphemes edge to edge, and spacers stay blank. Every
// returned line is exactly width cells wide.
func previewLines(doc text.Document, align style.Alignment, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, line := range layout.RenderLines(doc, align) {
		switch line.Mode {
		case layout.ModeSpacer:
			out = append(out, strings.Repeat(" ", width))
		case layout.ModeDistributed:
			out = append(out, spreadCells(line.Units, width))
		default:
			for _, row := range strings.Split(runewidth.Wrap(line.Text, width), "\n") {
				out = append(out, alignCells(row, align, width))
			}
		}
	}
	return out
}

// alignCells pads s to width according to the alignment.
func alignCells(s string, align style.Alignment, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "")
	}
	free := width - w
	switch align {
	case style.AlignRight:
		return strings.Repeat(" ", free) + s
	case style.AlignCenter:
		left := free / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", free-left)
	default:
		return s + strings.Repeat(" ", free)
	}
}

// spreadCells places units with equal gaps so the first touches the left
// edge and the last the right edge. Leftover cells go to the leftmost gaps.
func spreadCells(units []string, width int) string {
	used := 0
	for _, u := range units {
		used += runewidth.StringWidth(u)
	}
	if len(units) == 1 || used >= width {
		return alignCells(strings.Join(units, ""), style.AlignLeft, width)
	}

	gaps := len(units) - 1
	free := width - used
	gap, extra := free/gaps, free%gaps

	var b strings.Builder
	for i, u := range units {
		b.WriteString(u)
		if i == gaps {
			break
		}
		n := gap
		if i < extra {
			n++
		}
		b.WriteString(strings.Repeat(" ", n))
	}
	return b.String()
}
