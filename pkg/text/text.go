// Package text splits caption input into lines and visual characters.
//
// Lines are separated by "\n" only; empty lines are kept so that blank
// spacer lines survive into the layout. Visual characters are Unicode
// extended grapheme clusters, so a combining sequence, an emoji with
// modifiers or a wide CJK character is always one unit.
package text

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Document is an ordered sequence of lines. It always holds at least one line.
type Document []string

// SplitLines splits raw text on newline characters, preserving order and
// empty lines. The result has strings.Count(raw, "\n")+1 entries; empty
// input yields a single empty line.
func SplitLines(raw string) Document {
	return Document(strings.Split(raw, "\n"))
}

// Join reassembles a document into raw text. Join(SplitLines(s)) == s.
func (d Document) Join() string {
	return strings.Join(d, "\n")
}

// Blank reports whether the document consists of a single empty line.
func (d Document) Blank() bool {
	return len(d) == 1 && d[0] == ""
}

// Graphemes splits a line into visual characters.
func Graphemes(line string) []string {
	if line == "" {
		return nil
	}
	out := make([]string, 0, len(line))
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Length returns the number of visual characters in a line.
func Length(line string) int {
	return uniseg.GraphemeClusterCount(line)
}

// NormalizeNewlines converts CRLF and lone CR line endings to "\n".
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
