package text

import (
	"strings"
	"testing"
)

func TestSplitLinesCount(t *testing.T) {
	inputs := []string{
		"",
		"Hello",
		"Hello\n\nWorld",
		"\n",
		"\n\n\n",
		"trailing\n",
		"\nleading",
		"喜报\n恭喜发财",
	}

	for _, in := range inputs {
		got := SplitLines(in)
		want := strings.Count(in, "\n") + 1
		if len(got) != want {
			t.Errorf("SplitLines(%q) has %d lines, want %d", in, len(got), want)
		}
		if got.Join() != in {
			t.Errorf("SplitLines(%q).Join() = %q", in, got.Join())
		}
	}
}

func TestSplitLinesEmpty(t *testing.T) {
	got := SplitLines("")
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("SplitLines(\"\") = %q, want [\"\"]", got)
	}
	if !got.Blank() {
		t.Error("Blank() = false, want true")
	}
}

func TestSplitLinesPreservesBlankLines(t *testing.T) {
	got := SplitLines("Hello\n\nWorld\n")
	want := []string{"Hello", "", "World", ""}
	if len(got) != len(want) {
		t.Fatalf("SplitLines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitLinesIdempotent(t *testing.T) {
	in := "a\n\nb"
	once := SplitLines(in)
	twice := SplitLines(once.Join())
	if once.Join() != twice.Join() || len(once) != len(twice) {
		t.Errorf("SplitLines not idempotent: %q vs %q", once, twice)
	}
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"ascii", "Hi", []string{"H", "i"}},
		{"cjk", "喜报", []string{"喜", "报"}},
		{"combining mark", "e\u0301a", []string{"e\u0301", "a"}},
		{"flag", "🇨🇳!", []string{"🇨🇳", "!"}},
		{"spaces count", "a b", []string{"a", " ", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Graphemes(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Graphemes(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Graphemes(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
			if Length(tt.in) != len(tt.want) {
				t.Errorf("Length(%q) = %d, want %d", tt.in, Length(tt.in), len(tt.want))
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := NormalizeNewlines("a\r\nb\rc\n"); got != "a\nb\nc\n" {
		t.Errorf("NormalizeNewlines() = %q", got)
	}
}
