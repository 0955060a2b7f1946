package style

import (
	"strconv"
	"strings"

	"github.com/matzehuels/goodnews/pkg/errors"
)

// Category selects the template image and the text colour.
type Category string

const (
	CategoryGood Category = "good"
	CategoryBad  Category = "bad"
)

// Alignment is the horizontal text alignment applied to every line.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// FontKey selects an entry in the font table.
type FontKey string

const (
	FontDefault FontKey = "default"
	FontSerif   FontKey = "serif"
	FontSans    FontKey = "sans"
	FontScript  FontKey = "script"
)

const (
	// DefaultPointSize is the point size restored by a reset.
	DefaultPointSize = 24.0

	// FontWeight is applied uniformly to all overlay text.
	FontWeight = 600
)

// Config is the user-selected style of the overlay.
type Config struct {
	Category  Category  `json:"category" toml:"category"`
	FontKey   FontKey   `json:"font" toml:"font"`
	PointSize float64   `json:"size" toml:"size"`
	Alignment Alignment `json:"align" toml:"align"`
}

// Default returns the style restored by a reset: good news, centred,
// default font, 24pt.
func Default() Config {
	return Config{
		Category:  CategoryGood,
		FontKey:   FontDefault,
		PointSize: DefaultPointSize,
		Alignment: AlignCenter,
	}
}

// Resolved holds the concrete rendering attributes for an overlay.
type Resolved struct {
	FontKey   FontKey   // key actually used after fallback
	FontStack string    // CSS-style font-family stack
	Color     string    // "#rrggbb"
	PixelSize float64   // font size in CSS pixels
	TextAlign Alignment // alignment applied to every line
	Weight    int       // font weight
}

// Families returns the family names of the font stack in priority order,
// with quotes stripped. Generic families such as sans-serif are included.
func (r Resolved) Families() []string {
	parts := strings.Split(r.FontStack, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Resolve maps a Config to rendering attributes. It never fails: an unknown
// font key resolves to the default font stack, an unknown alignment to
// center, and an unknown category to the good-news colour.
func Resolve(c Config) Resolved {
	key := c.FontKey
	stack, ok := fontStacks[key]
	if !ok {
		key = FontDefault
		stack = fontStacks[FontDefault]
	}

	align := c.Alignment
	if !align.Valid() {
		align = AlignCenter
	}

	return Resolved{
		FontKey:   key,
		FontStack: stack,
		Color:     ColorFor(c.Category),
		PixelSize: PixelSize(c.PointSize),
		TextAlign: align,
		Weight:    FontWeight,
	}
}

// PixelSize converts a point size to CSS pixels (96 DPI / 72 DPI).
func PixelSize(pt float64) float64 {
	return pt * 4 / 3
}

// ColorFor returns the fixed text colour of a category.
func ColorFor(c Category) string {
	switch c {
	case CategoryBad:
		return "#5a5a5a"
	default:
		return "#dc3023"
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryGood || c == CategoryBad
}

// Valid reports whether a is a known alignment.
func (a Alignment) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

// Next cycles through categories in display order.
func (c Category) Next() Category {
	if c == CategoryGood {
		return CategoryBad
	}
	return CategoryGood
}

// Next cycles through alignments in display order.
func (a Alignment) Next() Alignment {
	for i, v := range Alignments {
		if v == a {
			return Alignments[(i+1)%len(Alignments)]
		}
	}
	return AlignCenter
}

// Next cycles through font keys in display order.
func (k FontKey) Next() FontKey {
	for i, v := range FontKeys {
		if v == k {
			return FontKeys[(i+1)%len(FontKeys)]
		}
	}
	return FontDefault
}

// ParseCategory parses a category name. Besides the canonical names it
// accepts the "good-news-type" / "bad-news-type" spellings.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good", "good-news", "good-news-type":
		return CategoryGood, nil
	case "bad", "bad-news", "bad-news-type":
		return CategoryBad, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStyle, "invalid category: %q (must be 'good' or 'bad')", s)
}

// ParseAlignment parses an alignment name.
func ParseAlignment(s string) (Alignment, error) {
	a := Alignment(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", errors.New(errors.ErrCodeInvalidStyle, "invalid alignment: %q (must be left, center, right or justify)", s)
	}
	return a, nil
}

// ParseFontKey maps a font name to a key. Unknown names fall back to
// FontDefault; the boolean reports whether the name was recognised.
func ParseFontKey(s string) (FontKey, bool) {
	k, ok := fontAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return FontDefault, false
	}
	return k, true
}

// ParsePointSize parses a point size entered by the user. It returns false
// for anything that is not a positive finite number, in which case the
// caller keeps its previous value.
func ParsePointSize(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	if errors.ValidatePointSize(v) != nil {
		return 0, false
	}
	return v, true
}
