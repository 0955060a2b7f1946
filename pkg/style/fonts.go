package style

// Categories lists categories in display order.
var Categories = []Category{CategoryGood, CategoryBad}

// Alignments lists alignments in display order.
var Alignments = []Alignment{AlignLeft, AlignCenter, AlignRight, AlignJustify}

// FontKeys lists font keys in display order.
var FontKeys = []FontKey{FontDefault, FontSerif, FontSans, FontScript}

// fontStacks is the exhaustive font table.
var fontStacks = map[FontKey]string{
	FontDefault: `"Roboto","Helvetica","Arial",sans-serif`,
	FontSerif:   `"NSimSun","FangSong",sans`,
	FontSans:    `"Source Han Sans CN","Microsoft Yahei","Arial",sans-serif`,
	FontScript:  `"STKaiti","KaiTi",sans`,
}

// fontAliases maps accepted spellings to keys, including the pinyin names
// of the CJK typefaces each stack targets.
var fontAliases = map[string]FontKey{
	"default": FontDefault,
	"serif":   FontSerif,
	"songti":  FontSerif,
	"sans":    FontSans,
	"heiti":   FontSans,
	"script":  FontScript,
	"kaiti":   FontScript,
}

// FontLabels are short human-readable names for the composer and CLI help.
var FontLabels = map[FontKey]string{
	FontDefault: "Default",
	FontSerif:   "Songti (serif)",
	FontSans:    "Heiti (sans)",
	FontScript:  "Kaiti (script)",
}

// FontStack returns the stack for a key, falling back to the default entry.
func FontStack(k FontKey) string {
	if s, ok := fontStacks[k]; ok {
		return s
	}
	return fontStacks[FontDefault]
}
