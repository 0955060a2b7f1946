// Package fonts resolves the font stacks of the style table to parsed
// TrueType faces.
//
// Each family of a stack is looked up among the system fonts with
// go-findfont. The first file that parses as TrueType wins. When nothing
// matches, or a stack only names generic families, the Go fonts compiled
// into the binary are used, so a face is always available.
//
// A per-key override path (from the [fonts] config section) takes
// precedence over the stack.
package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/gomedium"

	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/style"
)

// SourceKind tells where a resolved font came from.
type SourceKind string

const (
	SourceOverride SourceKind = "override"
	SourceSystem   SourceKind = "system"
	SourceEmbedded SourceKind = "embedded"
)

// Source describes the file behind a resolved font.
type Source struct {
	Kind   SourceKind
	Family string // stack family that matched, empty for embedded fonts
	Path   string // file path, empty for embedded fonts
}

func (s Source) String() string {
	switch s.Kind {
	case SourceEmbedded:
		return "embedded " + s.Family
	case SourceOverride:
		return "override " + s.Path
	default:
		return fmt.Sprintf("%s (%s)", s.Family, s.Path)
	}
}

// genericFamilies are CSS generic names that never map to a file.
var genericFamilies = map[string]bool{
	"serif":      true,
	"sans":       true,
	"sans-serif": true,
	"monospace":  true,
	"cursive":    true,
}

// embedded is the compiled-in fallback per key. The overlay is drawn at
// weight 600, so the bold cuts are preferred.
var embedded = map[style.FontKey]struct {
	name string
	ttf  []byte
}{
	style.FontDefault: {"Go Bold", gobold.TTF},
	style.FontSans:    {"Go Bold", gobold.TTF},
	style.FontSerif:   {"Go Medium", gomedium.TTF},
	style.FontScript:  {"Go Bold Italic", gobolditalic.TTF},
}

// weightSuffixes are tried before the plain family name so a semibold or
// bold file is picked over the regular cut when the system has one.
var weightSuffixes = []string{"-SemiBold", "-Bold", " Bold", "bd", ""}

// Finder locates a font file by family or file name.
type Finder func(name string) (string, error)

// Option configures a Registry.
type Option func(*Registry)

// WithOverrides sets explicit TTF paths per font key.
func WithOverrides(paths map[style.FontKey]string) Option {
	return func(r *Registry) {
		for k, p := range paths {
			if p != "" {
				r.overrides[k] = p
			}
		}
	}
}

// WithFinder replaces the system font lookup.
func WithFinder(f Finder) Option {
	return func(r *Registry) { r.find = f }
}

// WithoutSystemFonts restricts resolution to overrides and embedded fonts.
func WithoutSystemFonts() Option {
	return func(r *Registry) { r.find = nil }
}

// Registry resolves and caches parsed fonts. It is safe for concurrent use.
// The faces it hands out are not; see Face.
type Registry struct {
	overrides map[style.FontKey]string
	find      Finder

	mu    sync.Mutex
	fonts map[style.FontKey]loaded
}

type loaded struct {
	font   *truetype.Font
	source Source
}

// NewRegistry creates a registry that looks up system fonts by default.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		overrides: make(map[style.FontKey]string),
		find:      findfont.Find,
		fonts:     make(map[style.FontKey]loaded),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Font returns the parsed font for the resolved style along with where it
// came from. An override that cannot be read or parsed is an error; a stack
// that matches no system font falls back to the embedded font silently.
func (r *Registry) Font(res style.Resolved) (*truetype.Font, Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, err := r.load(res)
	return l.font, l.source, err
}

func (r *Registry) load(res style.Resolved) (loaded, error) {
	if l, ok := r.fonts[res.FontKey]; ok {
		return l, nil
	}

	var l loaded
	if path, ok := r.overrides[res.FontKey]; ok {
		f, err := parseFile(path)
		if err != nil {
			return loaded{}, err
		}
		l = loaded{font: f, source: Source{Kind: SourceOverride, Path: path}}
	} else if f, src, ok := r.system(res.Families()); ok {
		l = loaded{font: f, source: src}
	} else {
		f, src, err := fallback(res.FontKey)
		if err != nil {
			return loaded{}, err
		}
		l = loaded{font: f, source: src}
	}

	r.fonts[res.FontKey] = l
	return l, nil
}

// system walks the stack and returns the first family that resolves to a
// parseable TrueType file.
func (r *Registry) system(families []string) (*truetype.Font, Source, bool) {
	if r.find == nil {
		return nil, Source{}, false
	}
	for _, family := range families {
		if genericFamilies[strings.ToLower(family)] {
			continue
		}
		for _, suffix := range weightSuffixes {
			path, err := r.find(family + suffix)
			if err != nil {
				continue
			}
			f, err := parseFile(path)
			if err != nil {
				// Collections and CFF outlines are not supported by freetype.
				continue
			}
			return f, Source{Kind: SourceSystem, Family: family, Path: path}, true
		}
	}
	return nil, Source{}, false
}

func fallback(key style.FontKey) (*truetype.Font, Source, error) {
	e, ok := embedded[key]
	if !ok {
		e = embedded[style.FontDefault]
	}
	f, err := truetype.Parse(e.ttf)
	if err != nil {
		return nil, Source{}, errors.Wrap(errors.ErrCodeFontLoad, err, "parse embedded font")
	}
	return f, Source{Kind: SourceEmbedded, Family: e.name}, nil
}

func parseFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "read font %s", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "parse font %s", path)
	}
	return f, nil
}

// Face returns a new face of the resolved font at the given pixel size.
// Faces are rendered at 72 DPI so the size in points equals the size in
// pixels. A face keeps glyph and hinting state, so every render takes its
// own; only the parsed font is shared.
func (r *Registry) Face(res style.Resolved, px float64) (font.Face, error) {
	if px <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize, "face size must be positive, got %v", px)
	}

	r.mu.Lock()
	l, err := r.load(res)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(l.font, &truetype.Options{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Close drops the parsed fonts.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.fonts)
	return nil
}
