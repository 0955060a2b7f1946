package fonts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/style"
)

func resolvedFor(k style.FontKey) style.Resolved {
	return style.Resolve(style.Config{FontKey: k, PointSize: 24})
}

func writeFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Roboto-Bold.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEmbeddedFallback(t *testing.T) {
	r := NewRegistry(WithoutSystemFonts())
	for _, k := range style.FontKeys {
		f, src, err := r.Font(resolvedFor(k))
		if err != nil {
			t.Fatalf("Font(%s) error: %v", k, err)
		}
		if f == nil {
			t.Fatalf("Font(%s) returned nil font", k)
		}
		if src.Kind != SourceEmbedded {
			t.Errorf("Font(%s) source = %s, want embedded", k, src.Kind)
		}
	}
}

func TestSystemLookupWalksStack(t *testing.T) {
	path := writeFont(t)
	var asked []string
	finder := func(name string) (string, error) {
		asked = append(asked, name)
		if name == "Roboto-Bold" {
			return path, nil
		}
		return "", os.ErrNotExist
	}

	r := NewRegistry(WithFinder(finder))
	_, src, err := r.Font(resolvedFor(style.FontDefault))
	if err != nil {
		t.Fatalf("Font() error: %v", err)
	}
	if src.Kind != SourceSystem || src.Family != "Roboto" || src.Path != path {
		t.Errorf("source = %+v, want system Roboto at %s", src, path)
	}
	if len(asked) == 0 || asked[0] != "Roboto-SemiBold" {
		t.Errorf("first lookup = %v, want Roboto-SemiBold", asked)
	}
}

func TestSystemLookupSkipsGenericAndUnparseable(t *testing.T) {
	junk := filepath.Join(t.TempDir(), "junk.ttc")
	if err := os.WriteFile(junk, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	finder := func(name string) (string, error) {
		if strings.HasPrefix(name, "sans") {
			t.Errorf("generic family %q should not be looked up", name)
		}
		return junk, nil
	}

	r := NewRegistry(WithFinder(finder))
	_, src, err := r.Font(resolvedFor(style.FontScript))
	if err != nil {
		t.Fatalf("Font() error: %v", err)
	}
	if src.Kind != SourceEmbedded {
		t.Errorf("source = %s, want embedded", src.Kind)
	}
}

func TestOverride(t *testing.T) {
	path := writeFont(t)
	r := NewRegistry(WithoutSystemFonts(), WithOverrides(map[style.FontKey]string{style.FontSerif: path}))

	_, src, err := r.Font(resolvedFor(style.FontSerif))
	if err != nil {
		t.Fatalf("Font() error: %v", err)
	}
	if src.Kind != SourceOverride || src.Path != path {
		t.Errorf("source = %+v, want override %s", src, path)
	}

	_, src, _ = r.Font(resolvedFor(style.FontSans))
	if src.Kind != SourceEmbedded {
		t.Errorf("keys without override should fall back, got %s", src.Kind)
	}
}

func TestOverrideMissingFile(t *testing.T) {
	r := NewRegistry(WithOverrides(map[style.FontKey]string{
		style.FontDefault: filepath.Join(t.TempDir(), "missing.ttf"),
	}))
	_, _, err := r.Font(resolvedFor(style.FontDefault))
	if !errors.Is(err, errors.ErrCodeFontLoad) {
		t.Errorf("error = %v, want FONT_LOAD", err)
	}
}

func TestFacePerCall(t *testing.T) {
	r := NewRegistry(WithoutSystemFonts())
	defer r.Close()

	res := resolvedFor(style.FontDefault)
	a, err := r.Face(res, 32)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.Face(res, 32)
	if a == b {
		t.Error("each call should get its own face")
	}
	fa, _, _ := r.Font(res)
	fb, _, _ := r.Font(res)
	if fa != fb {
		t.Error("parsed font should be cached")
	}

	if _, err := r.Face(res, 0); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("Face(0) error = %v, want INVALID_SIZE", err)
	}
}

func TestMeasurer(t *testing.T) {
	r := NewRegistry(WithoutSystemFonts())
	face, err := r.Face(resolvedFor(style.FontDefault), 32)
	if err != nil {
		t.Fatal(err)
	}
	m := Measurer{Face: face}

	if m.Advance("") != 0 {
		t.Error("empty string should have zero advance")
	}
	h, hi := m.Advance("H"), m.Advance("Hi")
	if h <= 0 || hi <= h {
		t.Errorf("Advance(H)=%v Advance(Hi)=%v, want 0 < H < Hi", h, hi)
	}

	asc, desc := m.Metrics()
	if asc <= 0 || desc <= 0 {
		t.Errorf("Metrics() = (%v, %v), want positive", asc, desc)
	}
	if asc+desc > 32*1.5 {
		t.Errorf("ascent+descent = %v exceeds line height", asc+desc)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Source{Kind: SourceEmbedded, Family: "Go Bold"}, "embedded Go Bold"},
		{Source{Kind: SourceOverride, Path: "/f.ttf"}, "override /f.ttf"},
		{Source{Kind: SourceSystem, Family: "Arial", Path: "/a.ttf"}, "Arial (/a.ttf)"},
	}
	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
