package pipeline

import (
	"bytes"
	"context"
	"image"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/goodnews/pkg/app"
	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/export"
	"github.com/matzehuels/goodnews/pkg/fonts"
	"github.com/matzehuels/goodnews/pkg/layout"
	"github.com/matzehuels/goodnews/pkg/render"
	"github.com/matzehuels/goodnews/pkg/style"
)

func testRunner() *Runner {
	return NewRunner(
		fonts.NewRegistry(fonts.WithoutSystemFonts()),
		log.NewWithOptions(io.Discard, log.Options{}),
	)
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no template", Options{Style: style.Default()}, errors.ErrCodeCaptureNotReady},
		{"bad size", Options{Style: style.Config{PointSize: -1}, Template: render.Synthetic(style.CategoryGood)}, errors.ErrCodeInvalidSize},
		{"bad text", Options{Text: "a\x00b", Style: style.Default(), Template: render.Synthetic(style.CategoryGood)}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidateSetsFrameFromTemplate(t *testing.T) {
	opts := Options{Style: style.Default(), Template: render.Synthetic(style.CategoryGood)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Frame.Width != render.TemplateWidth || opts.Frame.PadTop != layout.DefaultPadTop {
		t.Errorf("Frame = %+v, want default frame of template size", opts.Frame)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	custom := Options{
		Style:    style.Default(),
		Template: render.Synthetic(style.CategoryGood),
		Frame:    layout.Frame{PadSide: 0.2, Scale: 2},
	}
	if err := custom.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if custom.Frame.Width != render.TemplateWidth || custom.Frame.PadSide != 0.2 || custom.Frame.Scale != 2 {
		t.Errorf("Frame = %+v, want custom padding with template size", custom.Frame)
	}
}

func TestExecute(t *testing.T) {
	r := testRunner()
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Text:     "Hello\n\nWorld",
		Style:    style.Default(),
		Template: render.Synthetic(style.CategoryGood),
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	wantModes := []layout.Mode{layout.ModeFlow, layout.ModeSpacer, layout.ModeFlow}
	if len(result.Lines) != len(wantModes) {
		t.Fatalf("lines = %d, want %d", len(result.Lines), len(wantModes))
	}
	for i, m := range wantModes {
		if result.Lines[i].Mode != m {
			t.Errorf("line %d mode = %s, want %s", i, result.Lines[i].Mode, m)
		}
	}
	if result.Resolved.PixelSize != 32 || result.Resolved.Color != "#dc3023" {
		t.Errorf("Resolved = %+v", result.Resolved)
	}
	if b := result.Image.Bounds(); b.Dx() != render.TemplateWidth || b.Dy() != render.TemplateHeight {
		t.Errorf("image size = %v", b.Size())
	}
	if result.Stats.Lines != 3 || result.Stats.Units != 3 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testRunner().Execute(ctx, Options{
		Text:     "x",
		Style:    style.Default(),
		Template: render.Synthetic(style.CategoryGood),
	})
	if err != context.Canceled {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestSurfaceCapture(t *testing.T) {
	s := NewSurface(testRunner(), layout.Frame{})

	if _, err := s.Capture(context.Background()); err != export.ErrNotReady {
		t.Errorf("Capture() before mount = %v, want ErrNotReady", err)
	}
	if s.Mounted() {
		t.Error("Mounted() should be false before Mount")
	}

	s.Mount(style.CategoryGood, render.Synthetic(style.CategoryGood))
	s.Update(app.Reduce(app.Initial(), app.SetText{Text: "Hi"}))

	a, err := s.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture() error: %v", err)
	}
	if a.Image.Bounds().Dx() != render.TemplateWidth {
		t.Errorf("artifact width = %d", a.Image.Bounds().Dx())
	}

	// Switching to a category whose template has not loaded is not ready.
	s.Update(app.Reduce(app.Initial(), app.SetCategory{Category: style.CategoryBad}))
	if _, err := s.Capture(context.Background()); err != export.ErrNotReady {
		t.Errorf("Capture() with unmounted category = %v, want ErrNotReady", err)
	}
}

func TestSurfaceConcurrentCapture(t *testing.T) {
	s := NewSurface(testRunner(), layout.Frame{})
	s.Mount(style.CategoryGood, render.Synthetic(style.CategoryGood))
	s.Update(app.Reduce(app.Initial(), app.SetText{Text: "Good\nnews everyone"}))

	const n = 4
	var wg sync.WaitGroup
	imgs := make([]*image.RGBA, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.Capture(context.Background())
			if err != nil {
				errs[i] = err
				return
			}
			imgs[i], _ = a.Image.(*image.RGBA)
		}()
	}
	wg.Wait()

	for i := range n {
		if errs[i] != nil {
			t.Fatalf("capture %d: %v", i, errs[i])
		}
		if imgs[i] == nil {
			t.Fatalf("capture %d: not an RGBA image", i)
		}
		if !bytes.Equal(imgs[i].Pix, imgs[0].Pix) {
			t.Errorf("capture %d differs from capture 0", i)
		}
	}
}

func TestSurfaceLayoutJustify(t *testing.T) {
	s := NewSurface(testRunner(), layout.Frame{})
	s.Mount(style.CategoryGood, render.Synthetic(style.CategoryGood))
	st := app.Reduce(app.Initial(), app.SetText{Text: "Hi"})
	st = app.Reduce(st, app.SetAlignment{Alignment: style.AlignJustify})
	s.Update(st)

	result, err := s.Layout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	units := result.Placement.Rows[0].Units
	safe := result.Placement.Safe
	if len(units) != 2 {
		t.Fatalf("units = %d, want 2", len(units))
	}
	if units[0].X != safe.Left {
		t.Errorf("H at %v, want %v", units[0].X, safe.Left)
	}
	if right := units[1].X + units[1].Width; right < safe.Right-1e-6 || right > safe.Right+1e-6 {
		t.Errorf("i ends at %v, want %v", right, safe.Right)
	}
}

func TestSurfaceWithExporter(t *testing.T) {
	s := NewSurface(testRunner(), layout.Frame{})
	s.Mount(style.CategoryGood, render.Synthetic(style.CategoryGood))
	s.Update(app.Reduce(app.Initial(), app.SetText{Text: "Good news"}))

	e := &export.Exporter{Capturer: s, Notifier: nopNotifier{}, Dir: t.TempDir()}
	if _, err := e.Download(context.Background()); err != nil {
		t.Errorf("Download() error: %v", err)
	}
}

type nopNotifier struct{}

func (nopNotifier) Info(string)  {}
func (nopNotifier) Error(string) {}
