package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/observability"
)

type recordingNotifier struct {
	infos, errs []string
}

func (n *recordingNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }
func (n *recordingNotifier) Error(msg string) { n.errs = append(n.errs, msg) }

type fakeClipboard struct {
	data []byte
	err  error
}

func (c *fakeClipboard) WriteImage(png []byte) error {
	if c.err != nil {
		return c.err
	}
	c.data = png
	return nil
}

func testImage() image.Image {
	return imaging.New(40, 30, color.NRGBA{0xdc, 0x30, 0x23, 0xff})
}

func readyCapturer() Capturer {
	return CaptureFunc(func(context.Context) (image.Image, error) { return testImage(), nil })
}

func TestCaptureFunc(t *testing.T) {
	var nilFunc CaptureFunc
	if _, err := nilFunc.Capture(context.Background()); err != ErrNotReady {
		t.Errorf("nil CaptureFunc error = %v, want ErrNotReady", err)
	}

	unmounted := CaptureFunc(func(context.Context) (image.Image, error) { return nil, nil })
	if _, err := unmounted.Capture(context.Background()); !errors.Is(err, errors.ErrCodeCaptureNotReady) {
		t.Errorf("unmounted error = %v, want CAPTURE_NOT_READY", err)
	}

	a, err := readyCapturer().Capture(context.Background())
	if err != nil || a.Image == nil || a.Created.IsZero() {
		t.Errorf("Capture() = %+v, %v", a, err)
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(testImage())
	if err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("decoded size = %v, want 40x30", img.Bounds().Size())
	}

	if _, err := EncodePNG(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, errors.ErrCodeEncoding) {
		t.Errorf("empty image error = %v, want ENCODING_FAILED", err)
	}
}

func TestDownload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := Download(context.Background(), NewArtifact(testImage()), dir, nil)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if filepath.Base(path) != FileName {
		t.Errorf("file name = %s, want %s", filepath.Base(path), FileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("downloaded file is not a PNG")
	}
}

func TestCopyToClipboardSuccess(t *testing.T) {
	n := &recordingNotifier{}
	cb := &fakeClipboard{}

	if err := CopyToClipboard(context.Background(), NewArtifact(testImage()), cb, n, nil); err != nil {
		t.Fatalf("CopyToClipboard() error: %v", err)
	}
	if len(n.infos) != 1 || n.infos[0] != MsgCopied || len(n.errs) != 0 {
		t.Errorf("notifications = info %q error %q, want exactly one info", n.infos, n.errs)
	}
	if !bytes.HasPrefix(cb.data, []byte("\x89PNG")) {
		t.Error("clipboard should hold PNG bytes")
	}
}

func TestCopyToClipboardEncodingFailure(t *testing.T) {
	n := &recordingNotifier{}
	cb := &fakeClipboard{}
	failing := func(image.Image) ([]byte, error) {
		return nil, errors.New(errors.ErrCodeEncoding, "boom")
	}

	err := CopyToClipboard(context.Background(), NewArtifact(testImage()), cb, n, failing)
	if !errors.Is(err, errors.ErrCodeEncoding) {
		t.Errorf("error = %v, want ENCODING_FAILED", err)
	}
	if len(n.errs) != 1 || n.errs[0] != MsgRenderFailed || len(n.infos) != 0 {
		t.Errorf("notifications = info %q error %q, want exactly one error", n.infos, n.errs)
	}
	if cb.data != nil {
		t.Error("clipboard should not be written after an encoding failure")
	}
}

func TestCopyToClipboardWriteFailure(t *testing.T) {
	n := &recordingNotifier{}
	cb := &fakeClipboard{err: errors.New(errors.ErrCodeClipboardUnavailable, "no display")}

	err := CopyToClipboard(context.Background(), NewArtifact(testImage()), cb, n, nil)
	if !errors.Is(err, errors.ErrCodeClipboardUnavailable) {
		t.Errorf("error = %v, want CLIPBOARD_UNAVAILABLE", err)
	}
	if len(n.errs) != 1 || len(n.infos) != 0 {
		t.Errorf("notifications = info %q error %q, want exactly one error", n.infos, n.errs)
	}
}

func TestExporterNotReadyIsSilent(t *testing.T) {
	n := &recordingNotifier{}
	cb := &fakeClipboard{}
	dir := t.TempDir()
	e := &Exporter{
		Capturer:  CaptureFunc(nil),
		Clipboard: cb,
		Notifier:  n,
		Dir:       dir,
	}

	if err := e.Copy(context.Background()); !errors.Is(err, errors.ErrCodeCaptureNotReady) {
		t.Errorf("Copy() error = %v, want CAPTURE_NOT_READY", err)
	}
	if _, err := e.Download(context.Background()); !errors.Is(err, errors.ErrCodeCaptureNotReady) {
		t.Errorf("Download() error = %v, want CAPTURE_NOT_READY", err)
	}
	if len(n.infos)+len(n.errs) != 0 {
		t.Errorf("not-ready export raised notifications: info %q error %q", n.infos, n.errs)
	}
	if cb.data != nil {
		t.Error("clipboard written despite not-ready capture")
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Error("file written despite not-ready capture")
	}
}

func TestExporterDownload(t *testing.T) {
	n := &recordingNotifier{}
	e := &Exporter{Capturer: readyCapturer(), Notifier: n, Dir: t.TempDir()}

	path, err := e.Download(context.Background())
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file at %s: %v", path, err)
	}
	if len(n.infos) != 1 || len(n.errs) != 0 {
		t.Errorf("notifications = info %q error %q, want one info", n.infos, n.errs)
	}
}

func TestExporterDownloadEncodingFailure(t *testing.T) {
	n := &recordingNotifier{}
	e := &Exporter{
		Capturer: CaptureFunc(func(context.Context) (image.Image, error) {
			return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
		}),
		Notifier: n,
		Dir:      t.TempDir(),
	}

	if _, err := e.Download(context.Background()); !errors.Is(err, errors.ErrCodeEncoding) {
		t.Errorf("error = %v, want ENCODING_FAILED", err)
	}
	if len(n.errs) != 1 || n.errs[0] != MsgRenderFailed || len(n.infos) != 0 {
		t.Errorf("notifications = info %q error %q, want one render error", n.infos, n.errs)
	}
}

func TestExporterCopyEachCallCaptures(t *testing.T) {
	calls := 0
	e := &Exporter{
		Capturer: CaptureFunc(func(context.Context) (image.Image, error) {
			calls++
			return testImage(), nil
		}),
		Clipboard: &fakeClipboard{},
		Notifier:  &recordingNotifier{},
	}
	for i := 0; i < 2; i++ {
		if err := e.Copy(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 2 {
		t.Errorf("capture calls = %d, want 2 (artifacts are never cached)", calls)
	}
}

func TestCopyToClipboardCancelled(t *testing.T) {
	n := &recordingNotifier{}
	cb := &fakeClipboard{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CopyToClipboard(ctx, NewArtifact(testImage()), cb, n, nil)
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(n.infos)+len(n.errs) != 0 {
		t.Errorf("cancelled copy raised notifications: info %q error %q", n.infos, n.errs)
	}
	if cb.data != nil {
		t.Error("clipboard written after cancellation")
	}
}

type recordingExportHooks struct {
	observability.NoopExportHooks
	captures []bool
}

func (h *recordingExportHooks) OnCapture(_ context.Context, ready bool) {
	h.captures = append(h.captures, ready)
}

func TestExporterCaptureHook(t *testing.T) {
	hooks := &recordingExportHooks{}
	observability.SetExportHooks(hooks)
	defer observability.Reset()

	failing := &Exporter{
		Capturer: CaptureFunc(func(context.Context) (image.Image, error) {
			return nil, errors.New(errors.ErrCodeFontLoad, "no font")
		}),
		Notifier: &recordingNotifier{},
	}
	if err := failing.Copy(context.Background()); !errors.Is(err, errors.ErrCodeFontLoad) {
		t.Fatalf("Copy() error = %v, want FONT_LOAD", err)
	}

	ok := &Exporter{Capturer: readyCapturer(), Clipboard: &fakeClipboard{}, Notifier: &recordingNotifier{}}
	if err := ok.Copy(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(hooks.captures) != 2 || hooks.captures[0] || !hooks.captures[1] {
		t.Errorf("OnCapture calls = %v, want [false true]", hooks.captures)
	}
}

func TestExporterDownloadCancelled(t *testing.T) {
	n := &recordingNotifier{}
	e := &Exporter{Capturer: readyCapturer(), Notifier: n, Dir: t.TempDir()}
	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	if _, err := e.Download(ctx); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if len(n.infos)+len(n.errs) != 0 {
		t.Errorf("cancelled download raised notifications: info %q error %q", n.infos, n.errs)
	}
}

func TestOwnsSelection(t *testing.T) {
	tests := []struct {
		goos string
		want bool
	}{
		{"linux", true},
		{"freebsd", true},
		{"darwin", false},
		{"windows", false},
	}
	for _, tt := range tests {
		if got := ownsSelection(tt.goos); got != tt.want {
			t.Errorf("ownsSelection(%q) = %v, want %v", tt.goos, got, tt.want)
		}
	}
}
