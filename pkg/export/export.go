// Package export captures the composed overlay as a raster artifact and
// hands it to a sink: a PNG file or the system clipboard.
//
// An [Artifact] is created per export action and never cached. Encoding
// happens in the sink so an encoding failure is reported where the user
// asked for the export.
//
// Capturing before a template is mounted yields [ErrNotReady]. The
// [Exporter] treats that as a silent abort: nothing is written and no
// notification is raised.
package export

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/goodnews/pkg/errors"
)

// FileName is the fixed name of downloaded images.
const FileName = "good-news.png"

// User-facing notification messages.
const (
	MsgRenderFailed    = "Image rendering failed, please retry"
	MsgCopied          = "Image copied to clipboard"
	MsgClipboardFailed = "Could not access the clipboard"
	MsgSaveFailed      = "Could not save image"
	MsgSaved           = "Image saved to %s"
)

// ErrNotReady is returned by a capture when no surface is mounted.
var ErrNotReady = errors.New(errors.ErrCodeCaptureNotReady, "capture surface not ready")

// Artifact is an in-memory raster produced by a capture.
type Artifact struct {
	Image   image.Image
	Created time.Time
}

// NewArtifact wraps a captured image.
func NewArtifact(img image.Image) *Artifact {
	return &Artifact{Image: img, Created: time.Now()}
}

// Capturer produces an artifact of the current composition.
type Capturer interface {
	Capture(ctx context.Context) (*Artifact, error)
}

// CaptureFunc adapts a function to Capturer. A nil image means the
// surface is not mounted.
type CaptureFunc func(ctx context.Context) (image.Image, error)

// Capture implements Capturer.
func (f CaptureFunc) Capture(ctx context.Context) (*Artifact, error) {
	if f == nil {
		return nil, ErrNotReady
	}
	img, err := f(ctx)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrNotReady
	}
	return NewArtifact(img), nil
}

// Notifier receives user-facing messages from sinks.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Encoder turns an image into PNG bytes.
type Encoder func(img image.Image) ([]byte, error)

// EncodePNG encodes img as PNG with default compression.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeEncoding, "no image to encode")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncoding, err, "encode png")
	}
	return buf.Bytes(), nil
}
