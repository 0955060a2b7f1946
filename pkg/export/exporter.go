package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/observability"
)

// Exporter runs capture followed by a sink and reports the outcome through
// a Notifier. Each call captures a fresh artifact.
type Exporter struct {
	Capturer  Capturer
	Clipboard ClipboardWriter
	Notifier  Notifier
	Encoder   Encoder
	Dir       string
	Logger    *log.Logger
}

func (e *Exporter) logger() *log.Logger {
	if e.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return e.Logger
}

// capture returns the artifact, or ErrNotReady without notifying anyone.
// A cancelled context is not reported either.
func (e *Exporter) capture(ctx context.Context) (*Artifact, error) {
	a, err := e.Capturer.Capture(ctx)
	if errors.Is(err, errors.ErrCodeCaptureNotReady) {
		observability.Export().OnCapture(ctx, false)
		e.logger().Debug("capture skipped, surface not mounted")
		return nil, err
	}
	observability.Export().OnCapture(ctx, err == nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		e.logger().Error("capture failed", "code", errors.GetCode(err), "err", err)
		e.Notifier.Error(MsgRenderFailed)
		return nil, err
	}
	return a, nil
}

// Download captures the composition and writes it to the configured
// directory. It returns the written path.
func (e *Exporter) Download(ctx context.Context) (string, error) {
	a, err := e.capture(ctx)
	if err != nil {
		return "", err
	}

	start := time.Now()
	path, err := Download(ctx, a, e.Dir, e.Encoder)
	observability.Export().OnExport(ctx, "file", time.Since(start), err)
	if err != nil {
		if ctx.Err() != nil {
			e.logger().Debug("download cancelled")
			return "", err
		}
		if errors.Is(err, errors.ErrCodeEncoding) {
			e.Notifier.Error(MsgRenderFailed)
		} else {
			e.Notifier.Error(MsgSaveFailed)
		}
		e.logger().Error("download failed", "code", errors.GetCode(err), "err", err)
		return "", err
	}

	e.logger().Info("saved image", "path", path, "duration", time.Since(start))
	e.Notifier.Info(fmt.Sprintf(MsgSaved, path))
	return path, nil
}

// Copy captures the composition and places it on the clipboard.
func (e *Exporter) Copy(ctx context.Context) error {
	a, err := e.capture(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	err = CopyToClipboard(ctx, a, e.Clipboard, e.Notifier, e.Encoder)
	observability.Export().OnExport(ctx, "clipboard", time.Since(start), err)
	if err != nil {
		e.logger().Error("copy failed", "code", errors.GetCode(err), "err", err)
		return err
	}
	e.logger().Debug("copied image", "duration", time.Since(start))
	return nil
}
