package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/goodnews/pkg/errors"
)

// Download encodes a as PNG and writes it to dir/good-news.png, replacing
// any previous download. It returns the written path.
func Download(ctx context.Context, a *Artifact, dir string, enc Encoder) (string, error) {
	if enc == nil {
		enc = EncodePNG
	}
	if a == nil {
		return "", ErrNotReady
	}
	data, err := enc(a.Image)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", dir)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return path, nil
}

// CopyToClipboard encodes a as PNG and writes it to the clipboard as
// image/png. It raises exactly one notification: an error when encoding or
// the clipboard fails, otherwise an info message. The one exception is a
// context cancelled before the clipboard write, which returns ctx.Err()
// silently since nobody is left to read the message.
func CopyToClipboard(ctx context.Context, a *Artifact, cw ClipboardWriter, n Notifier, enc Encoder) error {
	if enc == nil {
		enc = EncodePNG
	}
	if a == nil {
		return ErrNotReady
	}

	data, err := enc(a.Image)
	if err != nil {
		n.Error(MsgRenderFailed)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cw.WriteImage(data); err != nil {
		n.Error(MsgClipboardFailed)
		return err
	}
	n.Info(MsgCopied)
	return nil
}
