package export

import (
	"runtime"
	"sync"

	"golang.design/x/clipboard"

	"github.com/matzehuels/goodnews/pkg/errors"
)

// ClipboardWriter stores PNG bytes on a clipboard as image/png.
type ClipboardWriter interface {
	WriteImage(png []byte) error
}

// Holder is implemented by clipboards whose content is served by the
// writing process. Released returns a channel that is closed once another
// application takes the clipboard over, or nil when nothing needs holding.
type Holder interface {
	Released() <-chan struct{}
}

// SystemClipboard writes to the desktop clipboard. Initialisation is
// deferred to the first write so that commands which never copy work on
// headless machines.
//
// On X11 the selection only lives as long as this process; callers that
// are about to exit should wait on Released.
type SystemClipboard struct {
	once sync.Once
	err  error

	mu       sync.Mutex
	released <-chan struct{}
}

// WriteImage implements ClipboardWriter.
func (c *SystemClipboard) WriteImage(png []byte) error {
	c.once.Do(func() { c.err = clipboard.Init() })
	if c.err != nil {
		return errors.Wrap(errors.ErrCodeClipboardUnavailable, c.err, "initialise clipboard")
	}
	changed := clipboard.Write(clipboard.FmtImage, png)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ownsSelection(runtime.GOOS) {
		c.released = changed
	}
	return nil
}

// Released implements Holder.
func (c *SystemClipboard) Released() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

// ownsSelection reports whether clipboard content on goos disappears with
// the writing process.
func ownsSelection(goos string) bool {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return true
	}
	return false
}
