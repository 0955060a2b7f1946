// Package notify keeps the list of transient user notifications.
//
// Each notification has its own auto-dismiss timer. Dismissing is
// idempotent, so a manual close racing with an expiring timer is harmless.
// A duration of zero keeps the notification until it is closed.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/goodnews/pkg/observability"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 5000 * time.Millisecond

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is a message shown to the user.
type Notification struct {
	ID       string
	Severity Severity
	Message  string
	Created  time.Time
	Duration time.Duration
}

// Center holds active notifications. It is safe for concurrent use; timers
// fire on their own goroutines.
type Center struct {
	mu       sync.Mutex
	items    []Notification // oldest first
	timers   map[string]*time.Timer
	duration time.Duration
	onChange func()
	closed   bool
}

// Option configures a Center.
type Option func(*Center)

// WithDuration sets the default display duration. Zero disables auto-hide.
func WithDuration(d time.Duration) Option {
	return func(c *Center) {
		if d >= 0 {
			c.duration = d
		}
	}
}

// WithOnChange registers a callback invoked after every change, outside the
// lock. The terminal composer uses it to schedule a redraw.
func WithOnChange(fn func()) Option {
	return func(c *Center) { c.onChange = fn }
}

// NewCenter creates an empty notification center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		timers:   make(map[string]*time.Timer),
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show adds a notification and returns its ID. A negative duration uses the
// center's default.
func (c *Center) Show(sev Severity, msg string, d time.Duration) string {
	if d < 0 {
		d = c.duration
	}
	n := Notification{
		ID:       uuid.NewString(),
		Severity: sev,
		Message:  msg,
		Created:  time.Now(),
		Duration: d,
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return n.ID
	}
	c.items = append(c.items, n)
	if d > 0 {
		id := n.ID
		c.timers[id] = time.AfterFunc(d, func() { c.dismiss(id, true) })
	}
	c.mu.Unlock()

	observability.Notify().OnShow(string(sev))
	c.changed()
	return n.ID
}

// Info shows an info notification with the default duration.
func (c *Center) Info(msg string) { c.Show(SeverityInfo, msg, -1) }

// Error shows an error notification with the default duration.
func (c *Center) Error(msg string) { c.Show(SeverityError, msg, -1) }

// Dismiss removes a notification. Unknown or already dismissed IDs are
// ignored. It reports whether anything was removed.
func (c *Center) Dismiss(id string) bool {
	return c.dismiss(id, false)
}

func (c *Center) dismiss(id string, auto bool) bool {
	c.mu.Lock()
	idx := -1
	for i, n := range c.items {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	sev := c.items[idx].Severity
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()

	observability.Notify().OnDismiss(string(sev), auto)
	c.changed()
	return true
}

// DismissNewest removes the most recent notification, if any.
func (c *Center) DismissNewest() bool {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return false
	}
	id := c.items[len(c.items)-1].ID
	c.mu.Unlock()
	return c.Dismiss(id)
}

// List returns active notifications, newest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	for i, n := range c.items {
		out[len(c.items)-1-i] = n
	}
	return out
}

// Len returns the number of active notifications.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close stops all timers and clears the list. Later calls to Show are
// ignored.
func (c *Center) Close() {
	c.mu.Lock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = nil
	c.closed = true
	c.mu.Unlock()
}

func (c *Center) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
