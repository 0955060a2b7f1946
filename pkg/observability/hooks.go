// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about composition, export, and notifications.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnComposeStart(ctx, "good", lines)
//	// ... compose ...
//	observability.Pipeline().OnComposeComplete(ctx, "good", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the compose pipeline.
type PipelineHooks interface {
	// Layout events
	OnLayoutComplete(ctx context.Context, align string, rows int, duration time.Duration)

	// Compose events
	OnComposeStart(ctx context.Context, category string, lines int)
	OnComposeComplete(ctx context.Context, category string, duration time.Duration, err error)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from capture and export sinks.
type ExportHooks interface {
	// OnCapture records a capture attempt. ready is false when the surface
	// was not mounted and the export was abandoned.
	OnCapture(ctx context.Context, ready bool)

	// OnExport records a finished export to a sink ("file" or "clipboard").
	OnExport(ctx context.Context, sink string, duration time.Duration, err error)
}

// =============================================================================
// Notification Hooks
// =============================================================================

// NotifyHooks receives events from the notification center. Notifications
// outlive the action that raised them, so no context is passed.
type NotifyHooks interface {
	// OnShow records a notification being displayed.
	OnShow(severity string)

	// OnDismiss records a notification being removed. auto is true when
	// its timer expired.
	OnDismiss(severity string, auto bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration)     {}
func (NoopPipelineHooks) OnComposeStart(context.Context, string, int)                      {}
func (NoopPipelineHooks) OnComposeComplete(context.Context, string, time.Duration, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnCapture(context.Context, bool)                         {}
func (NoopExportHooks) OnExport(context.Context, string, time.Duration, error) {}

// NoopNotifyHooks is a no-op implementation of NotifyHooks.
type NoopNotifyHooks struct{}

func (NoopNotifyHooks) OnShow(string)          {}
func (NoopNotifyHooks) OnDismiss(string, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	exportHooks   ExportHooks   = NoopExportHooks{}
	notifyHooks   NotifyHooks   = NoopNotifyHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetNotifyHooks registers custom notification hooks.
func SetNotifyHooks(h NotifyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		notifyHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Notify returns the registered notification hooks.
func Notify() NotifyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return notifyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	exportHooks = NoopExportHooks{}
	notifyHooks = NoopNotifyHooks{}
}
