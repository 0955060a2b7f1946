package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLayoutComplete(ctx, "justify", 3, time.Millisecond)
	p.OnComposeStart(ctx, "good", 3)
	p.OnComposeComplete(ctx, "good", time.Second, nil)

	// Export hooks
	e := NoopExportHooks{}
	e.OnCapture(ctx, false)
	e.OnExport(ctx, "clipboard", time.Second, errors.New("boom"))

	// Notify hooks
	n := NoopNotifyHooks{}
	n.OnShow("info")
	n.OnDismiss("error", true)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := Notify().(NoopNotifyHooks); !ok {
		t.Error("Notify() should return NoopNotifyHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customExport := &testExportHooks{}
	SetExportHooks(customExport)
	if Export() != customExport {
		t.Error("SetExportHooks should set custom hooks")
	}

	customNotify := &testNotifyHooks{}
	SetNotifyHooks(customNotify)
	if Notify() != customNotify {
		t.Error("SetNotifyHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Notify().(NoopNotifyHooks); !ok {
		t.Error("Reset() should restore NoopNotifyHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testExportHooks{}
	SetExportHooks(custom)

	// Setting nil should be ignored
	SetExportHooks(nil)

	if Export() != custom {
		t.Error("SetExportHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testExportHooks struct{ NoopExportHooks }
type testNotifyHooks struct{ NoopNotifyHooks }
