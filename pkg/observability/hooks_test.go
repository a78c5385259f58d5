package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Generation hooks
	g := NoopGenerationHooks{}
	g.OnGenerateStart(ctx, 42, 11)
	g.OnReset(ctx, 1)
	g.OnGenerateComplete(ctx, 17, 1, time.Second, nil)
	g.OnRenderStart(ctx, []string{"svg"})
	g.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/levels")
	h.OnResponse(ctx, "POST", "/levels", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Generation().(NoopGenerationHooks); !ok {
		t.Error("Generation() should return NoopGenerationHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customGeneration := &testGenerationHooks{}
	SetGenerationHooks(customGeneration)
	if Generation() != customGeneration {
		t.Error("SetGenerationHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Generation().(NoopGenerationHooks); !ok {
		t.Error("Reset() should restore NoopGenerationHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGenerationHooks{}
	SetGenerationHooks(custom)

	// Setting nil should be ignored
	SetGenerationHooks(nil)

	if Generation() != custom {
		t.Error("SetGenerationHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testGenerationHooks struct{ NoopGenerationHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
