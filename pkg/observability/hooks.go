// Package observability provides hooks for metrics, tracing, and logging.
//
// Plugins emit events around validation and rendering without depending on
// a specific observability backend. Consumers register hooks at startup;
// until they do, every call goes to a no-op implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Plugins call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, "mermaid", "png")
//	// ... invoke renderer ...
//	observability.Render().OnRenderComplete(ctx, "mermaid", "png", len(data), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from diagram plugins.
type RenderHooks interface {
	// OnValidate records the outcome of a plugin's prerequisite check.
	OnValidate(ctx context.Context, plugin string, err error)

	// OnRenderStart records the start of a single render call.
	OnRenderStart(ctx context.Context, plugin, format string)

	// OnRenderComplete records the end of a render call. size is the
	// artifact length in bytes and is zero when err is non-nil.
	OnRenderComplete(ctx context.Context, plugin, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Process Hooks
// =============================================================================

// ProcessHooks receives events about external renderer processes.
type ProcessHooks interface {
	// OnProcessStart records an external command about to run.
	OnProcessStart(ctx context.Context, name string, args []string)

	// OnProcessExit records a finished external command. exitCode is -1
	// when the process could not be started.
	OnProcessExit(ctx context.Context, name string, exitCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnValidate(context.Context, string, error)    {}
func (NoopRenderHooks) OnRenderStart(context.Context, string, string) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopProcessHooks is a no-op implementation of ProcessHooks.
type NoopProcessHooks struct{}

func (NoopProcessHooks) OnProcessStart(context.Context, string, []string)          {}
func (NoopProcessHooks) OnProcessExit(context.Context, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks  RenderHooks  = NoopRenderHooks{}
	processHooks ProcessHooks = NoopProcessHooks{}
	hooksMu      sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetProcessHooks registers custom process hooks.
func SetProcessHooks(h ProcessHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		processHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Process returns the registered process hooks.
func Process() ProcessHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return processHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	processHooks = NoopProcessHooks{}
}
