// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about analyses, animations, frame draws and HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The Prometheus implementation lives in the prom subpackage so the core
// packages never import client_golang.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAnalysisHooks(prom.AnalysisHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Analysis().OnAnalysisStart(ctx, "bfs", g.NodeCount())
//	// ... run the algorithm ...
//	observability.Analysis().OnAnalysisComplete(ctx, "bfs", len(result), time.Since(start), nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Analysis Hooks
// =============================================================================

// AnalysisHooks receives events from the actions that run graph algorithms.
// kind is one of "bfs", "dfs", "coloring", "cycle", "clique".
type AnalysisHooks interface {
	OnAnalysisStart(ctx context.Context, kind string, nodeCount int)
	OnAnalysisComplete(ctx context.Context, kind string, resultSize int, duration time.Duration, err error)
}

// =============================================================================
// Animation Hooks
// =============================================================================

// AnimationHooks receives events from the animation scheduler.
type AnimationHooks interface {
	// OnAnimationStart fires when a session is accepted.
	OnAnimationStart(ctx context.Context, mode string, steps int)

	// OnAnimationRejected fires when a session is refused because another
	// is still running.
	OnAnimationRejected(ctx context.Context, mode string)

	// OnFrame fires after each frame is played.
	OnFrame(ctx context.Context, mode string, index int)

	// OnAnimationComplete fires when the session is released. canceled is
	// true when the context ended before the last frame.
	OnAnimationComplete(ctx context.Context, mode string, frames int, duration time.Duration, canceled bool)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the render-state controller.
type RenderHooks interface {
	// OnDraw records one frame handed to the drawer.
	OnDraw(title string, duration time.Duration, err error)

	// OnCompositionError records a composition aborted by a consistency check.
	OnCompositionError(layer string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnalysisHooks is a no-op implementation of AnalysisHooks.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnAnalysisStart(context.Context, string, int) {}
func (NoopAnalysisHooks) OnAnalysisComplete(context.Context, string, int, time.Duration, error) {
}

// NoopAnimationHooks is a no-op implementation of AnimationHooks.
type NoopAnimationHooks struct{}

func (NoopAnimationHooks) OnAnimationStart(context.Context, string, int) {}
func (NoopAnimationHooks) OnAnimationRejected(context.Context, string)   {}
func (NoopAnimationHooks) OnFrame(context.Context, string, int)          {}
func (NoopAnimationHooks) OnAnimationComplete(context.Context, string, int, time.Duration, bool) {
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnDraw(string, time.Duration, error) {}
func (NoopRenderHooks) OnCompositionError(string, error)    {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	analysisHooks  AnalysisHooks  = NoopAnalysisHooks{}
	animationHooks AnimationHooks = NoopAnimationHooks{}
	renderHooks    RenderHooks    = NoopRenderHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetAnalysisHooks registers custom analysis hooks.
// This should be called once at application startup before any actions run.
func SetAnalysisHooks(h AnalysisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		analysisHooks = h
	}
}

// SetAnimationHooks registers custom animation hooks.
func SetAnimationHooks(h AnimationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		animationHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Analysis returns the registered analysis hooks.
func Analysis() AnalysisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return analysisHooks
}

// Animation returns the registered animation hooks.
func Animation() AnimationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return animationHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	analysisHooks = NoopAnalysisHooks{}
	animationHooks = NoopAnimationHooks{}
	renderHooks = NoopRenderHooks{}
	httpHooks = NoopHTTPHooks{}
}
