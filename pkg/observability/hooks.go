// Package observability provides hooks for metrics, tracing, and logging.
//
// Nothing in the rendering path depends on a specific observability backend.
// Consumers register hooks at startup and receive events about pipeline
// stages, cache operations, HTTP traffic and reveal animations.
//
// # Architecture
//
//   - Hook interfaces per event category
//   - No-op default implementations
//   - A global registry written once at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetRevealHooks(&myRevealHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnGeometryStart(ctx, topology, cells)
//	// ... compute ...
//	observability.Pipeline().OnGeometryComplete(ctx, topology, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	// Load events (reading or decoding a snapshot)
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, cellCount int, duration time.Duration, err error)

	// Geometry events
	OnGeometryStart(ctx context.Context, topology string, cellCount int)
	OnGeometryComplete(ctx context.Context, topology string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response status and latency.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// Reveal Hooks
// =============================================================================

// RevealHooks receives events from solution reveal animations. Calls come
// from timer goroutines and must not block.
type RevealHooks interface {
	// OnRevealStart records a new generation scheduling pathLen events.
	OnRevealStart(generation uint64, pathLen int)

	// OnRevealStep records event index of a generation firing.
	OnRevealStep(generation uint64, index int)

	// OnRevealCancel records a generation stopped after fired events.
	OnRevealCancel(generation uint64, fired int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnGeometryStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnGeometryComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// NoopRevealHooks is a no-op implementation of RevealHooks.
type NoopRevealHooks struct{}

func (NoopRevealHooks) OnRevealStart(uint64, int)  {}
func (NoopRevealHooks) OnRevealStep(uint64, int)   {}
func (NoopRevealHooks) OnRevealCancel(uint64, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	revealHooks   RevealHooks   = NoopRevealHooks{}
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

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
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

// SetRevealHooks registers custom reveal hooks.
func SetRevealHooks(h RevealHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		revealHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reveal returns the registered reveal hooks.
func Reveal() RevealHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return revealHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
	revealHooks = NoopRevealHooks{}
}
