// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about engine execution, cache
// operations, and ephemeris provider calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnChartStart(ctx, subject)
//	// ... compute chart ...
//	observability.Engine().OnChartComplete(ctx, subject, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the chart computation pipeline.
type EngineHooks interface {
	// Chart events
	OnChartStart(ctx context.Context, subject string)
	OnChartComplete(ctx context.Context, subject string, duration time.Duration, err error)

	// Aspect detection events
	OnAspectsStart(ctx context.Context, pairCount int)
	OnAspectsComplete(ctx context.Context, recordCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, entityCount int)
	OnLayoutComplete(ctx context.Context, trackCount int, duration time.Duration, err error)
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
// Provider Hooks
// =============================================================================

// ProviderHooks receives events from ephemeris and sidereal time
// provider calls.
type ProviderHooks interface {
	// OnLookup records an outgoing provider call.
	OnLookup(ctx context.Context, provider, operation string)

	// OnResult records a completed provider call.
	OnResult(ctx context.Context, provider, operation string, duration time.Duration)

	// OnError records a provider failure.
	OnError(ctx context.Context, provider, operation string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnChartStart(context.Context, string)                          {}
func (NoopEngineHooks) OnChartComplete(context.Context, string, time.Duration, error) {}
func (NoopEngineHooks) OnAspectsStart(context.Context, int)                           {}
func (NoopEngineHooks) OnAspectsComplete(context.Context, int, time.Duration, error)  {}
func (NoopEngineHooks) OnLayoutStart(context.Context, int)                            {}
func (NoopEngineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopProviderHooks is a no-op implementation of ProviderHooks.
type NoopProviderHooks struct{}

func (NoopProviderHooks) OnLookup(context.Context, string, string)                {}
func (NoopProviderHooks) OnResult(context.Context, string, string, time.Duration) {}
func (NoopProviderHooks) OnError(context.Context, string, string, error)          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks   EngineHooks   = NoopEngineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	providerHooks ProviderHooks = NoopProviderHooks{}
	hooksMu       sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any chart operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetProviderHooks registers custom provider hooks.
// This should be called once at application startup before any provider calls.
func SetProviderHooks(h ProviderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		providerHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Provider returns the registered provider hooks.
func Provider() ProviderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return providerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
	providerHooks = NoopProviderHooks{}
}
