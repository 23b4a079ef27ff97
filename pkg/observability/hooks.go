// Package observability provides injectable event sinks for the Kojioka
// client and the update notifier.
//
// Components accept hooks through options (kojioka.WithHooks,
// update.WithHooks). When none is given they fall back to the process-wide
// hooks registered here, which default to no-ops. Tests inject their own
// recorder and assert on the events instead of capturing console output.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPMetrics{})
//	    observability.SetUpdateHooks(&myUpdateMetrics{})
//	    // ... run application
//	}
//
// Or per instance:
//
//	client, _ := kojioka.NewClient(kojioka.WithHooks(recorder))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from outgoing HTTP requests.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response, successful or not.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a failed operation after normalization
	// (invalid argument, API error or network failure).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Update Hooks
// =============================================================================

// UpdateHooks receives events from the background update notifier.
type UpdateHooks interface {
	// OnCheckStart records the start of a version check.
	OnCheckStart(ctx context.Context, pkg string)

	// OnUpdateAvailable records that a newer version was found.
	OnUpdateAvailable(ctx context.Context, pkg, current, latest string)

	// OnCheckFailed records an absorbed failure and its classification.
	OnCheckFailed(ctx context.Context, pkg, kind string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopUpdateHooks is a no-op implementation of UpdateHooks.
type NoopUpdateHooks struct{}

func (NoopUpdateHooks) OnCheckStart(context.Context, string)                      {}
func (NoopUpdateHooks) OnUpdateAvailable(context.Context, string, string, string) {}
func (NoopUpdateHooks) OnCheckFailed(context.Context, string, string, error)      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	updateHooks UpdateHooks = NoopUpdateHooks{}
	hooksMu     sync.RWMutex
)

// SetHTTPHooks registers process-wide HTTP hooks.
// This should be called once at application startup before any requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// SetUpdateHooks registers process-wide update hooks.
func SetUpdateHooks(h UpdateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		updateHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Update returns the registered update hooks.
func Update() UpdateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return updateHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
	updateHooks = NoopUpdateHooks{}
}
