// Package observability provides hooks for metrics, tracing, and logging.
//
// The placement engine itself never logs. Hosts that want to see what the
// engine does register hook implementations at startup; libraries emit events
// through the registered hooks, which default to no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    observability.SetSessionHooks(&mySessionHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Session().OnStart(widgetID, insert)
//	// ... drag in progress ...
//	observability.Session().OnCommit(widgetID, x, y, time.Since(start))
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the placement search.
type SearchHooks interface {
	// OnSearch records one nearest-free-slot search. probes is the number of
	// candidate anchors tested; x and y are only meaningful when found is true.
	OnSearch(anchorX, anchorY, w, h int, probes int, found bool, x, y int, duration time.Duration)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from drag sessions. widgetID is empty for
// inserts that have not been committed yet.
type SessionHooks interface {
	// OnStart records a session entering the dragging state.
	OnStart(widgetID string, insert bool)

	// OnCommit records a drop that changed the layout.
	OnCommit(widgetID string, x, y int, duration time.Duration)

	// OnNoSlot records a drop that found no free cell.
	OnNoSlot(widgetID string, duration time.Duration)

	// OnCancel records an explicit cancel.
	OnCancel(widgetID string, duration time.Duration)

	// OnRejected records an operation refused by the state machine.
	OnRejected(op string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearch(int, int, int, int, int, bool, int, int, time.Duration) {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnStart(string, bool)                     {}
func (NoopSessionHooks) OnCommit(string, int, int, time.Duration) {}
func (NoopSessionHooks) OnNoSlot(string, time.Duration)           {}
func (NoopSessionHooks) OnCancel(string, time.Duration)           {}
func (NoopSessionHooks) OnRejected(string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	searchHooks  SearchHooks  = NoopSearchHooks{}
	sessionHooks SessionHooks = NoopSessionHooks{}
	hooksMu      sync.RWMutex
)

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup before any searches run.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup before any drag starts.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	sessionHooks = NoopSessionHooks{}
}
