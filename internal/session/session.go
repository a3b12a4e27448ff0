// Package session tracks the active site session. Source enablement is
// scoped to the active site; logging out publishes the logout event that
// clears it.
package session

import (
	"context"
	"sync"

	"github.com/vk/filepickgo/internal/bus"
	"github.com/vk/filepickgo/internal/ctxlog"
)

// Manager holds the currently active site and announces its end on the
// dispatcher.
type Manager struct {
	mu     sync.Mutex
	active string
	d      *bus.Dispatcher
}

// NewManager creates a Manager publishing on the given dispatcher.
func NewManager(d *bus.Dispatcher) *Manager {
	return &Manager{d: d}
}

// Login makes the named site the active session. Logging in while
// another site is active logs out of it first.
func (m *Manager) Login(ctx context.Context, site string) {
	m.mu.Lock()
	previous := m.active
	m.mu.Unlock()

	if previous != "" && previous != site {
		m.Logout(ctx)
	}

	m.mu.Lock()
	m.active = site
	m.mu.Unlock()
	ctxlog.FromContext(ctx).Info("Site session started.", "site", site)
}

// Logout ends the active session and publishes the logout event. The
// publish runs synchronously, so by the time Logout returns no query can
// observe stale enabled state. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	site := m.active
	m.active = ""
	m.mu.Unlock()

	if site == "" {
		return
	}
	ctxlog.FromContext(ctx).Info("Site session ended.", "site", site)
	m.d.Publish(ctx, bus.TopicLogout)
}

// Active returns the active site name, if any.
func (m *Manager) Active() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != ""
}
