// Package bus provides the notification channel the registry subscribes
// to. The in-process Dispatcher is owned and driven by the surrounding
// application; the socket listener bridges a remote hub's session events
// onto it.
package bus

import (
	"context"
	"slices"
	"sync"

	"github.com/vk/filepickgo/internal/ctxlog"
)

// Topic names a class of events on the dispatcher.
type Topic string

// TopicLogout fires when the active session ends. It carries no payload.
const TopicLogout Topic = "logout"

// Handler is a subscriber callback. Publish runs handlers synchronously,
// so a subsequent query cannot observe pre-publish state.
type Handler func(ctx context.Context)

// Dispatcher is a minimal synchronous publish/subscribe hub.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[Topic][]Handler
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{subs: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for a topic. Handlers run in
// subscription order.
func (d *Dispatcher) Subscribe(t Topic, h Handler) {
	if h == nil {
		panic("bus: nil handler subscribed")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs[t] = append(d.subs[t], h)
}

// Publish invokes every handler subscribed to the topic before
// returning. Publishing a topic with no subscribers is a no-op.
func (d *Dispatcher) Publish(ctx context.Context, t Topic) {
	d.mu.RLock()
	handlers := slices.Clone(d.subs[t])
	d.mu.RUnlock()

	ctxlog.FromContext(ctx).Debug("Publishing event.", "topic", string(t), "subscribers", len(handlers))
	for _, h := range handlers {
		h(ctx)
	}
}
