// Package events provides the in-process event bus connecting the store mode
// controller, the remote-change listener and the sync coordinator. Events are
// typed variants; subscribers switch on the payload type instead of matching
// string names.
package events

import (
	"sync"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// ModeChanged is published after the active backend pointer has been swapped.
// Redundant events (From == To) are possible and must be tolerated.
type ModeChanged struct {
	From domain.StoreMode
	To   domain.StoreMode
}

// RemoteChange signals that something changed in the shared store. Delivery is
// best-effort and at-least-once; one logical edit may arrive as several
// notifications.
type RemoteChange struct {
	Entity   string // table or collection name, may be empty
	RecordID string // may be empty when the transport cannot attribute the change
}

// UserSignedIn is published after a successful external sign-in handshake.
type UserSignedIn struct {
	UserID string
}

// Event is one of the typed variants above.
type Event any

// Bus is a minimal synchronous publish/subscribe fan-out. Subscribers are
// invoked on the publisher's goroutine and must return quickly; anything slow
// schedules its own work.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for every subsequently published event.
// There is no unsubscribe; subscriptions live for the process lifetime.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers evt to every subscriber in registration order.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	subs := make([]func(Event), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(evt)
	}
}
