// Package room – Binder
//
// Binder owns the attach/detach lifecycle between the chat layer and the
// active room session. It is the only component that holds the bound room;
// the store and the transport adapter see it read-only.
//
// The state machine has two states, Unbound and Bound(room). Rebinding from
// one room straight to another always runs the full detach-then-attach
// sequence, so two rooms' inbound handlers are never registered at once.
// Detach order matters: the data subscription is removed first, then the
// store's room reference is cleared, so an inbound event racing the teardown
// still resolves to the room it was delivered for.
package room

import "sync"

// StoreBinding is the slice of the message store the Binder drives: recording
// (or clearing, with nil) the active room used for sends.
type StoreBinding interface {
	BindRoom(h Handle)
}

// InboundSink consumes inbound data payloads in the context of the room they
// were delivered for. Satisfied by transport.Adapter.
type InboundSink interface {
	Inbound(h Handle, payload []byte, origin Origin, topic string)
}

// binding pairs the subscription handle with the room it was attached to.
// The two are created and destroyed together; there is no way to drop the
// room reference while the subscription is still live.
type binding struct {
	room Handle
	sub  Subscription
}

// Binder attaches the inbound sink to the active room session and tears the
// attachment down when the user leaves or switches rooms. Safe for concurrent
// use.
type Binder struct {
	store StoreBinding
	sink  InboundSink

	mu  sync.Mutex
	cur *binding
}

// NewBinder constructs a Binder in the Unbound state.
func NewBinder(store StoreBinding, sink InboundSink) *Binder {
	return &Binder{store: store, sink: sink}
}

// Bind transitions to Bound(h). If a room is already bound it is detached
// first; a direct room switch is equivalent to Unbind followed by Bind.
func (b *Binder) Bind(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.detachLocked()

	// The handler captures h so a payload dispatched after a later rebind
	// still files into the room it was received for.
	sub := h.SubscribeData(func(payload []byte, origin Origin, topic string) {
		b.sink.Inbound(h, payload, origin, topic)
	})
	b.cur = &binding{room: h, sub: sub}
	b.store.BindRoom(h)
}

// Unbind transitions to Unbound. No-op when nothing is bound.
func (b *Binder) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.detachLocked()
}

// Current returns the bound room, or nil when Unbound.
func (b *Binder) Current() Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cur == nil {
		return nil
	}
	return b.cur.room
}

// detachLocked removes the data subscription before clearing the store's room
// reference. Callers must hold b.mu.
func (b *Binder) detachLocked() {
	if b.cur == nil {
		return
	}
	b.cur.sub.Unsubscribe()
	b.cur = nil
	b.store.BindRoom(nil)
}
