package room

import (
	"context"
	"testing"
)

//
// Fakes
//

// fakeStoreBinding records every BindRoom call in order.
type fakeStoreBinding struct {
	bound []Handle
}

func (s *fakeStoreBinding) BindRoom(h Handle) { s.bound = append(s.bound, h) }

// fakeSink records inbound dispatches with the room they arrived for.
type fakeSink struct {
	rooms    []Handle
	payloads [][]byte
}

func (s *fakeSink) Inbound(h Handle, payload []byte, _ Origin, _ string) {
	s.rooms = append(s.rooms, h)
	s.payloads = append(s.payloads, payload)
}

// scriptedRoom hands the registered data handler back to the test so it can
// inject payloads, and records unsubscribes.
type scriptedRoom struct {
	name string

	handler      DataHandler
	subscribes   int
	unsubscribes int
}

func (r *scriptedRoom) Name() string             { return r.name }
func (r *scriptedRoom) LocalIdentity() string    { return "alice" }
func (r *scriptedRoom) LocalDisplayName() string { return "" }

func (r *scriptedRoom) SubscribeData(h DataHandler) Subscription {
	r.handler = h
	r.subscribes++
	return &scriptedSub{room: r}
}

func (r *scriptedRoom) PublishData(context.Context, []byte, PublishOptions) error { return nil }

// deliver simulates the session dispatching one payload.
func (r *scriptedRoom) deliver(payload []byte) {
	if r.handler != nil {
		r.handler(payload, Origin{Identity: "bob"}, "chat")
	}
}

type scriptedSub struct {
	room *scriptedRoom
}

func (s *scriptedSub) Unsubscribe() {
	s.room.unsubscribes++
	s.room.handler = nil
}

//
// Tests
//

func TestBinder_Bind_RegistersHandlerAndStore(t *testing.T) {
	store := &fakeStoreBinding{}
	sink := &fakeSink{}
	b := NewBinder(store, sink)

	r := &scriptedRoom{name: "daily"}
	b.Bind(r)

	if r.subscribes != 1 {
		t.Fatalf("expected 1 subscription, got %d", r.subscribes)
	}
	if len(store.bound) != 1 || store.bound[0] != Handle(r) {
		t.Fatalf("store binding unexpected: %+v", store.bound)
	}
	if b.Current() != Handle(r) {
		t.Fatalf("Current should return the bound room")
	}

	r.deliver([]byte(`{"type":"chat","message":"hi"}`))
	if len(sink.rooms) != 1 || sink.rooms[0] != Handle(r) {
		t.Fatalf("inbound should carry the bound room, got %+v", sink.rooms)
	}
}

func TestBinder_Unbind_DetachesBeforeClearingStore(t *testing.T) {
	store := &fakeStoreBinding{}
	b := NewBinder(store, &fakeSink{})

	r := &scriptedRoom{name: "daily"}
	b.Bind(r)
	b.Unbind()

	if r.unsubscribes != 1 {
		t.Fatalf("expected subscription removed, got %d unsubscribes", r.unsubscribes)
	}
	// BindRoom(r), then BindRoom(nil) on detach.
	if len(store.bound) != 2 || store.bound[1] != nil {
		t.Fatalf("store should be cleared after detach: %+v", store.bound)
	}
	if b.Current() != nil {
		t.Fatalf("Current after Unbind should be nil")
	}

	// A payload delivered after detach goes nowhere: the handler is gone.
	r.deliver([]byte(`{"type":"chat","message":"late"}`))
}

func TestBinder_Unbind_WhenUnboundIsNoOp(t *testing.T) {
	store := &fakeStoreBinding{}
	b := NewBinder(store, &fakeSink{})

	b.Unbind()
	if len(store.bound) != 0 {
		t.Fatalf("no-op Unbind must not touch the store: %+v", store.bound)
	}
}

func TestBinder_Rebind_SwitchesRoomsCleanly(t *testing.T) {
	store := &fakeStoreBinding{}
	sink := &fakeSink{}
	b := NewBinder(store, sink)

	a := &scriptedRoom{name: "daily"}
	c := &scriptedRoom{name: "retro"}

	b.Bind(a)
	b.Bind(c) // direct switch, no explicit Unbind

	if a.unsubscribes != 1 {
		t.Fatalf("previous room must be detached on switch")
	}
	if b.Current() != Handle(c) {
		t.Fatalf("Current should be the new room")
	}
	// BindRoom(a), BindRoom(nil), BindRoom(c)
	if len(store.bound) != 3 || store.bound[1] != nil || store.bound[2] != Handle(c) {
		t.Fatalf("store transitions unexpected: %+v", store.bound)
	}

	// Only the new room's handler is live.
	a.deliver([]byte(`{"type":"chat","message":"stale"}`))
	c.deliver([]byte(`{"type":"chat","message":"fresh"}`))
	if len(sink.rooms) != 1 || sink.rooms[0] != Handle(c) {
		t.Fatalf("only the active room should dispatch, got %+v", sink.rooms)
	}
}

func TestBinder_LateEventFilesToItsOwnRoom(t *testing.T) {
	store := &fakeStoreBinding{}
	sink := &fakeSink{}
	b := NewBinder(store, sink)

	a := &scriptedRoom{name: "daily"}
	b.Bind(a)

	// Capture the handler the way a session's dispatch queue would, then
	// switch rooms before the queued payload runs.
	queued := a.handler
	c := &scriptedRoom{name: "retro"}
	b.Bind(c)

	queued([]byte(`{"type":"chat","message":"late"}`), Origin{Identity: "bob"}, "chat")

	// The late payload must resolve to the room it was delivered for, not the
	// currently bound one.
	if len(sink.rooms) != 1 || sink.rooms[0] != Handle(a) {
		t.Fatalf("late event should file to its own room, got %+v", sink.rooms)
	}
}
