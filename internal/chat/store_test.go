package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meetwire/go-room-chat/internal/domain"
	"github.com/meetwire/go-room-chat/internal/room"
)

//
// Fakes
//

// fakePublisher records publish calls and returns a scripted error.
type fakePublisher struct {
	calls []struct {
		text      string
		recipient string
	}
	err error
}

func (p *fakePublisher) Publish(_ context.Context, _ room.Handle, text, recipient string) error {
	p.calls = append(p.calls, struct {
		text      string
		recipient string
	}{text, recipient})
	return p.err
}

// fakeRoom satisfies room.Handle with fixed identity fields.
type fakeRoom struct {
	name     string
	identity string
	display  string
}

func (r *fakeRoom) Name() string             { return r.name }
func (r *fakeRoom) LocalIdentity() string    { return r.identity }
func (r *fakeRoom) LocalDisplayName() string { return r.display }
func (r *fakeRoom) SubscribeData(room.DataHandler) room.Subscription {
	return noopSub{}
}
func (r *fakeRoom) PublishData(context.Context, []byte, room.PublishOptions) error { return nil }

type noopSub struct{}

func (noopSub) Unsubscribe() {}

func msg(roomName, id, text string, self bool, status domain.Status) domain.ChatMessage {
	return domain.ChatMessage{
		ID:       id,
		Text:     text,
		Sender:   domain.Sender{Identity: "alice"},
		IsSelf:   self,
		RoomName: roomName,
		Status:   status,
	}
}

//
// Append / MessagesFor
//

func TestStore_Append_KeepsInsertionOrderPerRoom(t *testing.T) {
	s := NewStore(&fakePublisher{})

	s.Append(msg("daily", "m1", "first", false, domain.StatusSent))
	s.Append(msg("retro", "r1", "other room", false, domain.StatusSent))
	s.Append(msg("daily", "m2", "second", false, domain.StatusSent))

	got := s.MessagesFor("daily")
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
		t.Fatalf("daily log order unexpected: %+v", got)
	}
	if other := s.MessagesFor("retro"); len(other) != 1 || other[0].ID != "r1" {
		t.Fatalf("retro log unexpected: %+v", other)
	}
}

func TestStore_MessagesFor_UnknownRoomIsEmpty(t *testing.T) {
	s := NewStore(&fakePublisher{})
	if got := s.MessagesFor("never-joined"); len(got) != 0 {
		t.Fatalf("expected empty log for unknown room, got %+v", got)
	}
}

func TestStore_MessagesFor_SnapshotStableUntilMutation(t *testing.T) {
	s := NewStore(&fakePublisher{})
	s.Append(msg("daily", "m1", "hello", false, domain.StatusSent))

	a := s.MessagesFor("daily")
	b := s.MessagesFor("daily")
	if &a[0] != &b[0] {
		t.Fatalf("repeated reads without mutation should return the identical slice")
	}

	s.Append(msg("daily", "m2", "again", false, domain.StatusSent))
	c := s.MessagesFor("daily")
	if &a[0] == &c[0] {
		t.Fatalf("mutation should produce a fresh snapshot")
	}
	if len(c) != 2 {
		t.Fatalf("new snapshot should include the appended message: %+v", c)
	}
}

//
// UpdateStatus
//

func TestStore_UpdateStatus_TransitionsAndGuards(t *testing.T) {
	s := NewStore(&fakePublisher{})
	s.Append(msg("daily", "self-1", "mine", true, domain.StatusSending))
	s.Append(msg("daily", "peer-1", "theirs", false, domain.StatusSent))

	// sending → sent on a self message
	s.UpdateStatus("daily", "self-1", domain.StatusSent)
	if got := s.MessagesFor("daily")[0].Status; got != domain.StatusSent {
		t.Fatalf("self message status = %q; want sent", got)
	}

	// sent is terminal: no transition back or to error
	s.UpdateStatus("daily", "self-1", domain.StatusError)
	if got := s.MessagesFor("daily")[0].Status; got != domain.StatusSent {
		t.Fatalf("terminal status must not change, got %q", got)
	}

	// non-self messages never transition
	s.UpdateStatus("daily", "peer-1", domain.StatusError)
	if got := s.MessagesFor("daily")[1].Status; got != domain.StatusSent {
		t.Fatalf("peer message status = %q; want sent untouched", got)
	}

	// sending is never a target
	s.Append(msg("daily", "self-2", "mine too", true, domain.StatusSending))
	s.UpdateStatus("daily", "self-2", domain.StatusSending)
	if got := s.MessagesFor("daily")[2].Status; got != domain.StatusSending {
		t.Fatalf("status must stay sending, got %q", got)
	}
}

func TestStore_UpdateStatus_MissIsNoOp(t *testing.T) {
	s := NewStore(&fakePublisher{})
	s.Append(msg("daily", "m1", "hello", true, domain.StatusSending))

	// Unknown room and unknown id both tolerate silently.
	s.UpdateStatus("nowhere", "m1", domain.StatusSent)
	s.UpdateStatus("daily", "ghost", domain.StatusSent)

	if got := s.MessagesFor("daily")[0].Status; got != domain.StatusSending {
		t.Fatalf("miss must not touch other messages, got %q", got)
	}
}

//
// Send
//

func TestStore_Send_NoActiveRoom(t *testing.T) {
	s := NewStore(&fakePublisher{})
	if err := s.Send(context.Background(), "hello"); !errors.Is(err, ErrNoActiveRoom) {
		t.Fatalf("expected ErrNoActiveRoom, got %v", err)
	}
}

func TestStore_Send_HappyPath(t *testing.T) {
	pub := &fakePublisher{}
	s := NewStore(pub)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	s.BindRoom(&fakeRoom{name: "daily", identity: "alice", display: "Alice"})

	if err := s.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(pub.calls) != 1 || pub.calls[0].text != "hello" || pub.calls[0].recipient != "" {
		t.Fatalf("publish calls unexpected: %+v", pub.calls)
	}

	got := s.MessagesFor("daily")
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
	m := got[0]
	if !m.IsSelf || m.Status != domain.StatusSent {
		t.Fatalf("local echo should be self and confirmed: %+v", m)
	}
	if m.Sender.Identity != "alice" || m.Sender.DisplayName != "Alice" {
		t.Fatalf("sender fields unexpected: %+v", m.Sender)
	}
	if m.Timestamp != 1700000000000 {
		t.Fatalf("timestamp = %d; want seam value", m.Timestamp)
	}
}

func TestStore_Send_PublishFailureFlagsError(t *testing.T) {
	boom := errors.New("link down")
	pub := &fakePublisher{err: boom}
	s := NewStore(pub)
	s.BindRoom(&fakeRoom{name: "daily", identity: "alice"})

	if err := s.Send(context.Background(), "hello"); !errors.Is(err, boom) {
		t.Fatalf("expected publish error surfaced, got %v", err)
	}

	got := s.MessagesFor("daily")
	if len(got) != 1 || got[0].Status != domain.StatusError {
		t.Fatalf("failed send should remain in the log in error status: %+v", got)
	}
}

func TestStore_SendDirect_PassesRecipient(t *testing.T) {
	pub := &fakePublisher{}
	s := NewStore(pub)
	s.BindRoom(&fakeRoom{name: "daily", identity: "alice"})

	if err := s.SendDirect(context.Background(), "psst", "carol"); err != nil {
		t.Fatalf("SendDirect: %v", err)
	}
	if len(pub.calls) != 1 || pub.calls[0].recipient != "carol" {
		t.Fatalf("recipient not forwarded: %+v", pub.calls)
	}
	// Locally a directed send is logged the same way as a broadcast.
	if got := s.MessagesFor("daily"); len(got) != 1 || !got[0].IsSelf {
		t.Fatalf("directed send should appear in own log: %+v", got)
	}
}

//
// Subscribe
//

func TestStore_Subscribe_NotifiesOnMutations(t *testing.T) {
	s := NewStore(&fakePublisher{})

	var notified []string
	cancel := s.Subscribe(func(roomName string) { notified = append(notified, roomName) })

	s.Append(msg("daily", "m1", "hi", true, domain.StatusSending))
	s.UpdateStatus("daily", "m1", domain.StatusSent)
	// Miss must not notify.
	s.UpdateStatus("daily", "ghost", domain.StatusSent)

	if len(notified) != 2 || notified[0] != "daily" || notified[1] != "daily" {
		t.Fatalf("notifications unexpected: %v", notified)
	}

	cancel()
	s.Append(msg("daily", "m2", "bye", false, domain.StatusSent))
	if len(notified) != 2 {
		t.Fatalf("cancelled subscriber must not fire, got %v", notified)
	}
}

func TestStore_Subscribe_CallbackMayReenterStore(t *testing.T) {
	s := NewStore(&fakePublisher{})

	var seen int
	s.Subscribe(func(roomName string) {
		// Re-entering the store from the callback must not deadlock.
		seen = len(s.MessagesFor(roomName))
	})

	s.Append(msg("daily", "m1", "hi", false, domain.StatusSent))
	if seen != 1 {
		t.Fatalf("callback should observe the appended message, saw %d", seen)
	}
}

//
// BindRoom / ActiveRoom
//

func TestStore_BindRoom_SetAndClear(t *testing.T) {
	s := NewStore(&fakePublisher{})
	h := &fakeRoom{name: "daily", identity: "alice"}

	s.BindRoom(h)
	if got := s.ActiveRoom(); got != room.Handle(h) {
		t.Fatalf("ActiveRoom = %v; want bound handle", got)
	}

	s.BindRoom(nil)
	if got := s.ActiveRoom(); got != nil {
		t.Fatalf("ActiveRoom after clear = %v; want nil", got)
	}
}
