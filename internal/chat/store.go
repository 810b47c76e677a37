// Package chat – Store
//
// Store keeps one append-only log per room, keyed by room name, for the
// lifetime of the process. Logs survive room switches; the log of a room
// never joined is simply empty. Append order is the authoritative order (the
// order sends are issued and inbound packets are delivered), never a sort by
// timestamp: local echo can race inbound delivery.
//
// Append and UpdateStatus are the only mutation points. The bound room
// reference is owned by room.Binder; the store holds it non-owning, only to
// resolve the current room and local identity for sends.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/meetwire/go-room-chat/internal/domain"
	"github.com/meetwire/go-room-chat/internal/room"
)

// Publisher is the outbound half of the transport adapter: serialize text and
// hand it to the bound room's data channel. Satisfied by transport.Adapter.
type Publisher interface {
	Publish(ctx context.Context, h room.Handle, text, recipient string) error
}

// roomLog holds one room's messages plus a lazily rebuilt snapshot, so
// MessagesFor returns the identical slice between mutations and the
// presentation layer can skip redundant redraws.
type roomLog struct {
	msgs     []*domain.ChatMessage
	snapshot []domain.ChatMessage
	dirty    bool
}

// Store is the process-wide message store. Construct one per process (or per
// test) with NewStore and pass it explicitly to collaborators; it is not an
// ambient singleton. Safe for concurrent use.
type Store struct {
	pub Publisher

	mu    sync.Mutex
	rooms map[string]*roomLog
	bound room.Handle

	nextSubID int
	subs      map[int]func(roomName string)

	// now is a test seam for id and timestamp generation.
	now func() time.Time
}

// NewStore constructs an empty Store that publishes outgoing messages
// through pub.
func NewStore(pub Publisher) *Store {
	return &Store{
		pub:   pub,
		rooms: make(map[string]*roomLog),
		subs:  make(map[int]func(string)),
		now:   time.Now,
	}
}

// Append inserts msg at the tail of its room's log, creating the log when the
// room is seen for the first time. It never fails.
func (s *Store) Append(msg domain.ChatMessage) {
	s.mu.Lock()
	lg := s.rooms[msg.RoomName]
	if lg == nil {
		lg = &roomLog{}
		s.rooms[msg.RoomName] = lg
	}
	m := msg
	lg.msgs = append(lg.msgs, &m)
	lg.dirty = true
	s.mu.Unlock()

	s.notify(msg.RoomName)
}

// UpdateStatus flips the delivery status of the message with the given id in
// roomName's log. It is a no-op, not an error, when the room or id is
// unknown, which tolerates a room switch clearing context before a delayed
// acknowledgment lands. Only self-originated messages still in
// StatusSending transition, and only to StatusSent or StatusError; a message
// never leaves sent or error.
func (s *Store) UpdateStatus(roomName, id string, status domain.Status) {
	if status != domain.StatusSent && status != domain.StatusError {
		return
	}

	s.mu.Lock()
	lg := s.rooms[roomName]
	changed := false
	if lg != nil {
		for _, m := range lg.msgs {
			if m.ID == id {
				if m.IsSelf && m.Status == domain.StatusSending {
					m.Status = status
					lg.dirty = true
					changed = true
				}
				break
			}
		}
	}
	s.mu.Unlock()

	if changed {
		s.notify(roomName)
	}
}

// MessagesFor returns roomName's log in append order, or an empty sequence
// for unknown rooms. The returned slice is referentially stable: repeated
// calls yield the identical slice until the log mutates. Callers must treat
// it as read-only.
func (s *Store) MessagesFor(roomName string) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	lg := s.rooms[roomName]
	if lg == nil {
		return nil
	}
	if lg.dirty || lg.snapshot == nil {
		snap := make([]domain.ChatMessage, len(lg.msgs))
		for i, m := range lg.msgs {
			snap[i] = *m
		}
		lg.snapshot = snap
		lg.dirty = false
	}
	return lg.snapshot
}

// BindRoom records the active room used by Send. Pass nil to clear. The
// caller (room.Binder) retains ownership of the handle's lifecycle.
func (s *Store) BindRoom(h room.Handle) {
	s.mu.Lock()
	s.bound = h
	s.mu.Unlock()
}

// ActiveRoom returns the currently bound room, or nil.
func (s *Store) ActiveRoom() room.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Send broadcasts text to every participant of the bound room.
//
// The message appears immediately in the room's log in StatusSending, flips
// to StatusSent once the channel acknowledges the publish, or to StatusError
// on failure, in which case the error is also returned so the UI can notify
// the user. Concurrent sends are independent: no ordering is imposed between
// two in-flight sends, but each message's own sending→sent|error transition
// is atomic with respect to its id.
func (s *Store) Send(ctx context.Context, text string) error {
	return s.send(ctx, text, "")
}

// SendDirect sends text addressed to a single participant. The recipient is
// the only remote participant that records it; locally it is logged the same
// way as a broadcast.
func (s *Store) SendDirect(ctx context.Context, text, recipient string) error {
	return s.send(ctx, text, recipient)
}

func (s *Store) send(ctx context.Context, text, recipient string) error {
	s.mu.Lock()
	h := s.bound
	s.mu.Unlock()
	if h == nil {
		return ErrNoActiveRoom
	}

	now := s.now()
	msg := domain.ChatMessage{
		ID:   domain.NewMessageID(now),
		Text: text,
		Sender: domain.Sender{
			Identity:    h.LocalIdentity(),
			DisplayName: h.LocalDisplayName(),
		},
		Timestamp: now.UnixMilli(),
		IsSelf:    true,
		RoomName:  h.Name(),
		Status:    domain.StatusSending,
	}
	s.Append(msg)

	if err := s.pub.Publish(ctx, h, text, recipient); err != nil {
		// If the room was switched mid-flight this is a tolerated no-op.
		s.UpdateStatus(msg.RoomName, msg.ID, domain.StatusError)
		return err
	}
	s.UpdateStatus(msg.RoomName, msg.ID, domain.StatusSent)
	return nil
}

// Subscribe registers fn to run after every log mutation, with the affected
// room's name. It returns an unsubscribe func. Callbacks run outside the
// store lock; fn may call back into the store.
func (s *Store) Subscribe(fn func(roomName string)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify runs the registered change callbacks for roomName.
func (s *Store) notify(roomName string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(roomName)
	}
}
