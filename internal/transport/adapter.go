// Package transport – Adapter
//
// Adapter is the two-way bridge between the message store and the room's data
// channel. Outbound, it serializes chat envelopes and hands them to the
// channel's reliable publish. Inbound, it runs inside the session's shared
// dispatch path, so it filters hard and fails soft: foreign topics, foreign
// type tags, self echoes, and directed messages addressed to someone else are
// dropped silently; malformed payloads are logged at debug level and dropped.
// Nothing on the inbound path ever panics into the dispatcher or blocks it.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meetwire/go-room-chat/internal/domain"
	"github.com/meetwire/go-room-chat/internal/room"
)

// ErrPublish indicates the underlying data channel rejected a publish
// (network loss, channel not ready). The failed message stays in the log in
// error status; retry is a UI affordance, not this layer's job.
var ErrPublish = errors.New("data channel publish failed")

// Appender is the slice of the message store the inbound path needs.
type Appender interface {
	Append(msg domain.ChatMessage)
}

// Adapter encodes outgoing chat messages and dispatches incoming ones into
// the store. Safe for concurrent use.
type Adapter struct {
	mu    sync.Mutex
	store Appender

	// now is a test seam for timestamp generation.
	now func() time.Time
}

// NewAdapter constructs an Adapter appending inbound messages to store. Pass
// nil when the store itself takes the adapter at construction and close the
// cycle with AttachStore before binding a room.
func NewAdapter(store Appender) *Adapter {
	return &Adapter{store: store, now: time.Now}
}

// AttachStore sets (or replaces) the destination for inbound messages. The
// store publishes through the adapter and the adapter appends into the store,
// so one of the two is wired after construction; this is that seam.
func (a *Adapter) AttachStore(store Appender) {
	a.mu.Lock()
	a.store = store
	a.mu.Unlock()
}

// Publish serializes text (optionally directed at recipient) and sends it
// over h's data channel with reliable delivery under the chat topic. Channel
// failures are wrapped in ErrPublish so callers can classify them.
func (a *Adapter) Publish(ctx context.Context, h room.Handle, text, recipient string) error {
	payload, err := EncodeChat(text, recipient)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	opts := room.PublishOptions{
		Reliable: true,
		Topic:    TopicChat,
		Target:   recipient,
	}
	if err := h.PublishData(ctx, payload, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Inbound decodes one data payload delivered for room h and appends it to the
// store when it is a chat message this participant should record.
//
// Drop rules, in order:
//   - topic present but not "chat"
//   - payload not a well-formed envelope (logged, dropped)
//   - envelope type tag not "chat"
//   - self echo (origin identity equals the local identity)
//   - directed message addressed to a different participant
//
// Runs synchronously to completion and never returns an error: the dispatch
// callback it runs in is shared with other payload types.
func (a *Adapter) Inbound(h room.Handle, payload []byte, origin room.Origin, topic string) {
	if topic != "" && topic != TopicChat {
		return
	}

	env, err := Decode(payload)
	if err != nil {
		log.Debug().
			Str("room", h.Name()).
			Str("origin", origin.Identity).
			Err(err).
			Msg("dropping undecodable data payload")
		return
	}
	if env.Kind() != KindChat {
		return
	}
	if origin.Identity == h.LocalIdentity() {
		return
	}
	if env.Recipient != "" && env.Recipient != h.LocalIdentity() {
		return
	}

	a.mu.Lock()
	store := a.store
	a.mu.Unlock()
	if store == nil {
		return
	}

	now := a.now()
	store.Append(domain.ChatMessage{
		ID:   domain.NewMessageID(now),
		Text: env.Message,
		Sender: domain.Sender{
			Identity:    origin.Identity,
			DisplayName: origin.DisplayName,
		},
		Timestamp: now.UnixMilli(),
		IsSelf:    false,
		RoomName:  h.Name(),
		Status:    domain.StatusSent,
	})
}
