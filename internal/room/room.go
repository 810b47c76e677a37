// Package room defines the capability surface of an active room session and
// the lifecycle component that binds the chat layer to it.
//
// The real-time session (participants, media, the data channel) is an
// external collaborator; the chat layer only sees the narrow interfaces in
// this file. Handle is satisfied by relay.Session in production and by small
// fakes in tests.
package room

import "context"

// Origin identifies the participant a data payload came from.
type Origin struct {
	Identity    string
	DisplayName string
}

// PublishOptions controls how a payload is sent over the room's data channel.
//
// Reliable selects the channel's reliable delivery mode. Topic multiplexes
// application features over the shared channel; receivers filter on it.
// Target, when non-empty, addresses the payload to a single participant
// instead of the whole room.
type PublishOptions struct {
	Reliable bool
	Topic    string
	Target   string
}

// DataHandler consumes one inbound data payload. Handlers run synchronously
// inside the session's dispatch path and must not block.
type DataHandler func(payload []byte, origin Origin, topic string)

// Subscription is the detach handle returned by SubscribeData. Unsubscribe is
// idempotent.
type Subscription interface {
	Unsubscribe()
}

// Handle is the capability set the chat layer requires from an active room
// session: identity of the local participant, the room name, and the shared
// data channel.
type Handle interface {
	// Name returns the room identifier. Stable for the session lifetime.
	Name() string

	// LocalIdentity returns the stable per-session key of the local
	// participant.
	LocalIdentity() string

	// LocalDisplayName returns the cosmetic name of the local participant;
	// may be empty.
	LocalDisplayName() string

	// SubscribeData registers h for inbound data payloads and returns the
	// handle needed to detach it.
	SubscribeData(h DataHandler) Subscription

	// PublishData sends payload over the room's data channel.
	PublishData(ctx context.Context, payload []byte, opts PublishOptions) error
}
