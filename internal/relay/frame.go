// Package relay implements the room data channel the chat layer runs on: a
// WebSocket hub that fans data payloads out to the participants of a room,
// plus the client-side session that speaks the same protocol and exposes the
// room.Handle capability set.
//
// This file defines the relay's own framing. Frames wrap opaque application
// payloads (e.g. the chat envelope); the relay routes on topic and target
// and never interprets payload bytes, with one exception: broadcast chat
// frames are optionally decoded for the history archive.
package relay

// Frame ops.
const (
	// OpPublish is sent client→server to publish a payload into the room.
	OpPublish = "publish"
	// OpData is sent server→client to deliver a payload from another
	// participant.
	OpData = "data"
	// OpJoined acknowledges a successful join to the connecting client.
	OpJoined = "joined"
	// OpParticipantJoined / OpParticipantLeft announce room membership
	// changes to the remaining participants.
	OpParticipantJoined = "participant_joined"
	OpParticipantLeft   = "participant_left"
)

// Frame is the relay wire format, JSON text frames over the WebSocket.
// Payload is raw application bytes (base64 in transit, courtesy of
// encoding/json).
type Frame struct {
	Op       string `json:"op"`
	Room     string `json:"room,omitempty"`
	Topic    string `json:"topic,omitempty"`
	Target   string `json:"target,omitempty"`
	Reliable bool   `json:"reliable,omitempty"`
	From     string `json:"from,omitempty"`
	FromName string `json:"from_name,omitempty"`
	// Identity carries the subject of membership events.
	Identity string `json:"identity,omitempty"`
	Payload  []byte `json:"payload,omitempty"`
}
