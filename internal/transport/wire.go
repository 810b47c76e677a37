// Package transport bridges the message store's abstract model and the
// external broadcast data channel: it encodes outgoing messages into the
// application-level envelope, and decodes/dispatches inbound payloads.
//
// This file defines the wire envelope. The channel is shared by multiple
// features under different topics, so decoding treats anything that is not a
// well-formed chat envelope as an explicit "unrecognized" variant rather than
// an error to propagate.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TopicChat is the data-channel topic chat traffic is multiplexed under.
const TopicChat = "chat"

// Kind discriminates decoded envelope variants.
type Kind string

const (
	// KindChat is a chat envelope this layer consumes.
	KindChat Kind = "chat"
	// KindUnrecognized is any well-formed payload with a foreign type tag.
	// It is ignored, not an error: other features share the channel.
	KindUnrecognized Kind = "unrecognized"
)

// ErrMalformedPayload is returned by Decode when the payload is not valid
// JSON for the envelope shape.
var ErrMalformedPayload = errors.New("malformed data payload")

// Envelope is the application-level wire format, JSON over the channel's
// binary payload, UTF-8 encoded:
//
//	{ "type": "chat", "message": "<text>", "recipient": "<identity>"? }
//
// Recipient omitted means broadcast to the room; present means a directed
// send that only the addressed participant records.
type Envelope struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Recipient string `json:"recipient,omitempty"`
}

// Kind classifies a decoded envelope.
func (e Envelope) Kind() Kind {
	if e.Type == TopicChat {
		return KindChat
	}
	return KindUnrecognized
}

// EncodeChat serializes a chat envelope. recipient may be empty (broadcast).
func EncodeChat(text, recipient string) ([]byte, error) {
	return json.Marshal(Envelope{Type: TopicChat, Message: text, Recipient: recipient})
}

// Decode parses payload into an Envelope. It returns ErrMalformedPayload
// (wrapping the cause) when the payload is not valid JSON; callers drop such
// payloads without surfacing anything to the user.
func Decode(payload []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(payload, &e); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return e, nil
}
