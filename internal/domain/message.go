// Package domain defines the core data model for the room chat layer: the
// in-memory chat message record exchanged over a room's data channel, and the
// persistence models for the optional server-side history archive.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the delivery state of a chat message. It is meaningful only for
// self-originated messages; remote messages are created directly in
// StatusSent.
type Status string

const (
	// StatusSending marks a local message appended before the data channel
	// acknowledged the publish.
	StatusSending Status = "sending"
	// StatusSent marks a message whose publish was acknowledged, or any
	// message received from a remote participant.
	StatusSent Status = "sent"
	// StatusError marks a local message whose publish failed. The message
	// stays visible so the user can retry by sending the same text again.
	StatusError Status = "error"
)

// Valid reports whether s is one of the known delivery states.
func (s Status) Valid() bool {
	switch s {
	case StatusSending, StatusSent, StatusError:
		return true
	}
	return false
}

// Sender identifies the participant a message came from. Identity is the
// stable per-session participant key; DisplayName is cosmetic and may be
// empty.
type Sender struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name,omitempty"`
}

// ChatMessage is one chat event in a room's log.
//
// Invariants:
//   - ID and RoomName are immutable after creation.
//   - Only Status may mutate, only for IsSelf messages, and only through
//     the sending→sent or sending→error transitions.
//   - Messages never move between rooms.
type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp int64  `json:"timestamp"` // wall-clock milliseconds at creation
	IsSelf    bool   `json:"is_self"`
	RoomName  string `json:"room_name"`
	Status    Status `json:"status"`
}

// NewMessageID builds a message identifier from the creation time plus a
// random suffix, so ids stay unique within a session even when two messages
// are created in the same millisecond.
func NewMessageID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
