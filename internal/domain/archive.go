// Package domain – persistence models for the server-side history archive.
// These types are mapped with GORM; the archive is a write-behind of broadcast
// chat traffic and never feeds back into the in-memory room logs.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// ArchivedMessage is one broadcast chat message recorded by the relay for
// later retrieval through the history API. Directed (private) messages are
// never archived.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - RoomName: the room the message was broadcast in; indexed with CreatedAt
//     so history pages read in arrival order.
//   - Sender / SenderName: origin participant identity and optional display name.
//   - Text: full message text.
//   - CreatedAt: server-side arrival timestamp.
//   - DeletedAt: soft deletion marker (room purges retain rows for audit).
type ArchivedMessage struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	RoomName   string         `json:"room_name"   gorm:"type:varchar(128);not null;index:idx_room_history,priority:1"`
	Sender     string         `json:"sender"      gorm:"type:varchar(64);not null"`
	SenderName string         `json:"sender_name" gorm:"type:varchar(128)"`
	Text       string         `json:"text"        gorm:"type:text;not null"`
	CreatedAt  time.Time      `json:"created_at"  gorm:"index:idx_room_history,priority:2"`
	DeletedAt  gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for ArchivedMessage.
func (ArchivedMessage) TableName() string { return "archived_messages" }

// Idempotency records the result of a previously processed announcement,
// keyed by (room_name, key). It lets clients retry POSTed announcements
// safely: a replay returns the originally archived message instead of
// broadcasting again.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	RoomName  string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_room_key,priority:1"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_room_key,priority:2"`
	MessageID string    `gorm:"type:TEXT NOT NULL"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
