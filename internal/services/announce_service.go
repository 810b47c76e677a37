// Package services – AnnounceService
//
// This file implements AnnounceService, which lets operators and integrations
// broadcast a server-originated chat message into a live room through the
// REST API. It validates the text, fans the message out through the relay,
// archives it, and supports safe retries via Idempotency-Key: a replayed key
// returns the originally archived message without broadcasting again.
package services

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meetwire/go-room-chat/internal/domain"
	"github.com/meetwire/go-room-chat/internal/repo"
)

// defaultAnnouncer is the participant identity announcements are attributed
// to on the data channel.
const defaultAnnouncer = "server"

// Broadcaster is the slice of the relay hub the service needs. Satisfied by
// *relay.Hub.
type Broadcaster interface {
	// BroadcastChat fans a chat message out to every participant of roomName.
	BroadcastChat(roomName, identity, displayName, text string) error
	// HasRoom reports whether roomName has connected participants.
	HasRoom(roomName string) bool
}

// AnnounceService broadcasts operator messages into rooms.
type AnnounceService struct {
	DB  *gorm.DB
	Hub Broadcaster

	// MaxTextRunes caps announcement length; values <= 0 default to 2000.
	MaxTextRunes int
	// IdempotencyTTL is how long a given Idempotency-Key stays valid.
	IdempotencyTTL time.Duration
	// SenderIdentity overrides the identity announcements appear under.
	SenderIdentity string
	// SenderName is the cosmetic display name for announcements.
	SenderName string
}

// Announce validates text and broadcasts it into roomName.
//
// When idemKey is non-empty and a previous announcement with the same
// (room, key) is still valid, the recorded message is returned with
// replayed=true and nothing is broadcast.
func (s *AnnounceService) Announce(ctx context.Context, roomName, text, idemKey string) (msg *domain.ArchivedMessage, replayed bool, err error) {
	tr := otel.Tracer("services/AnnounceService")
	ctx, span := tr.Start(ctx, "Announce",
		trace.WithAttributes(attribute.String("room.name", roomName)),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false, ErrEmptyMessage
	}
	max := s.MaxTextRunes
	if max <= 0 {
		max = 2000
	}
	if utf8.RuneCountInString(text) > max {
		return nil, false, ErrTooLong
	}

	if !s.Hub.HasRoom(roomName) {
		return nil, false, ErrRoomNotFound
	}

	// Replay check before any side effect.
	if idemKey != "" && s.DB != nil {
		if rec, lerr := repo.GetIdempotency(ctx, s.DB, roomName, idemKey, time.Now().UTC()); lerr == nil && rec != nil {
			prev, gerr := repo.GetArchived(ctx, s.DB, rec.MessageID)
			if gerr == nil {
				return prev, true, nil
			}
		}
	}

	identity := s.SenderIdentity
	if identity == "" {
		identity = defaultAnnouncer
	}
	if err := s.Hub.BroadcastChat(roomName, identity, s.SenderName, text); err != nil {
		return nil, false, err
	}

	// Announcements are archived even when the history sink is disabled for
	// participant traffic, as long as a database is attached.
	if s.DB == nil {
		return &domain.ArchivedMessage{
			RoomName:   roomName,
			Sender:     identity,
			SenderName: s.SenderName,
			Text:       text,
			CreatedAt:  time.Now().UTC(),
		}, false, nil
	}

	archived, err := repo.InsertArchived(ctx, s.DB, roomName, identity, s.SenderName, text)
	if err != nil {
		return nil, false, err
	}

	if idemKey != "" {
		ttl := s.IdempotencyTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		// A duplicate here means a concurrent retry won; either row is fine.
		_, _ = repo.CreateIdempotency(ctx, s.DB, roomName, idemKey, archived.ID, http.StatusCreated, ttl)
	}
	return archived, false, nil
}
