// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they validate input, call application services
// (or the relay hub directly for room directory reads), and translate results
// into HTTP responses. Business rules live in the services layer.
package handlers

import (
	"context"

	"github.com/meetwire/go-room-chat/internal/domain"
	"github.com/meetwire/go-room-chat/internal/relay"
)

//
// Service contracts (context-aware)
//

// HistoryService defines archive read operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type HistoryService interface {
	// ListPage returns a page of a room's archived messages and the total count.
	ListPage(ctx context.Context, roomName string, page, pageSize int) ([]domain.ArchivedMessage, int64, error)
	// Purge removes a room's archive and returns the number of rows affected.
	Purge(ctx context.Context, roomName string) (int64, error)
}

// AnnounceService defines the operator broadcast operation.
type AnnounceService interface {
	// Announce broadcasts text into roomName; replayed is true when a prior
	// result was served for the same Idempotency-Key.
	Announce(ctx context.Context, roomName, text, idemKey string) (msg *domain.ArchivedMessage, replayed bool, err error)
}

// RoomDirectory is the read-only slice of the relay hub the directory
// endpoints need. Satisfied by *relay.Hub.
type RoomDirectory interface {
	Rooms() []relay.RoomInfo
	Participants(roomName string) ([]relay.ParticipantInfo, bool)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for rooms, history, and announcements.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	dir         RoomDirectory
	historySvc  HistoryService
	announceSvc AnnounceService
}

// New constructs and returns a Handlers instance bound to the given
// collaborators.
func New(dir RoomDirectory, historySvc HistoryService, announceSvc AnnounceService) *Handlers {
	return &Handlers{dir: dir, historySvc: historySvc, announceSvc: announceSvc}
}
