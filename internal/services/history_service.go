// Package services – HistoryService
//
// This file implements HistoryService, the component that owns the
// server-side chat history archive. It is both the relay's archive sink
// (write-behind of broadcast chat traffic) and the read model behind the
// history API (paginated, arrival-ordered).
//
// The archive never feeds back into the in-memory room logs; it exists only
// for the REST surface.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// room identifiers and pagination parameters where applicable.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meetwire/go-room-chat/internal/domain"
	"github.com/meetwire/go-room-chat/internal/repo"
)

// HistoryService archives broadcast chat messages and serves them back in
// pages. DB may be nil, in which case archiving is a no-op and reads fail
// with ErrHistoryDisabled.
type HistoryService struct {
	DB *gorm.DB

	// MaxPageSize caps page_size requests; values <= 0 default to 100.
	MaxPageSize int
}

// ArchiveChat records one broadcast chat message. It implements the relay's
// ArchiveSink contract: called on the relay's goroutine, it must not fail the
// caller, so persistence errors are logged and swallowed.
func (s *HistoryService) ArchiveChat(ctx context.Context, roomName, sender, senderName, text string) {
	if s.DB == nil {
		return
	}

	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "ArchiveChat",
		trace.WithAttributes(attribute.String("room.name", roomName)),
	)
	defer span.End()

	if _, err := repo.InsertArchived(ctx, s.DB, roomName, sender, senderName, text); err != nil {
		log.Error().
			Str("room", roomName).
			Str("sender", sender).
			Err(err).
			Msg("failed to archive chat message")
	}
}

// ListPage returns a page of roomName's archived messages in arrival order,
// plus the total count.
func (s *HistoryService) ListPage(ctx context.Context, roomName string, page, pageSize int) ([]domain.ArchivedMessage, int64, error) {
	if s.DB == nil {
		return nil, 0, ErrHistoryDisabled
	}

	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("room.name", roomName),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	max := s.MaxPageSize
	if max <= 0 {
		max = 100
	}
	if pageSize > max {
		pageSize = max
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountArchived(ctx, s.DB, roomName)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ArchivedMessage{}, 0, nil
	}

	items, err := repo.ListArchivedPage(ctx, s.DB, roomName, offset, pageSize)
	return items, total, err
}

// Purge soft-deletes roomName's archive and returns the number of rows
// affected.
func (s *HistoryService) Purge(ctx context.Context, roomName string) (int64, error) {
	if s.DB == nil {
		return 0, ErrHistoryDisabled
	}

	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "Purge",
		trace.WithAttributes(attribute.String("room.name", roomName)),
	)
	defer span.End()

	return repo.PurgeRoom(ctx, s.DB, roomName)
}
