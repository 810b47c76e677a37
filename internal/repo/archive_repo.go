// Package repo implements the persistence layer for the history archive,
// backed by GORM. This file provides repository functions for the
// ArchivedMessage model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetwire/go-room-chat/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// InsertArchived records one broadcast chat message for roomName. The row ID
// is a randomly generated UUID (string), and CreatedAt is set to UTC.
func InsertArchived(ctx context.Context, db *gorm.DB, roomName, sender, senderName, text string) (*domain.ArchivedMessage, error) {
	m := &domain.ArchivedMessage{
		ID:         uuid.NewString(),
		RoomName:   roomName,
		Sender:     sender,
		SenderName: senderName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// GetArchived fetches one archived message by ID, or ErrNotFound.
func GetArchived(ctx context.Context, db *gorm.DB, id string) (*domain.ArchivedMessage, error) {
	var m domain.ArchivedMessage
	err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CountArchived returns the number of archived messages in roomName.
func CountArchived(ctx context.Context, db *gorm.DB, roomName string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.ArchivedMessage{}).
		Where("room_name = ?", roomName).
		Count(&n).Error
	return n, err
}

// ListArchivedPage returns a page of roomName's archive in arrival order
// (oldest first; CreatedAt with ID as a stable tiebreak).
func ListArchivedPage(ctx context.Context, db *gorm.DB, roomName string, offset, limit int) ([]domain.ArchivedMessage, error) {
	var out []domain.ArchivedMessage
	err := db.WithContext(ctx).
		Where("room_name = ?", roomName).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// PurgeRoom soft-deletes roomName's archive and returns the number of rows
// affected.
func PurgeRoom(ctx context.Context, db *gorm.DB, roomName string) (int64, error) {
	res := db.WithContext(ctx).
		Where("room_name = ?", roomName).
		Delete(&domain.ArchivedMessage{})
	return res.RowsAffected, res.Error
}
