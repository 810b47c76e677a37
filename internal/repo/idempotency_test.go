package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meetwire/go-room-chat/internal/domain"
)

func TestGetIdempotency_EmptyRoomIsNotFound(t *testing.T) {
	db := newArchiveDB(t, &domain.Idempotency{})
	if _, err := GetIdempotency(context.Background(), db, "   ", "k1", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank room, got %v", err)
	}
}

func TestCreateAndGetIdempotency_RoundTrip(t *testing.T) {
	db := newArchiveDB(t, &domain.Idempotency{})
	ctx := context.Background()
	now := time.Now().UTC()

	rec, err := CreateIdempotency(ctx, db, "daily", "k1", "msg-1", 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.ID == "" || rec.RoomName != "daily" || rec.Key != "k1" || rec.MessageID != "msg-1" || rec.Status != 201 {
		t.Fatalf("unexpected record fields: %+v", rec)
	}
	if !rec.ExpiresAt.After(now) {
		t.Fatalf("ExpiresAt should be in the future: %v", rec.ExpiresAt)
	}

	got, err := GetIdempotency(ctx, db, "daily", "k1", now)
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.MessageID != "msg-1" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestGetIdempotency_ExpiredIsNotFound(t *testing.T) {
	db := newArchiveDB(t, &domain.Idempotency{})
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "daily", "k1", "msg-1", 201, time.Millisecond); err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}

	// Query "now" past the TTL window.
	later := time.Now().UTC().Add(time.Second)
	if _, err := GetIdempotency(ctx, db, "daily", "k1", later); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired record to read as not found, got %v", err)
	}
}

func TestCreateIdempotency_DuplicateKey(t *testing.T) {
	db := newArchiveDB(t, &domain.Idempotency{})
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "daily", "k1", "msg-1", 201, time.Hour); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "daily", "k1", "msg-2", 201, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on same (room,key), got %v", err)
	}

	// Same key in another room is a distinct tuple.
	if _, err := CreateIdempotency(ctx, db, "retro", "k1", "msg-3", 201, time.Hour); err != nil {
		t.Fatalf("same key different room should insert: %v", err)
	}
}
