// Package services defines the server-side business logic above the relay:
// room history retrieval and operator announcements. This file centralizes
// common service-level error values so that they can be consistently returned
// by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrRoomNotFound indicates that the requested room has no connected
	// participants and is unknown to the relay.
	ErrRoomNotFound = errors.New("room not found")

	// ErrEmptyMessage is returned when an announcement contains no text
	// after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrTooLong is returned when an announcement exceeds the maximum
	// configured length limit.
	ErrTooLong = errors.New("message too long")

	// ErrHistoryDisabled is returned when the history archive is not
	// configured (no database attached).
	ErrHistoryDisabled = errors.New("history archive disabled")
)
