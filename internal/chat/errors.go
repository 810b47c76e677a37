// Package chat implements the per-room message store: the authoritative
// in-memory, per-room ordered log of chat messages with delivery-status
// tracking. This file centralizes store-level error values so callers can
// classify failures consistently.
package chat

import "errors"

// ErrNoActiveRoom is returned by Send when no room is bound (or the binding
// was cleared). The message is never appended in that case: there is no room
// log to file it into.
var ErrNoActiveRoom = errors.New("no active room")
