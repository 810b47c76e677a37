// Announcement HTTP handlers.
//
// This file exposes the operator broadcast endpoint:
//   - POST /rooms/{name}/announcements
//
// The message is fanned out to every connected participant of the room over
// the data channel and recorded in the archive.
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// announcement exists for (room, key), the handler returns the recorded
// message and sets `Idempotency-Replayed: true` instead of broadcasting again.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetwire/go-room-chat/internal/domain"
	"github.com/meetwire/go-room-chat/internal/http/middleware"
	"github.com/meetwire/go-room-chat/internal/services"
)

//
// DTOs
//

// AnnounceRequest is the JSON payload for broadcasting an announcement.
type AnnounceRequest struct {
	// Text is the announcement body. It must be non-empty after trimming.
	Text string `json:"text" binding:"required,min=1" example:"The meeting will end in 5 minutes."`
}

// AnnounceResponse is the JSON envelope for a broadcast announcement.
type AnnounceResponse struct {
	// Message is the archived record of the announcement.
	Message *domain.ArchivedMessage `json:"message"`
}

// PostAnnouncement godoc
// @ID          postAnnouncement
// @Summary     Broadcast an announcement into a room
// @Description Sends a server-originated chat message to every participant of the room.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Announcements
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       name             path    string  true  "Room name"  example(standup)
// @Param       body             body    handlers.AnnounceRequest  true  "Announcement payload"
//
// @Success     200  {object}  handlers.AnnounceResponse  "Replayed prior result"
// @Success     201  {object}  handlers.AnnounceResponse  "Announcement broadcast"
// @Failure     400  {object}  handlers.ErrorResponse     "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse     "Room not found"
// @Failure     500  {object}  handlers.ErrorResponse     "Internal error"
// @Router      /rooms/{name}/announcements [post]
func (h *Handlers) PostAnnouncement(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	var req AnnounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text required")
		return
	}

	idemKey, _ := middleware.GetIdempotencyKey(c)

	msg, replayed, err := h.announceSvc.Announce(ctx, name, req.Text, idemKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text required")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text too long")
		case errors.Is(err, services.ErrRoomNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "room not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeAnnounceFailed, err.Error())
		}
		return
	}

	if replayed {
		c.Header("Idempotency-Replayed", "true")
		ok(c, http.StatusOK, AnnounceResponse{Message: msg})
		return
	}
	ok(c, http.StatusCreated, AnnounceResponse{Message: msg})
}
