// Room directory HTTP handlers.
//
// This file exposes read-only REST endpoints over the relay's live state:
//   - GET /rooms                          (rooms with connected participants)
//   - GET /rooms/{name}/participants     (participant roster of one room)
//
// Rooms exist only while participants are connected; there is no room CRUD.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetwire/go-room-chat/internal/relay"
)

// ListRoomsResponse is the payload returned by GET /rooms.
type ListRoomsResponse struct {
	Rooms []relay.RoomInfo `json:"rooms"`
}

// ListParticipantsResponse is the payload returned by GET /rooms/{name}/participants.
type ListParticipantsResponse struct {
	Room         string                  `json:"room" example:"standup"`
	Participants []relay.ParticipantInfo `json:"participants"`
}

// ListRooms godoc
// @ID          listRooms
// @Summary     List active rooms
// @Description Returns every room that currently has at least one connected participant.
// @Tags        Rooms
// @Produce     json
//
// @Success     200  {object} handlers.ListRoomsResponse
// @Router      /rooms [get]
func (h *Handlers) ListRooms(c *gin.Context) {
	rooms := h.dir.Rooms()
	if rooms == nil {
		rooms = []relay.RoomInfo{}
	}
	ok(c, http.StatusOK, ListRoomsResponse{Rooms: rooms})
}

// ListParticipants godoc
// @ID          listParticipants
// @Summary     List a room's participants
// @Description Returns the connected participants of the given room.
// @Tags        Rooms
// @Produce     json
//
// @Param       name  path  string  true  "Room name"  example(standup)
//
// @Success     200  {object} handlers.ListParticipantsResponse
// @Failure     404  {object} handlers.ErrorResponse "Room not found"
// @Router      /rooms/{name}/participants [get]
func (h *Handlers) ListParticipants(c *gin.Context) {
	name := c.Param("name")

	parts, found := h.dir.Participants(name)
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "room not found")
		return
	}
	if parts == nil {
		parts = []relay.ParticipantInfo{}
	}
	ok(c, http.StatusOK, ListParticipantsResponse{Room: name, Participants: parts})
}
