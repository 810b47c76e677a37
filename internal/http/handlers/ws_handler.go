// WebSocket attach endpoint.
//
// This file upgrades GET /ws/rooms/{name} to a WebSocket connection and hands
// it to the relay hub. The connection is the participant's room session: the
// hub tracks its membership, fans broadcast frames out to it, and archives the
// chat traffic it publishes.
//
// Identity is taken from the `identity` query parameter; a guest identity is
// generated when it is absent. Connecting twice with the same identity closes
// the older connection.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/meetwire/go-room-chat/internal/relay"
	"github.com/meetwire/go-room-chat/internal/sysutil"
)

// upgrader performs the HTTP → WebSocket handshake. Cross-origin browsers are
// allowed; access control is the surrounding middleware's job.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS godoc
// @ID          serveWS
// @Summary     Attach to a room
// @Description Upgrades the request to a WebSocket session on the given room's data channel.
// @Tags        Rooms
//
// @Param       name      path   string  true   "Room name"  example(standup)
// @Param       identity  query  string  false  "Stable participant identity"  example(alice)
// @Param       display   query  string  false  "Cosmetic display name"        example(Alice)
//
// @Success     101  {string} string "Switching Protocols"
// @Failure     400  {object} handlers.ErrorResponse "Not a WebSocket handshake"
// @Router      /ws/rooms/{name} [get]
func ServeWS(hub *relay.Hub, opts relay.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if name == "" {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "room name required")
			return
		}

		// Reject plain HTTP requests with the standard envelope before the
		// upgrader takes over the response.
		if !websocket.IsWebSocketUpgrade(c.Request) {
			fail(c, http.StatusBadRequest, ErrCodeUpgradeFailed, "websocket upgrade required")
			return
		}

		identity := sysutil.FirstNonEmpty(c.Query("identity"), "guest-"+uuid.NewString()[:8])
		displayName := sysutil.FirstNonEmpty(c.Query("display"), c.Query("name"), identity)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote its own error response.
			log.Debug().Err(err).Str("room", name).Msg("websocket upgrade failed")
			return
		}

		client := relay.NewClient(hub, conn, name, identity, displayName, opts)
		hub.Register(client)

		// Joined ack so the client knows its effective identity before any
		// data frames arrive.
		if ack, err := json.Marshal(relay.Frame{
			Op:       relay.OpJoined,
			Room:     name,
			Identity: identity,
		}); err == nil {
			client.Enqueue(ack)
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
