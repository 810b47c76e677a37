// Package relay – server-side connection
//
// Client is one participant's WebSocket connection as seen by the hub. The
// read pump parses publish frames and hands them to the hub; the write pump
// drains the send buffer and keeps the connection alive with pings. Both
// pumps run on their own goroutines and tear the connection down on the
// first error.
package relay

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Options tunes the relay's WebSocket behavior. Zero values fall back to the
// defaults below.
type Options struct {
	ReadLimit  int64         // max inbound frame size in bytes
	WriteWait  time.Duration // per-write deadline
	PongWait   time.Duration // read deadline extension on pong
	PingPeriod time.Duration // ping cadence; must be < PongWait
	SendBuffer int           // per-connection outbound queue length
}

func (o Options) withDefaults() Options {
	if o.ReadLimit <= 0 {
		o.ReadLimit = 64 << 10
	}
	if o.WriteWait <= 0 {
		o.WriteWait = 10 * time.Second
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.PingPeriod <= 0 {
		o.PingPeriod = (o.PongWait * 9) / 10
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = 256
	}
	return o
}

// Client is a connected participant. Identity is unique within the room; a
// second connection claiming the same identity evicts the first.
type Client struct {
	Identity    string
	DisplayName string
	RoomName    string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	opts Options
}

// NewClient wraps an upgraded connection for the hub. Callers must Register
// the client and start both pumps.
func NewClient(hub *Hub, conn *websocket.Conn, roomName, identity, displayName string, opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		Identity:    identity,
		DisplayName: displayName,
		RoomName:    roomName,
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, opts.SendBuffer),
		opts:        opts,
	}
}

// Enqueue offers data to the client's outbound queue without blocking;
// it reports whether the frame was accepted.
func (c *Client) Enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// ReadPump consumes frames from the socket until it closes, forwarding
// publish frames to the hub. Must run on its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.opts.ReadLimit)
	c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Warn().
					Str("room", c.RoomName).
					Str("identity", c.Identity).
					Err(err).
					Msg("websocket read failed")
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Debug().
				Str("room", c.RoomName).
				Str("identity", c.Identity).
				Err(err).
				Msg("dropping unparseable relay frame")
			continue
		}
		if f.Op != OpPublish {
			// Clients only ever publish; anything else is ignored.
			continue
		}
		c.hub.publish(c, f)
	}
}

// WritePump drains the send queue onto the socket and pings on a timer.
// Must run on its own goroutine. Exits when the hub closes the send channel
// or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				// Hub dropped us; tell the peer before closing.
				c.conn.SetWriteDeadline(time.Now().Add(drainTimeout))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
