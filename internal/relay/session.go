// Package relay – Session
//
// Session is the client side of the data channel: it dials the relay's
// WebSocket endpoint for one room and exposes the room.Handle capability set
// (identity, data subscribe, reliable/targeted publish) the chat layer is
// written against. Inbound data frames are dispatched synchronously to every
// registered handler on the session's read goroutine.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/meetwire/go-room-chat/internal/room"
)

// ErrSessionClosed is returned by PublishData after the session's connection
// has gone away.
var ErrSessionClosed = errors.New("relay session closed")

// Session is one participant's connection to a room, usable as room.Handle.
type Session struct {
	roomName    string
	identity    string
	displayName string

	conn    *websocket.Conn
	writeMu sync.Mutex

	mu     sync.Mutex
	subs   map[int]room.DataHandler
	nextID int

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the relay at baseURL (e.g. "ws://host:8080") and joins
// roomName as identity. displayName may be empty. The returned session's
// read loop runs until Close or a connection error.
func Dial(ctx context.Context, baseURL, roomName, identity, displayName string) (*Session, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = "/ws/rooms/" + url.PathEscape(roomName)
	q := u.Query()
	q.Set("identity", identity)
	if displayName != "" {
		q.Set("name", displayName)
	}
	u.RawQuery = q.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	s := &Session{
		roomName:    roomName,
		identity:    identity,
		displayName: displayName,
		conn:        conn,
		subs:        make(map[int]room.DataHandler),
		done:        make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

// Name returns the joined room's name.
func (s *Session) Name() string { return s.roomName }

// LocalIdentity returns the identity this session joined with.
func (s *Session) LocalIdentity() string { return s.identity }

// LocalDisplayName returns the display name this session joined with.
func (s *Session) LocalDisplayName() string { return s.displayName }

// sessionSub implements room.Subscription for one registered handler.
type sessionSub struct {
	s  *Session
	id int
}

// Unsubscribe detaches the handler. Idempotent.
func (sub *sessionSub) Unsubscribe() {
	sub.s.mu.Lock()
	delete(sub.s.subs, sub.id)
	sub.s.mu.Unlock()
}

// SubscribeData registers h for inbound data payloads.
func (s *Session) SubscribeData(h room.DataHandler) room.Subscription {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = h
	s.mu.Unlock()
	return &sessionSub{s: s, id: id}
}

// PublishData sends payload into the room. The context deadline, when set,
// bounds the socket write; otherwise a 10s default applies. Fails with
// ErrSessionClosed once the connection is gone.
func (s *Session) PublishData(ctx context.Context, payload []byte, opts room.PublishOptions) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	data, err := json.Marshal(Frame{
		Op:       OpPublish,
		Topic:    opts.Topic,
		Target:   opts.Target,
		Reliable: opts.Reliable,
		Payload:  payload,
	})
	if err != nil {
		return err
	}

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(deadline)
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.shutdown()
		return err
	}
	return nil
}

// Close tears the session down. Safe to call multiple times.
func (s *Session) Close() error {
	s.shutdown()
	return nil
}

// Done is closed when the session's connection has gone away.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// readLoop dispatches inbound data frames to subscribers until the
// connection drops.
func (s *Session) readLoop() {
	defer s.shutdown()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Debug().
				Str("room", s.roomName).
				Err(err).
				Msg("dropping unparseable relay frame")
			continue
		}
		if f.Op != OpData {
			// Membership and ack frames are not data payloads.
			continue
		}

		origin := room.Origin{Identity: f.From, DisplayName: f.FromName}
		s.mu.Lock()
		handlers := make([]room.DataHandler, 0, len(s.subs))
		for _, h := range s.subs {
			handlers = append(handlers, h)
		}
		s.mu.Unlock()

		for _, h := range handlers {
			h(f.Payload, origin, f.Topic)
		}
	}
}
