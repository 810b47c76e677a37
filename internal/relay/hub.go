// Package relay – Hub
//
// Hub is the server side of the data channel: it tracks which connection
// belongs to which room participant and fans published frames out to the
// right receivers. Broadcast frames reach every participant in the room
// except the publisher; targeted frames reach only the addressed identity.
//
// All membership mutations flow through the register/unregister channels and
// are applied by the Run loop, mirroring the map under a read-write mutex so
// the HTTP layer can list rooms and participants without touching the loop.
package relay

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/meetwire/go-room-chat/internal/transport"
)

var (
	// relayConnections gauges currently connected participants.
	relayConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "relay_connections",
		Help: "Current number of connected relay participants.",
	})

	// relayRooms gauges rooms with at least one participant.
	relayRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "relay_rooms",
		Help: "Current number of rooms with at least one participant.",
	})

	// relayFrames counts delivered data frames by topic.
	relayFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_data_frames_total",
			Help: "Total number of data frames fanned out, by topic.",
		},
		[]string{"topic"},
	)
)

func init() {
	prometheus.MustRegister(relayConnections, relayRooms, relayFrames)
}

// ArchiveSink records broadcast chat traffic for the history API. The hub
// calls it on its own goroutine; implementations own their error handling.
type ArchiveSink interface {
	ArchiveChat(ctx context.Context, roomName, sender, senderName, text string)
}

// RoomInfo summarizes one active room for the REST surface.
type RoomInfo struct {
	Name         string `json:"name"`
	Participants int    `json:"participants"`
}

// ParticipantInfo summarizes one connected participant.
type ParticipantInfo struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name,omitempty"`
}

// roomFrame is one fan-out unit: pre-marshaled bytes plus routing metadata.
type roomFrame struct {
	room    string
	topic   string
	exclude string // publisher identity, never echoed back
	target  string // non-empty for directed delivery
	data    []byte
}

// Hub routes data frames between the participants of each room. Create with
// NewHub and drive with Run; Register/Unregister are called by the WebSocket
// handler, Broadcast* by read pumps and the announcement service.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomFrame

	mu    sync.RWMutex
	rooms map[string]map[string]*Client // room name → identity → client

	archive ArchiveSink // optional
}

// NewHub constructs a Hub. archive may be nil to disable history capture.
func NewHub(archive ArchiveSink) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomFrame, 256),
		rooms:      make(map[string]map[string]*Client),
		archive:    archive,
	}
}

// Run processes membership changes and fan-out until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.addClient(c)

		case c := <-h.unregister:
			h.removeClient(c)

		case f := <-h.broadcast:
			h.fanOut(f)
		}
	}
}

// Register adds c to its room, replacing (and closing) any previous
// connection holding the same identity in that room.
func (h *Hub) Register(c *Client) { h.register <- c }

// Unregister removes c from its room. Safe to call more than once.
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

func (h *Hub) addClient(c *Client) {
	var evicted *Client

	h.mu.Lock()
	clients := h.rooms[c.RoomName]
	if clients == nil {
		clients = make(map[string]*Client)
		h.rooms[c.RoomName] = clients
	}
	if old, ok := clients[c.Identity]; ok && old != c {
		evicted = old
	}
	clients[c.Identity] = c
	h.mu.Unlock()

	if evicted != nil {
		close(evicted.send)
	}
	h.updateGauges()

	log.Debug().
		Str("room", c.RoomName).
		Str("identity", c.Identity).
		Msg("participant joined")

	h.notifyMembership(OpParticipantJoined, c)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	clients, ok := h.rooms[c.RoomName]
	if ok {
		if cur, found := clients[c.Identity]; found && cur == c {
			delete(clients, c.Identity)
			if len(clients) == 0 {
				delete(h.rooms, c.RoomName)
			}
		} else {
			ok = false
		}
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	close(c.send)
	h.updateGauges()

	log.Debug().
		Str("room", c.RoomName).
		Str("identity", c.Identity).
		Msg("participant left")

	h.notifyMembership(OpParticipantLeft, c)
}

// notifyMembership tells the rest of the room that c joined or left.
func (h *Hub) notifyMembership(op string, c *Client) {
	data, err := json.Marshal(Frame{
		Op:       op,
		Room:     c.RoomName,
		Identity: c.Identity,
		FromName: c.DisplayName,
	})
	if err != nil {
		return
	}
	h.fanOut(&roomFrame{room: c.RoomName, exclude: c.Identity, data: data})
}

func (h *Hub) fanOut(f *roomFrame) {
	h.mu.RLock()
	clients := h.rooms[f.room]
	for identity, c := range clients {
		if identity == f.exclude {
			continue
		}
		if f.target != "" && identity != f.target {
			continue
		}
		if !c.Enqueue(f.data) {
			// Slow consumer: drop the connection rather than the room.
			go func(c *Client) { h.unregister <- c }(c)
		}
	}
	h.mu.RUnlock()

	if f.topic != "" {
		relayFrames.WithLabelValues(f.topic).Inc()
	}
}

// publish routes one frame received from c's read pump. Broadcast chat
// traffic is additionally handed to the archive sink.
func (h *Hub) publish(c *Client, f Frame) {
	out, err := json.Marshal(Frame{
		Op:       OpData,
		Room:     c.RoomName,
		Topic:    f.Topic,
		Target:   f.Target,
		From:     c.Identity,
		FromName: c.DisplayName,
		Payload:  f.Payload,
	})
	if err != nil {
		return
	}

	h.broadcast <- &roomFrame{
		room:    c.RoomName,
		topic:   f.Topic,
		exclude: c.Identity,
		target:  f.Target,
		data:    out,
	}

	if h.archive != nil && f.Topic == transport.TopicChat && f.Target == "" {
		if env, err := transport.Decode(f.Payload); err == nil && env.Kind() == transport.KindChat && env.Recipient == "" {
			go h.archive.ArchiveChat(context.Background(), c.RoomName, c.Identity, c.DisplayName, env.Message)
		}
	}
}

// BroadcastChat injects a server-originated broadcast chat message into room
// roomName, attributed to the given identity. Used by the announcements API;
// archiving is the caller's responsibility there.
func (h *Hub) BroadcastChat(roomName, identity, displayName, text string) error {
	payload, err := transport.EncodeChat(text, "")
	if err != nil {
		return err
	}
	data, err := json.Marshal(Frame{
		Op:       OpData,
		Room:     roomName,
		Topic:    transport.TopicChat,
		From:     identity,
		FromName: displayName,
		Payload:  payload,
	})
	if err != nil {
		return err
	}
	h.broadcast <- &roomFrame{
		room:  roomName,
		topic: transport.TopicChat,
		data:  data,
	}
	return nil
}

// HasRoom reports whether roomName currently has any participants.
func (h *Hub) HasRoom(roomName string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomName]) > 0
}

// Rooms lists active rooms with their participant counts.
func (h *Hub) Rooms() []RoomInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]RoomInfo, 0, len(h.rooms))
	for name, clients := range h.rooms {
		out = append(out, RoomInfo{Name: name, Participants: len(clients)})
	}
	return out
}

// Participants lists the connected participants of roomName; ok is false for
// unknown rooms.
func (h *Hub) Participants(roomName string) ([]ParticipantInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, found := h.rooms[roomName]
	if !found {
		return nil, false
	}
	out := make([]ParticipantInfo, 0, len(clients))
	for _, c := range clients {
		out = append(out, ParticipantInfo{Identity: c.Identity, DisplayName: c.DisplayName})
	}
	return out, true
}

func (h *Hub) updateGauges() {
	h.mu.RLock()
	rooms := len(h.rooms)
	conns := 0
	for _, clients := range h.rooms {
		conns += len(clients)
	}
	h.mu.RUnlock()

	relayRooms.Set(float64(rooms))
	relayConnections.Set(float64(conns))
}

// drainTimeout bounds how long a write pump waits for in-flight sends during
// shutdown before closing the socket.
const drainTimeout = 5 * time.Second
