// server/ws/hub.go
package ws

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ViniZap4/calmrush-server/domain"
)

// Conn is the part of a websocket connection the hub uses.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

type Message struct {
	Type    string          `json:"type"`
	Thought *domain.Thought `json:"thought,omitempty"`
}

type envelope struct {
	userID string
	msg    Message
}

// client is a registration request; Run closes ack once it has been applied.
type client struct {
	userID string
	conn   Conn
	ack    chan struct{}
}

// Hub fans thought events out to every open connection of the owning user.
type Hub struct {
	clients    map[string]map[Conn]bool
	broadcast  chan envelope
	register   chan client
	unregister chan client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[Conn]bool),
		broadcast:  make(chan envelope, 256),
		register:   make(chan client),
		unregister: make(chan client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, conns := range h.clients {
				for conn := range conns {
					conn.Close()
				}
			}
			h.clients = make(map[string]map[Conn]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[Conn]bool)
			}
			h.clients[c.userID][c.conn] = true
			h.mu.Unlock()
			close(c.ack)

		case c := <-h.unregister:
			h.remove(c)
			close(c.ack)

		case env := <-h.broadcast:
			h.mu.RLock()
			var failed []client
			for conn := range h.clients[env.userID] {
				if err := conn.WriteJSON(env.msg); err != nil {
					log.Warn().Err(err).Str("user", env.userID).Msg("websocket write failed")
					failed = append(failed, client{userID: env.userID, conn: conn})
				}
			}
			h.mu.RUnlock()
			for _, c := range failed {
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[c.userID]
	if _, ok := conns[c.conn]; !ok {
		return
	}
	delete(conns, c.conn)
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
	c.conn.Close()
}

// Publish queues an event for the user's connections. It never blocks a
// request: when the queue is full the event is dropped.
func (h *Hub) Publish(userID, event string, t *domain.Thought) {
	select {
	case h.broadcast <- envelope{userID: userID, msg: Message{Type: event, Thought: t}}:
	default:
		log.Warn().Str("user", userID).Str("event", event).Msg("websocket queue full, dropping event")
	}
}

// Register returns once conn is visible to Publish and Connections.
func (h *Hub) Register(userID string, conn Conn) {
	c := client{userID: userID, conn: conn, ack: make(chan struct{})}
	select {
	case h.register <- c:
		<-c.ack
	case <-h.done:
		conn.Close()
	}
}

// Unregister returns once conn has been removed and closed.
func (h *Hub) Unregister(userID string, conn Conn) {
	c := client{userID: userID, conn: conn, ack: make(chan struct{})}
	select {
	case h.unregister <- c:
		<-c.ack
	case <-h.done:
	}
}

// Connections reports how many sockets the user has open.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// HandleConnection registers conn and reads until the client goes away.
// Clients only send pings; anything else is ignored.
func (h *Hub) HandleConnection(userID string, conn Conn) {
	h.Register(userID, conn)
	defer h.Unregister(userID, conn)

	for {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if t, _ := msg["type"].(string); t == "ping" {
			log.Debug().Str("user", userID).Msg("websocket ping")
		}
	}
}
