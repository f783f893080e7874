// Package notify broadcasts invalidation events to connected UI sessions so
// they refetch the affected subtree after a mutation instead of reloading
// the whole page.
package notify

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// Invalidation tells subscribers which part of a workspace changed. ScopeID
// is empty when the whole workspace tree should be refetched.
type Invalidation struct {
	Type        string `json:"type"`
	WorkspaceID string `json:"workspace_id"`
	ScopeID     string `json:"scope_id,omitempty"`
}

// Client is one connected session, subscribed to a single workspace.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	workspaceID string
}

// Hub fans invalidation events out to the sessions watching each workspace.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Invalidation
	register   chan *Client
	unregister chan *Client
	logger     *slog.Logger
}

// NewHub creates an idle hub; call Run on its own goroutine to start it.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Invalidation, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Subscribe attaches an accepted websocket connection to a workspace and
// starts its pumps.
func (h *Hub) Subscribe(conn *websocket.Conn, workspaceID string) {
	c := &Client{
		hub:         h,
		conn:        conn,
		send:        make(chan []byte, 8),
		workspaceID: workspaceID,
	}
	h.register <- c
	go c.writePump()
	go c.readPump()
}

// Invalidate notifies every session watching the workspace. Non-blocking;
// events are dropped if the hub is saturated rather than stalling the
// mutation path.
func (h *Hub) Invalidate(workspaceID, scopeID string) {
	ev := Invalidation{Type: "invalidate", WorkspaceID: workspaceID, ScopeID: scopeID}
	select {
	case h.broadcast <- ev:
	default:
		h.logger.Warn("invalidation dropped", slog.String("workspace_id", workspaceID))
	}
}

// Run is the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case ev := <-h.broadcast:
			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("marshal invalidation", slog.String("error", err.Error()))
				continue
			}
			for c := range h.clients {
				if c.workspaceID != ev.WorkspaceID {
					continue
				}
				select {
				case c.send <- payload:
				default:
					// Send buffer full, assume the session is gone.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// readPump drains the connection so control frames are processed. Clients
// only listen; inbound payloads are discarded.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
