// Package spectator adapts the teacher's websocket hub/client pair into a
// push-based complement to board.Board's long-poll Watch. It adds no new
// visibility semantics of its own: every push is a render taken immediately
// before or after a board.Watch call.
package spectator

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"memoryscramble/internal/board"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks the sockets currently spectating one room's board.
type Hub struct {
	roomID string
	board  *board.Board

	mu      sync.Mutex
	clients map[*Client]bool
}

// NewHub creates a hub streaming b's renderings to whoever connects.
func NewHub(roomID string, b *board.Board) *Hub {
	return &Hub{
		roomID:  roomID,
		board:   b,
		clients: make(map[*Client]bool),
	}
}

// ServeWS upgrades the request to a websocket and registers a new client
// streaming renderings for viewerID until the socket closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, viewerID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("spectator upgrade failed", "tag", "spectator", "room", h.roomID, "err", err)
		return
	}

	c := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 16),
		viewerID: viewerID,
	}

	h.register(c)
	go c.writePump()
	go c.watchLoop()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	slog.Info("spectator connected", "tag", "spectator", "room", h.roomID, "viewer", c.viewerID, "total", len(h.clients))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		slog.Info("spectator disconnected", "tag", "spectator", "room", h.roomID, "viewer", c.viewerID, "total", len(h.clients))
	}
}

// Ping writes a websocket ping to every connected client; used by
// internal/scheduler's keep-alive job to hold idle long-lived connections
// open through intermediate proxies.
func (h *Hub) Ping() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.ping()
	}
}
