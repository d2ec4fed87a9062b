package api

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event is pushed to every WebSocket client.
type Event struct {
	Type   string `json:"type"`
	Themes int    `json:"themes"`
}

const EventThemesUpdated = "themes-updated"

// client guards writes to one connection; gorilla connections support a
// single concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub fans events out to connected WebSocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
	}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = &client{conn: conn}
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends ev to all clients and drops the ones that fail.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(ev); err != nil {
			h.Remove(c.conn)
			c.conn.Close()
		}
	}
}

// Send writes v to a single connection, serialized with broadcasts.
func (h *Hub) Send(conn *websocket.Conn, v any) error {
	h.mu.RLock()
	c, exists := h.clients[conn]
	h.mu.RUnlock()

	if !exists {
		return conn.WriteJSON(v)
	}
	return c.send(v)
}
