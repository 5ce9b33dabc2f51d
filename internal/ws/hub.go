package ws

import (
	"sync"

	"envio-courier-tracking/internal/logx"
)

// Hub keeps track of connected streaming clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
	logger  logx.Logger
}

func NewHub(logger logx.Logger) *Hub {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Add registers a client. Returns false when the hub is shut down.
func (h *Hub) Add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c.ID] = c
	return true
}

// Remove drops a client and closes its send channel. Safe to call twice.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	close(c.send)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends message to every connected client. Clients whose send
// buffer is full are disconnected rather than blocking the caller.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	var slow []string
	for _, c := range h.clients {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c.ID)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		h.logger.Warn("dropping slow ws client", logx.String("client_id", id))
		h.Remove(id)
	}
}

// Close disconnects all clients and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}
