package websocket

import (
	"sync"

	"interview-insights-be/internal/pkg/logger"
	"interview-insights-be/pkg/transcript"
)

// DraftValidator checks a draft transcript and returns its findings. Wired
// to the interview service at bootstrap.
type DraftValidator func(text string) []transcript.Finding

// Hub tracks connected UI clients and fans processing events out to them.
// One hub serves the whole process; there is no per-user routing because
// the pipeline handles a single submission at a time.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	validateDraft DraftValidator

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(validateDraft DraftValidator, log logger.ILogger) *Hub {
	return &Hub{
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		validateDraft: validateDraft,
		logger:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"clients": h.clientCount()})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"clients": h.clientCount()})
		}
	}
}

// BroadcastRaw sends a pre-serialized payload to ALL connected clients.
func (h *Hub) BroadcastRaw(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop it rather than block the pipeline.
			h.logger.Warn("Hub", "Client send buffer full, dropping client", nil)
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
