// internal/ws/hub.go
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"reviewspin-service/internal/service/draw"
)

// Hub fans winner events out to the dashboards subscribed to a store's feed.
type Hub struct {
	// Registered clients by store ID
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan draw.WinEvent

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan draw.WinEvent, 256),
		logger:     logger,
	}
}

// PublishWin queues a winner event for delivery. Never blocks the draw path:
// if the buffer is full the event is dropped.
func (h *Hub) PublishWin(event draw.WinEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("winner feed buffer full, dropping event",
			zap.Int64("store_id", event.StoreID),
		)
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.storeID] == nil {
		h.clients[c.storeID] = make(map[*Client]bool)
	}
	h.clients[c.storeID][c] = true

	h.logger.Info("winner feed client connected", zap.Int64("store_id", c.storeID))
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.clients[c.storeID]; ok {
		if set[c] {
			delete(set, c)
			close(c.send)
			if len(set) == 0 {
				delete(h.clients, c.storeID)
			}
		}
	}
}

func (h *Hub) deliver(event draw.WinEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal winner event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[event.StoreID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop the event for this client rather than
			// stalling the hub.
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, set := range h.clients {
		for client := range set {
			close(client.send)
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
}
