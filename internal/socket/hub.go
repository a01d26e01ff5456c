// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Event is the envelope pushed to UI clients.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventNotification            = "notification"
	EventPurchaseRequestsUpdated = "purchase_requests_updated"
)

// Hub tracks connected UI clients keyed by user id.
type Hub struct {
	clients map[string]Conn
	// writes to one gorilla conn must not be concurrent
	writeMu map[string]*sync.Mutex
	mu      sync.RWMutex
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]Conn),
		writeMu: make(map[string]*sync.Mutex),
		logger:  logger,
	}
}

// Register adds a client. A second connection for the same user replaces
// the first, which is closed.
func (h *Hub) Register(userID string, conn Conn) {
	h.mu.Lock()
	old, replaced := h.clients[userID]
	h.clients[userID] = conn
	h.writeMu[userID] = &sync.Mutex{}
	h.mu.Unlock()

	if replaced && old != conn {
		old.Close()
	}
	h.logger.Info("WebSocket client registered", zap.String("userID", userID))
}

// Unregister removes conn if it is still the registered client for userID.
func (h *Hub) Unregister(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[userID]; ok && current == conn {
		delete(h.clients, userID)
		delete(h.writeMu, userID)
		h.logger.Info("WebSocket client unregistered", zap.String("userID", userID))
	}
}

// Send writes message to one client. An offline client is not an error.
func (h *Hub) Send(userID string, message []byte) error {
	h.mu.RLock()
	conn, ok := h.clients[userID]
	mu := h.writeMu[userID]
	h.mu.RUnlock()

	if !ok {
		h.logger.Debug("WebSocket client not found, message dropped", zap.String("userID", userID))
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Broadcast sends event to every connected client and returns how many
// writes succeeded.
func (h *Hub) Broadcast(event Event) (int, error) {
	message, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s event: %w", event.Event, err)
	}

	h.mu.RLock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	sent := 0
	for _, id := range ids {
		if err := h.Send(id, message); err != nil {
			h.logger.Warn("WebSocket broadcast failed", zap.String("userID", id), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
