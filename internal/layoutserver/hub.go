package layoutserver

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// writeTimeout bounds a single broadcast write to one watcher.
const writeTimeout = 3 * time.Second

// Hub fans generated-layout messages out to watcher connections. Watchers
// that fail a write are dropped.
type Hub struct {
	logger   *zap.Logger
	mu       sync.Mutex
	watchers map[*websocket.Conn]struct{}
}

// NewHub creates an empty Hub.
//
// Precondition: logger must be non-nil.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:   logger,
		watchers: make(map[*websocket.Conn]struct{}),
	}
}

// Add registers a watcher connection.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.watchers[conn] = struct{}{}
	h.mu.Unlock()
}

// Remove unregisters a watcher connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.watchers, conn)
	h.mu.Unlock()
}

// Count returns the number of connected watchers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

// Broadcast sends message to every watcher, dropping any that fail.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.watchers {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			h.logger.Debug("dropping watcher after failed write", zap.Error(err))
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.watchers, conn)
		}
	}
}
