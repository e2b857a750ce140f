package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// ServerFrame is the envelope for every server-sent frame.
type ServerFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub is the connection registry. It owns all live connections and the
// indexes used for fan-out: connection id -> client, match id -> connection
// ids, user id -> connection ids. It is process-local and rebuilt from
// nothing on restart; clients reconnect and re-join.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	byMatch map[int]map[string]struct{}
	byUser  map[int]map[string]struct{}

	log *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		byMatch: make(map[int]map[string]struct{}),
		byUser:  make(map[int]map[string]struct{}),
		log:     log,
	}
}

// Add registers a connection under its id and user.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.ID] = c
	if _, ok := h.byUser[c.UserID]; !ok {
		h.byUser[c.UserID] = make(map[string]struct{})
	}
	h.byUser[c.UserID][c.ID] = struct{}{}
}

// Remove drops a connection from every index and closes its send channel.
// Safe to call twice; the second call is a no-op.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)

	for matchID := range c.joined {
		if set, ok := h.byMatch[matchID]; ok {
			delete(set, c.ID)
			if len(set) == 0 {
				delete(h.byMatch, matchID)
			}
		}
	}
	if set, ok := h.byUser[c.UserID]; ok {
		delete(set, c.ID)
		if len(set) == 0 {
			delete(h.byUser, c.UserID)
		}
	}
	close(c.send)
}

// JoinMatch associates a connection with a conversation. A connection can
// be joined to several matches at once.
func (h *Hub) JoinMatch(c *Client, matchID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	if _, ok := h.byMatch[matchID]; !ok {
		h.byMatch[matchID] = make(map[string]struct{})
	}
	h.byMatch[matchID][c.ID] = struct{}{}
	c.joined[matchID] = struct{}{}
}

// BroadcastToMatch sends a frame to every connection joined to the match.
// Connections that join later receive nothing retroactively.
func (h *Hub) BroadcastToMatch(matchID int, frameType string, data interface{}) {
	h.broadcast(matchID, -1, frameType, data)
}

// BroadcastToMatchExcept skips the given user's connections; used for
// typing indicators so the typist doesn't echo.
func (h *Hub) BroadcastToMatchExcept(matchID, excludeUserID int, frameType string, data interface{}) {
	h.broadcast(matchID, excludeUserID, frameType, data)
}

func (h *Hub) broadcast(matchID, excludeUserID int, frameType string, data interface{}) {
	payload, err := json.Marshal(ServerFrame{Type: frameType, Data: data})
	if err != nil {
		h.log.Error("frame marshal failed", "type", frameType, "err", err)
		return
	}

	h.mu.RLock()
	var stale []*Client
	for id := range h.byMatch[matchID] {
		c := h.clients[id]
		if c == nil || c.UserID == excludeUserID {
			continue
		}
		select {
		case c.send <- payload:
		default:
			// Send buffer full: the connection is dead or hopelessly
			// behind. Evict it rather than block the fan-out.
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.log.Warn("evicting unresponsive connection", "conn_id", c.ID, "user_id", c.UserID)
		h.Remove(c)
	}
}

// SendToUser pushes a frame to every live connection of one user.
func (h *Hub) SendToUser(userID int, frameType string, data interface{}) {
	payload, err := json.Marshal(ServerFrame{Type: frameType, Data: data})
	if err != nil {
		h.log.Error("frame marshal failed", "type", frameType, "err", err)
		return
	}

	h.mu.RLock()
	var stale []*Client
	for id := range h.byUser[userID] {
		c := h.clients[id]
		if c == nil {
			continue
		}
		select {
		case c.send <- payload:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.Remove(c)
	}
}

// SendToClient pushes a frame to a single connection. The membership check
// and the send happen under the hub lock, so a concurrent Remove cannot
// close the channel mid-send.
func (h *Hub) SendToClient(c *Client, frameType string, data interface{}) {
	payload, err := json.Marshal(ServerFrame{Type: frameType, Data: data})
	if err != nil {
		h.log.Error("frame marshal failed", "type", frameType, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// ConnectionCount reports the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
