package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/emberlink/emberlink-backend/internal/cache"
	"github.com/emberlink/emberlink-backend/internal/repository"
	"github.com/emberlink/emberlink-backend/internal/usecase/auth"
	"github.com/emberlink/emberlink-backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ClientFrame covers every client-sent frame; fields beyond Type are
// read per frame type.
type ClientFrame struct {
	Type    string `json:"type"`
	MatchID int    `json:"match_id,omitempty"`
	Content string `json:"content,omitempty"`
	Online  bool   `json:"online,omitempty"`
}

// Handler upgrades HTTP requests and dispatches client frames. The hub is
// owned here and injected wherever fan-out is needed; there is no ambient
// connection state.
type Handler struct {
	hub       *Hub
	authUC    *auth.AuthUseCase
	chatUC    *chat.ChatUseCase
	matchRepo repository.MatchRepository
	cache     *cache.RedisCache
	upgrader  websocket.Upgrader
	log       *slog.Logger
}

func NewHandler(
	hub *Hub,
	authUC *auth.AuthUseCase,
	chatUC *chat.ChatUseCase,
	matchRepo repository.MatchRepository,
	redisCache *cache.RedisCache,
	log *slog.Logger,
) *Handler {
	return &Handler{
		hub:       hub,
		authUC:    authUC,
		chatUC:    chatUC,
		matchRepo: matchRepo,
		cache:     redisCache,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve handles GET /ws?token=... Browsers cannot set headers on a
// WebSocket handshake, so the token rides in the query string.
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	userID, err := h.authUC.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "err", err)
		return
	}

	client := newClient(uuid.NewString(), userID, h.hub, conn)
	h.hub.Add(client)
	h.log.Info("websocket connected", "conn_id", client.ID, "user_id", userID)

	go client.writePump()

	h.sendTo(client, "connected", map[string]interface{}{"connection_id": client.ID})

	go func() {
		client.readPump(h.handleFrame)
		h.afterDisconnect(client)
	}()
}

func (h *Handler) handleFrame(c *Client, payload []byte) {
	var frame ClientFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		h.sendError(c, "malformed frame")
		return
	}

	ctx := context.Background()

	switch frame.Type {
	case "join_chat":
		match, err := h.matchRepo.GetByID(ctx, frame.MatchID)
		if err != nil || !match.HasUser(c.UserID) {
			h.sendError(c, "match not found")
			return
		}
		h.hub.JoinMatch(c, frame.MatchID)

	case "send_message":
		// The chat usecase persists first and broadcasts through the hub,
		// so the sender's own connection receives the frame too.
		if _, err := h.chatUC.SendMessage(ctx, c.UserID, &chat.SendMessageRequest{
			MatchID: frame.MatchID,
			Content: frame.Content,
		}); err != nil {
			h.sendError(c, "failed to send message")
			return
		}

	case "typing_start", "typing_stop":
		h.hub.BroadcastToMatchExcept(frame.MatchID, c.UserID, "user_typing", map[string]interface{}{
			"match_id": frame.MatchID,
			"user_id":  c.UserID,
			"typing":   frame.Type == "typing_start",
		})

	case "online_status":
		if err := h.cache.SetOnline(ctx, c.UserID, frame.Online); err != nil {
			h.log.Warn("presence update failed", "user_id", c.UserID, "err", err)
		}
		h.broadcastPresence(c, frame.Online)

	default:
		h.sendError(c, "unknown frame type")
	}
}

// broadcastPresence tells every conversation the client joined about the
// status flip.
func (h *Handler) broadcastPresence(c *Client, online bool) {
	h.hub.mu.RLock()
	matchIDs := make([]int, 0, len(c.joined))
	for matchID := range c.joined {
		matchIDs = append(matchIDs, matchID)
	}
	h.hub.mu.RUnlock()

	for _, matchID := range matchIDs {
		h.hub.BroadcastToMatchExcept(matchID, c.UserID, "user_online", map[string]interface{}{
			"user_id": c.UserID,
			"online":  online,
		})
	}
}

func (h *Handler) afterDisconnect(c *Client) {
	h.log.Info("websocket disconnected", "conn_id", c.ID, "user_id", c.UserID)
	if err := h.cache.SetOnline(context.Background(), c.UserID, false); err != nil {
		h.log.Warn("presence cleanup failed", "user_id", c.UserID, "err", err)
	}
}

// sendTo replies to one connection through the hub, which drops the frame
// when the connection was already evicted.
func (h *Handler) sendTo(c *Client, frameType string, data interface{}) {
	h.hub.SendToClient(c, frameType, data)
}

func (h *Handler) sendError(c *Client, message string) {
	h.sendTo(c, "error", map[string]string{"message": message})
}
