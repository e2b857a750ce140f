package handler

import (
	"net/http"
	"strconv"

	"github.com/emberlink/emberlink-backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

// SendMessage handles POST /matches/:match_id/messages
// @Summary Send a message
// @Description Persist a message and broadcast it to live connections
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path int true "Match ID"
// @Param request body chat.SendMessageRequest true "Message data"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches/{match_id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid match_id",
		})
		return
	}

	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}
	req.MatchID = matchID

	message, err := h.chatUseCase.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetHistory handles GET /matches/:match_id/messages
// @Summary Message history
// @Description Fetch the full ordered message log for a match
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {array} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches/{match_id}/messages [get]
func (h *ChatHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid match_id",
		})
		return
	}

	messages, err := h.chatUseCase.GetHistory(c.Request.Context(), userID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
