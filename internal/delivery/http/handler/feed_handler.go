package handler

import (
	"errors"
	"net/http"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/usecase/feed"
	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// NextCandidate handles GET /feed/next
// @Summary Next candidate
// @Description Return the next un-swiped candidate for the caller's deck
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Success 200 {object} feed.FeedCandidate
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/next [get]
func (h *FeedHandler) NextCandidate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	candidate, err := h.feedUseCase.GetNextCandidate(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "no more candidates",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}
