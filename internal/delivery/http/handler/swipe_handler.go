package handler

import (
	"net/http"
	"strconv"

	"github.com/emberlink/emberlink-backend/internal/usecase/swipe"
	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
	}
}

// CreateSwipe handles POST /swipes
// @Summary Record a swipe
// @Description Record a like or dislike; reports a match when reciprocal
// @Tags swipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.SwipeRequest true "Swipe data"
// @Success 200 {object} swipe.SwipeResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipes [post]
func (h *SwipeHandler) CreateSwipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	result, err := h.swipeUseCase.CreateSwipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SuperLikeRequest carries the super-like target
type SuperLikeRequest struct {
	SwipedID int `json:"swiped_id" binding:"required"`
}

// SuperLike handles POST /swipes/super-like
// @Summary Super-like a user
// @Description Record a super-like; reports a match when reciprocal
// @Tags swipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SuperLikeRequest true "Target user"
// @Success 200 {object} swipe.SwipeResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipes/super-like [post]
func (h *SwipeHandler) SuperLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SuperLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	result, err := h.swipeUseCase.SuperLike(c.Request.Context(), userID, req.SwipedID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Rewind handles POST /swipes/rewind
// @Summary Undo the latest swipe
// @Description Remove the caller's most recent swipe; no-op when none exist
// @Tags swipes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Swipe
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipes/rewind [post]
func (h *SwipeHandler) Rewind(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	undone, err := h.swipeUseCase.Rewind(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if undone == nil {
		c.JSON(http.StatusOK, gin.H{"undone": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"undone": undone})
}

// LikesReceived handles GET /swipes/likes-received
// @Summary Who liked me
// @Description List users whose current decision toward the caller is a like
// @Tags swipes
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} swipe.LikeReceived
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipes/likes-received [get]
func (h *SwipeHandler) LikesReceived(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	likes, err := h.swipeUseCase.GetLikesReceived(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}
