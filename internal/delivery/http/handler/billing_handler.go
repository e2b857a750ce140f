package handler

import (
	"net/http"

	"github.com/emberlink/emberlink-backend/internal/usecase/billing"
	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billingUseCase *billing.BillingUseCase
}

func NewBillingHandler(billingUseCase *billing.BillingUseCase) *BillingHandler {
	return &BillingHandler{
		billingUseCase: billingUseCase,
	}
}

// SyncSubscription handles POST /billing/sync
// @Summary Sync subscription
// @Description Mirror the payment provider's subscription state and adjust tier
// @Tags billing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body billing.SyncRequest true "Provider subscription state"
// @Success 200 {object} domain.Subscription
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /billing/sync [post]
func (h *BillingHandler) SyncSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req billing.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	sub, err := h.billingUseCase.SyncSubscription(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// GetSubscription handles GET /billing/subscription
// @Summary Get subscription
// @Description Return the caller's mirrored subscription record
// @Tags billing
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Subscription
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /billing/subscription [get]
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sub, err := h.billingUseCase.GetSubscription(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}
