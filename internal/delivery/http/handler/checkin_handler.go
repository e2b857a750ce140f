package handler

import (
	"net/http"
	"strconv"

	"github.com/emberlink/emberlink-backend/internal/usecase/checkin"
	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	checkInUseCase *checkin.CheckInUseCase
}

func NewCheckInHandler(checkInUseCase *checkin.CheckInUseCase) *CheckInHandler {
	return &CheckInHandler{
		checkInUseCase: checkInUseCase,
	}
}

// ListEstablishments handles GET /establishments
// @Summary List establishments
// @Description List venues available for check-in, optionally by category
// @Tags checkins
// @Security BearerAuth
// @Produce json
// @Param category query string false "Venue category"
// @Success 200 {array} domain.Establishment
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /establishments [get]
func (h *CheckInHandler) ListEstablishments(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	establishments, err := h.checkInUseCase.ListEstablishments(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, establishments)
}

// CheckInRequest carries the venue to check into
type CheckInRequest struct {
	EstablishmentID int `json:"establishment_id" binding:"required"`
}

// CheckIn handles POST /checkins
// @Summary Check in
// @Description Check into a venue; any previous check-in deactivates first
// @Tags checkins
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CheckInRequest true "Venue"
// @Success 201 {object} domain.CheckIn
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkins [post]
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	checkIn, err := h.checkInUseCase.CheckIn(c.Request.Context(), userID, req.EstablishmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checkIn)
}

// CheckOut handles DELETE /checkins/current
// @Summary Check out
// @Description Deactivate the caller's current check-in
// @Tags checkins
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkins/current [delete]
func (h *CheckInHandler) CheckOut(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.checkInUseCase.CheckOut(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "checked out",
	})
}

// ListVisitors handles GET /establishments/:establishment_id/visitors
// @Summary Active visitors
// @Description List users currently checked into a venue
// @Tags checkins
// @Security BearerAuth
// @Produce json
// @Param establishment_id path int true "Establishment ID"
// @Success 200 {array} checkin.ActiveVisitor
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /establishments/{establishment_id}/visitors [get]
func (h *CheckInHandler) ListVisitors(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	establishmentID, err := strconv.Atoi(c.Param("establishment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid establishment_id",
		})
		return
	}

	visitors, err := h.checkInUseCase.ListActiveVisitors(c.Request.Context(), establishmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, visitors)
}
