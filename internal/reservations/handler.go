package reservations

import (
	"net/http"
	"strconv"

	"commissary/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	tracker *Tracker
}

func NewHandler(tracker *Tracker) *Handler {
	return &Handler{tracker: tracker}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/reservations", h.Hold)
	router.PATCH("/reservations/:id/release", h.Release)
	router.PATCH("/reservations/:id/fulfill", h.Fulfill)
}

func (h *Handler) Hold(c *gin.Context) {
	var req HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}

	reservation, err := h.tracker.Hold(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

func (h *Handler) Release(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Reservation ID must be numeric")))
		return
	}

	reservation, err := h.tracker.Release(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) Fulfill(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Reservation ID must be numeric")))
		return
	}

	reservation, err := h.tracker.Fulfill(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, reservation)
}
