package operations

import (
	"net/http"
	"strconv"

	"commissary/internal/ledger"
	"commissary/internal/stock"
	"commissary/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	stock   *stock.Projector
	ledger  ledger.Store
}

func NewHandler(service *Service, projector *stock.Projector, store ledger.Store) *Handler {
	return &Handler{service: service, stock: projector, ledger: store}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/inventory/receive", h.Receive)
	router.POST("/inventory/consume", h.Consume)
	router.POST("/inventory/transfer", h.Transfer)
	router.GET("/inventory/:item_id/balance", h.GetBalance)
	router.GET("/inventory/:item_id/movements", h.GetMovements)
}

func (h *Handler) Receive(c *gin.Context) {
	var req ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}

	movement, err := h.service.Receive(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusCreated, movement)
}

func (h *Handler) Consume(c *gin.Context) {
	var req ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}

	movement, err := h.service.Consume(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusCreated, movement)
}

func (h *Handler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}

	movement, err := h.service.Transfer(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusCreated, movement)
}

// GetBalance reports on-hand and available stock for an item at a location.
func (h *Handler) GetBalance(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Item ID must be numeric")))
		return
	}
	locationID, err := strconv.Atoi(c.Query("location_id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("location_id query parameter is required")))
		return
	}

	ctx := c.Request.Context()
	onHand, err := h.stock.Balance(ctx, itemID, locationID)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}
	available, err := h.stock.Available(ctx, itemID, locationID)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id":     itemID,
		"location_id": locationID,
		"on_hand":     onHand,
		"available":   available,
	})
}

func (h *Handler) GetMovements(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Item ID must be numeric")))
		return
	}

	var locationID *int
	if raw := c.Query("location_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(apperrors.Payload(apperrors.NewValidation("location_id must be numeric")))
			return
		}
		locationID = &id
	}

	movements, err := h.ledger.QueryByItem(c.Request.Context(), itemID, locationID)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": movements})
}
