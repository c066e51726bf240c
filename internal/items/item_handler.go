package items

import (
	"net/http"
	"strconv"

	"commissary/pkg/apperrors"
	"commissary/pkg/auditlog"
	"commissary/pkg/security"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	repo     *ItemRepository
	auditLog *auditlog.Auditlog
}

func NewItemHandler(repo *ItemRepository, a *auditlog.Auditlog) *ItemHandler {
	return &ItemHandler{repo: repo, auditLog: a}
}

func (h *ItemHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/items", h.GetItems)
	router.GET("/items/:id", h.GetItem)
	router.POST("/items", h.CreateItem)
	router.PUT("/items/:id", h.UpdateItem)
	router.DELETE("/items/:id", h.DeleteItem)
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	filter := ItemFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Status:   c.Query("status"),
	}
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	items, total, err := h.repo.GetItems(filter, limit, offset, c.Query("sort"), c.Query("order"))
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"pagination": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Item ID must be numeric")))
		return
	}

	item, err := h.repo.GetItem(id)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}
	if err := req.Validate(false); err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	item, err := h.repo.PersistItem(req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("Item", item.ID, "CREATE", req, security.UserID(c))
	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Item ID must be numeric")))
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}
	// status changes only happen through the archive endpoint
	if _, ok := raw["status"]; ok {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Use DELETE endpoint to archive items")))
		return
	}

	req := ItemRequest{
		Name:          stringField(raw, "name"),
		Description:   stringField(raw, "description"),
		Category:      stringField(raw, "category"),
		UnitOfMeasure: stringField(raw, "unit_of_measure"),
		Type:          stringField(raw, "type"),
	}
	if err := req.Validate(true); err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	item, err := h.repo.UpdateItem(id, req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("Item", id, "UPDATE", req, security.UserID(c))
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Item ID must be numeric")))
		return
	}

	if err := h.repo.ArchiveItem(id); err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("Item", id, "DELETE", gin.H{"status": "inactive"}, security.UserID(c))
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "inactive"})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}
