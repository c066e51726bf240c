package itemtypes

import (
	"net/http"
	"strconv"

	"commissary/pkg/apperrors"
	"commissary/pkg/auditlog"
	"commissary/pkg/security"

	"github.com/gin-gonic/gin"
)

type ItemTypeHandler struct {
	repo     *ItemTypeRepository
	auditLog *auditlog.Auditlog
}

func NewItemTypeHandler(repo *ItemTypeRepository, a *auditlog.Auditlog) *ItemTypeHandler {
	return &ItemTypeHandler{repo: repo, auditLog: a}
}

func (h *ItemTypeHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/item-types", h.GetItemTypes)
	router.GET("/item-types/:id", h.GetItemType)
	router.POST("/item-types", h.CreateItemType)
	router.PATCH("/item-types/:id", h.UpdateItemType)
	router.DELETE("/item-types/:id", h.DeleteItemType)
}

func (h *ItemTypeHandler) GetItemTypes(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	types, total, err := h.repo.GetItemTypes(limit, offset)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": types,
		"pagination": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (h *ItemTypeHandler) GetItemType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Item type ID must be numeric")))
		return
	}

	itemType, err := h.repo.GetItemType(id)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, itemType)
}

func (h *ItemTypeHandler) CreateItemType(c *gin.Context) {
	var req ItemTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}
	if req.Name == "" {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Name is required")))
		return
	}

	itemType, err := h.repo.PersistItemType(req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("ItemType", itemType.ID, "CREATE", req, security.UserID(c))
	c.JSON(http.StatusCreated, itemType)
}

func (h *ItemTypeHandler) UpdateItemType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Item type ID must be numeric")))
		return
	}

	var req ItemTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}

	itemType, err := h.repo.UpdateItemType(id, req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("ItemType", id, "UPDATE", req, security.UserID(c))
	c.JSON(http.StatusOK, itemType)
}

func (h *ItemTypeHandler) DeleteItemType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Item type ID must be numeric")))
		return
	}

	if err := h.repo.ArchiveItemType(id); err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("ItemType", id, "DELETE", gin.H{"status": "inactive"}, security.UserID(c))
	c.Status(http.StatusNoContent)
}
