package auditlog

import (
	"net/http"
	"strconv"

	"commissary/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *AuditLogRepository
}

func NewHandler(repo *AuditLogRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/audit/:entity_type/:id", h.GetEntityLog)
}

func (h *Handler) GetEntityLog(c *gin.Context) {
	entityID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Entity ID must be numeric")))
		return
	}

	entries, err := h.repo.GetEntityLog(c.Param("entity_type"), entityID)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
