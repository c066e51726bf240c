package locations

import (
	"net/http"
	"strconv"

	"commissary/pkg/apperrors"
	"commissary/pkg/auditlog"
	"commissary/pkg/models"
	"commissary/pkg/security"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	repo     *LocationRepository
	auditLog *auditlog.Auditlog
}

func NewLocationHandler(repo *LocationRepository, a *auditlog.Auditlog) *LocationHandler {
	return &LocationHandler{repo: repo, auditLog: a}
}

func (h *LocationHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/locations", h.GetLocations)
	router.GET("/locations/:id", h.GetLocation)
	router.POST("/locations", h.CreateLocation)
	router.PATCH("/locations/:id", h.UpdateLocation)
	router.DELETE("/locations/:id", h.DeleteLocation)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	locations, total, err := h.repo.GetLocations(c.Query("name"), limit, offset)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": locations,
		"pagination": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Location ID must be numeric")))
		return
	}

	location, err := h.repo.GetLocation(id)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, location)
}

type createLocationRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Name is required")))
		return
	}

	location := models.Location{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := h.repo.PersistLocation(&location); err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("Location", location.ID, "CREATE", req, security.UserID(c))
	c.JSON(http.StatusCreated, location)
}

// UpdateLocation applies a versioned update. A request carrying `version`
// enforces the optimistic check; omitting it means last write wins.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Location ID must be numeric")))
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Invalid request payload")))
		return
	}

	location, err := h.repo.UpdateLocation(id, req)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("Location", id, "UPDATE", req, security.UserID(c))
	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("Location ID must be numeric")))
		return
	}

	if err := h.repo.ArchiveLocation(id); err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	h.auditLog.Log("Location", id, "DELETE", gin.H{"status": "inactive"}, security.UserID(c))
	c.Status(http.StatusNoContent)
}
