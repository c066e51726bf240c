package reports

import (
	"net/http"
	"strconv"
	"time"

	"commissary/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	repo *ReportRepository
}

func NewReportHandler(repo *ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

func (h *ReportHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/reports/inventory/on-hand", h.GetOnHand)
	router.GET("/reports/inventory/movements", h.GetMovements)
}

func (h *ReportHandler) GetOnHand(c *gin.Context) {
	var locationID *int
	if raw := c.Query("location_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(apperrors.Payload(apperrors.NewValidation("location_id must be numeric")))
			return
		}
		locationID = &id
	}

	rows, err := h.repo.GetOnHand(locationID)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": time.Now().UTC(),
		"data":         rows,
	})
}

// GetMovements requires an explicit date range. An open-ended ledger scan is
// never served.
func (h *ReportHandler) GetMovements(c *gin.Context) {
	start, err := parseDate(c.Query("start_date"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("start_date is required (YYYY-MM-DD)")))
		return
	}
	end, err := parseDate(c.Query("end_date"))
	if err != nil {
		c.JSON(apperrors.Payload(apperrors.NewValidation("end_date is required (YYYY-MM-DD)")))
		return
	}
	if end.Before(start) {
		c.JSON(apperrors.Payload(apperrors.NewValidation("end_date must not precede start_date")))
		return
	}

	var itemID *int
	if raw := c.Query("item_id"); raw != "" {
		id, convErr := strconv.Atoi(raw)
		if convErr != nil {
			c.JSON(apperrors.Payload(apperrors.NewValidation("item_id must be numeric")))
			return
		}
		itemID = &id
	}

	// The range is inclusive of the whole end day.
	rows, err := h.repo.GetMovements(start, end.Add(24*time.Hour-time.Nanosecond), itemID)
	if err != nil {
		c.JSON(apperrors.Payload(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
		"data":       rows,
	})
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
