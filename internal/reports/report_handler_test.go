package reports

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newReportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// The repository is never reached by the validation cases below.
	NewReportHandler(&ReportRepository{}).RegisterRoutes(router)
	return router
}

func TestMovementsReportRequiresDateRange(t *testing.T) {
	router := newReportRouter()

	cases := []string{
		"/reports/inventory/movements",
		"/reports/inventory/movements?start_date=2026-01-01",
		"/reports/inventory/movements?end_date=2026-01-31",
		"/reports/inventory/movements?start_date=01/01/2026&end_date=2026-01-31",
	}
	for _, path := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR", path)
	}
}

func TestMovementsReportRejectsInvertedRange(t *testing.T) {
	router := newReportRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/reports/inventory/movements?start_date=2026-02-01&end_date=2026-01-01", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOnHandReportRejectsBadLocation(t *testing.T) {
	router := newReportRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/reports/inventory/on-hand?location_id=warehouse", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
