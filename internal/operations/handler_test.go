package operations

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"commissary/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(f.service, f.service.stock, f.store).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestReceiveEndpoint(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.anyAudit()
	router := newTestRouter(f)

	w := doJSON(t, router, http.MethodPost, "/inventory/receive", gin.H{
		"item_id": 1, "quantity": "25.5", "location_id": 10, "reference_number": "PO-77",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var movement models.Movement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movement))
	assert.Equal(t, models.MovementReceipt, movement.Type)
	assert.Equal(t, "25.5", movement.Quantity.String())
}

func TestConsumeEndpointInsufficientStock(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.anyAudit()
	router := newTestRouter(f)

	w := doJSON(t, router, http.MethodPost, "/inventory/consume", gin.H{
		"item_id": 1, "quantity": "5", "location_id": 10,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, w))
}

func TestTransferEndpointValidation(t *testing.T) {
	f := newFixture()
	router := newTestRouter(f)

	w := doJSON(t, router, http.MethodPost, "/inventory/transfer", gin.H{
		"item_id": 1, "quantity": "5", "from_location_id": 10, "to_location_id": 10,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestBalanceEndpoint(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.anyAudit()
	router := newTestRouter(f)

	w := doJSON(t, router, http.MethodPost, "/inventory/receive", gin.H{
		"item_id": 1, "quantity": "40", "location_id": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/inventory/1/balance?location_id=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ItemID     int    `json:"item_id"`
		LocationID int    `json:"location_id"`
		OnHand     string `json:"on_hand"`
		Available  string `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.ItemID)
	assert.Equal(t, 10, body.LocationID)
	assert.Equal(t, "40", body.OnHand)
	assert.Equal(t, "40", body.Available)
}

func TestBalanceEndpointRequiresLocation(t *testing.T) {
	f := newFixture()
	router := newTestRouter(f)

	w := doJSON(t, router, http.MethodGet, "/inventory/1/balance", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestMovementsEndpoint(t *testing.T) {
	f := newFixture()
	f.knownItem(1)
	f.knownLocation(10)
	f.knownLocation(20)
	f.anyAudit()
	router := newTestRouter(f)

	doJSON(t, router, http.MethodPost, "/inventory/receive", gin.H{
		"item_id": 1, "quantity": "40", "location_id": 10,
	})
	doJSON(t, router, http.MethodPost, "/inventory/transfer", gin.H{
		"item_id": 1, "quantity": "15", "from_location_id": 10, "to_location_id": 20,
	})

	w := doJSON(t, router, http.MethodGet, "/inventory/1/movements", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.Movement `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, models.MovementReceipt, body.Data[0].Type)
	assert.Equal(t, models.MovementTransfer, body.Data[1].Type)

	w = doJSON(t, router, http.MethodGet, "/inventory/1/movements?location_id=20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, models.MovementTransfer, body.Data[0].Type)
}
