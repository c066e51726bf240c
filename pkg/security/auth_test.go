package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"commissary/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	user := &models.User{PasswordHash: hash}
	assert.NoError(t, AuthenticateUser(user, "admin123"))
	assert.Error(t, AuthenticateUser(user, "wrong"))
}

func TestJWTMiddlewareAcceptsIssuedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, 7, "admin", "admin")
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTMiddleware(secret))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 7}`, w.Body.String())
}

func TestJWTMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTMiddleware([]byte("test-secret")))
	router.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	otherToken, err := GenerateJWT([]byte("other-secret"), 7, "admin", "admin")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserIDOutsideAuthenticatedRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, UserID(c))
}
