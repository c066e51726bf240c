package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAllowWithinLimit(t *testing.T) {
	limiter := NewLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"))
	}
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Another client has its own window.
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestWindowSlides(t *testing.T) {
	limiter := NewLimiter(2, 50*time.Millisecond)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.Allow("10.0.0.1"))
}

func TestRemaining(t *testing.T) {
	limiter := NewLimiter(5, time.Minute)

	assert.Equal(t, 5, limiter.Remaining("10.0.0.1"))
	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")
	assert.Equal(t, 3, limiter.Remaining("10.0.0.1"))
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewLimiter(1, time.Minute)

	router := gin.New()
	router.Use(Middleware(limiter))
	router.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}
