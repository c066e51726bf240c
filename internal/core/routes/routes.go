package routes

import (
	"time"

	"commissary/internal/core/container"
	"commissary/internal/middleware"
	"commissary/internal/ratelimit"
	"commissary/pkg/security"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts endpoints that do not require a token. Login
// sits behind the rate limiter.
func RegisterPublicRoutes(router *gin.Engine, c *container.Container, limiter *ratelimit.Limiter) {
	login := router.Group("/api")
	login.Use(ratelimit.Middleware(limiter))
	c.LoginHandler.RegisterRoutes(login)
}

// RegisterProtectedRoutes mounts everything stock-touching behind JWT auth.
func RegisterProtectedRoutes(router *gin.Engine, c *container.Container, jwtSecret []byte) {
	protected := router.Group("/api")
	protected.Use(security.JWTMiddleware(jwtSecret))

	c.OperationsHandler.RegisterRoutes(protected)
	c.ReservationHandler.RegisterRoutes(protected)
	c.ItemHandler.RegisterRoutes(protected)
	c.ItemTypeHandler.RegisterRoutes(protected)
	c.LocationHandler.RegisterRoutes(protected)
	c.ReportHandler.RegisterRoutes(protected)
	c.AuditLogHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckHandler())
}

// NewLoginLimiter allows 10 attempts per minute per client address.
func NewLoginLimiter() *ratelimit.Limiter {
	return ratelimit.NewLimiter(10, time.Minute)
}
