package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/interfaces/http/handlers"
	"github.com/hhgcare/hhg/internal/interfaces/http/middleware"
	"github.com/hhgcare/hhg/internal/shared/constants"
)

type ConsentRouteConfig struct {
	ConsentHandler      *handlers.ConsentHandler
	RateLimitMiddleware *middleware.RateLimitMiddleware
	Limit               int
	Window              time.Duration
}

// SetupConsentRoutes registers the public, patient-facing consent pages.
// They are unauthenticated, so every request is rate limited per client IP.
func SetupConsentRoutes(engine *gin.Engine, config *ConsentRouteConfig) {
	consent := engine.Group("/consent")
	consent.Use(
		middleware.SecurityHeaders(),
		config.RateLimitMiddleware.LimitByIP(constants.RateLimitKeyConsent, config.Limit, config.Window),
	)
	{
		consent.GET("/:token/status", config.ConsentHandler.GetConsentStatus)
		consent.POST("/:token/accept", config.ConsentHandler.AcceptConsent)
		consent.GET("/:token", config.ConsentHandler.GetConsentInfo)
	}
}
