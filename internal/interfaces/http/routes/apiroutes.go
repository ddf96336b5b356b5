package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/infrastructure/permission"
	"github.com/hhgcare/hhg/internal/interfaces/http/handlers"
	"github.com/hhgcare/hhg/internal/interfaces/http/middleware"
)

// APIRouteConfig is shared by every authenticated route group.
type APIRouteConfig struct {
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimitMiddleware  *middleware.RateLimitMiddleware
	Limit                int
	Window               time.Duration
}

func (c *APIRouteConfig) authenticated() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		c.AuthMiddleware.RequireAuth(),
		c.RateLimitMiddleware.LimitByActor(c.Limit, c.Window),
	}
}

// SetupPartnerRoutes registers the routes partners, staff and admins share.
func SetupPartnerRoutes(engine *gin.Engine, config *APIRouteConfig, consentHandler *handlers.ConsentHandler, bookingHandler *handlers.BookingHandler) {
	perm := config.PermissionMiddleware

	consentRequests := engine.Group("/consent-requests", config.authenticated()...)
	{
		consentRequests.POST("",
			perm.RequirePermission(permission.ResourceConsentRequest, permission.ActionCreate),
			consentHandler.IssueConsent)
	}

	bookings := engine.Group("/bookings", config.authenticated()...)
	{
		bookings.POST("",
			perm.RequirePermission(permission.ResourceBooking, permission.ActionCreate),
			bookingHandler.CreateBooking)
		bookings.GET("/:number",
			perm.RequirePermission(permission.ResourceBooking, permission.ActionRead),
			bookingHandler.GetBooking)
	}
}
