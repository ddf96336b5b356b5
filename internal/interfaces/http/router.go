package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/interfaces/http/middleware"
	"github.com/hhgcare/hhg/internal/interfaces/http/routes"
)

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	container *Container

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware
}

func NewRouter(container *Container) (*Router, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(container.cfg.Server.TrustedProxies); err != nil {
		return nil, err
	}

	s := container.services
	return &Router{
		engine:               engine,
		container:            container,
		authMiddleware:       middleware.NewAuthMiddleware(s.jwtService, container.log.With("component", "auth")),
		permissionMiddleware: middleware.NewPermissionMiddleware(s.enforcer, container.log.With("component", "permission")),
		rateLimitMiddleware:  middleware.NewRateLimitMiddleware(s.rateLimiter, container.log.With("component", "ratelimit")),
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	cfg := r.container.cfg
	h := r.container.handlers

	r.engine.Use(middleware.Recovery(r.container.log))
	r.engine.Use(middleware.Logger(r.container.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupConsentRoutes(r.engine, &routes.ConsentRouteConfig{
		ConsentHandler:      h.consent,
		RateLimitMiddleware: r.rateLimitMiddleware,
		Limit:               cfg.RateLimit.ConsentLimit,
		Window:              cfg.RateLimit.ConsentWindow(),
	})

	api := &routes.APIRouteConfig{
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimitMiddleware:  r.rateLimitMiddleware,
		Limit:                cfg.RateLimit.APILimit,
		Window:               cfg.RateLimit.APIWindow(),
	}
	routes.SetupPartnerRoutes(r.engine, api, h.consent, h.booking)
	routes.SetupAdminRoutes(r.engine, api, h.privacy, h.auditLog)
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
