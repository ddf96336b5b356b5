package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/infrastructure/permission"
	"github.com/hhgcare/hhg/internal/interfaces/http/handlers"
	"github.com/hhgcare/hhg/internal/shared/authorization"
)

func SetupAdminRoutes(engine *gin.Engine, config *APIRouteConfig, privacyHandler *handlers.PrivacyHandler, auditLogHandler *handlers.AuditLogHandler) {
	perm := config.PermissionMiddleware

	admin := engine.Group("/admin", config.authenticated()...)
	admin.Use(authorization.RequireAdmin())
	{
		admin.POST("/privacy/deletions",
			perm.RequirePermission(permission.ResourcePrivacyDeletion, permission.ActionCreate),
			privacyHandler.DeletePatientData)
		admin.GET("/audit-logs",
			perm.RequirePermission(permission.ResourceAuditLog, permission.ActionRead),
			auditLogHandler.ListAuditLogs)
	}
}
