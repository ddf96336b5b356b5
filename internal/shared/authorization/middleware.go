package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/shared/constants"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

// RequireAdmin rejects any caller whose role is not admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !userRole.IsAdmin() {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanAccessPartnerResource reports whether a caller may read a resource that
// belongs to partnerName. Staff and admins see every partner.
func CanAccessPartnerResource(role UserRole, callerPartner, partnerName string) bool {
	if role == RoleAdmin || role == RoleStaff {
		return true
	}
	return callerPartner != "" && callerPartner == partnerName
}
