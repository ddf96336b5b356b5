package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/shared/authorization"
	"github.com/hhgcare/hhg/internal/shared/constants"
)

// actor is the authenticated caller as recorded in audit entries.
type actor struct {
	ID          string
	Role        authorization.UserRole
	Type        audit.ActorType
	PartnerName string
	IP          string
}

func actorFromContext(c *gin.Context) actor {
	role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))

	var actorType audit.ActorType
	switch role {
	case authorization.RoleAdmin:
		actorType = audit.ActorAdmin
	case authorization.RoleStaff:
		actorType = audit.ActorStaff
	default:
		actorType = audit.ActorPartner
	}

	return actor{
		ID:          c.GetString(constants.ContextKeyUserID),
		Role:        role,
		Type:        actorType,
		PartnerName: c.GetString(constants.ContextKeyPartner),
		IP:          c.ClientIP(),
	}
}

func (a actor) isPartner() bool {
	return a.Role == authorization.RolePartner
}
