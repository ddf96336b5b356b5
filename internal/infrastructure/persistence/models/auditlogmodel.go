package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/hhgcare/hhg/internal/shared/constants"
)

// AuditLogModel is append-only. The composite index serves the admin listing
// filtered by action and actor type over a time range.
type AuditLogModel struct {
	ID         uint           `gorm:"primaryKey"`
	Action     string         `gorm:"size:64;not null;index:idx_audit_action_actor_created,priority:1"`
	ActorType  string         `gorm:"size:20;not null;index:idx_audit_action_actor_created,priority:2"`
	ActorID    string         `gorm:"size:128"`
	TargetType string         `gorm:"size:64"`
	TargetID   string         `gorm:"size:128"`
	IPAddress  string         `gorm:"column:ip_address;size:64"`
	Metadata   datatypes.JSON `gorm:"type:json"`
	CreatedAt  time.Time      `gorm:"not null;index:idx_audit_action_actor_created,priority:3"`
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
