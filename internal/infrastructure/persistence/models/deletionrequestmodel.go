package models

import (
	"time"

	"github.com/hhgcare/hhg/internal/shared/constants"
)

type DeletionRequestModel struct {
	ID              uint   `gorm:"primaryKey"`
	PhoneHashPrefix string `gorm:"size:16;not null"`
	Status          string `gorm:"size:20;not null"`
	BookingsDeleted int    `gorm:"not null;default:0"`
	RequestedBy     string `gorm:"size:128;not null"`
	CompletedAt     *time.Time
	CreatedAt       time.Time
}

func (DeletionRequestModel) TableName() string {
	return constants.TableDeletionRequests
}
