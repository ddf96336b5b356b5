package models

import (
	"time"

	"github.com/hhgcare/hhg/internal/shared/constants"
)

type ConsentTokenModel struct {
	ID                uint      `gorm:"primaryKey"`
	Token             string    `gorm:"size:64;not null;uniqueIndex:uk_consent_token"`
	Status            string    `gorm:"size:20;not null;index:idx_consent_status"`
	ExpiresAt         time.Time `gorm:"not null"`
	AcceptedAt        *time.Time
	PatientIP         *string `gorm:"column:patient_ip;size:64"`
	DeviceFingerprint *string `gorm:"size:255"`
	PartnerName       string  `gorm:"size:200;not null"`
	ServiceName       string  `gorm:"size:200;not null"`
	DataDescription   string  `gorm:"type:text"`
	PhoneHash         *string `gorm:"size:64;index:idx_consent_phone_hash"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ConsentTokenModel) TableName() string {
	return constants.TableConsentTokens
}
