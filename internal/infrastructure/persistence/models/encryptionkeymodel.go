package models

import (
	"time"

	"github.com/hhgcare/hhg/internal/shared/constants"
)

type EncryptionKeyModel struct {
	ID         uint   `gorm:"primaryKey"`
	PhoneHash  string `gorm:"size:64;not null;uniqueIndex:uk_encryption_key_phone_hash"`
	WrappedKey []byte `gorm:"type:blob"`
	KeyVersion int    `gorm:"not null;default:1"`
	RevokedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EncryptionKeyModel) TableName() string {
	return constants.TableEncryptionKeys
}
