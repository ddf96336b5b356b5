package models

import (
	"time"

	"github.com/hhgcare/hhg/internal/shared/constants"
)

// BookingModel uses an is_deleted flag instead of gorm.DeletedAt so that
// default queries still see erased rows when checking number uniqueness.
type BookingModel struct {
	ID                uint      `gorm:"primaryKey"`
	BookingNumber     string    `gorm:"size:32;not null;uniqueIndex:uk_booking_number"`
	PartnerName       string    `gorm:"size:200;not null"`
	ServiceName       string    `gorm:"size:200;not null"`
	PhoneHash         string    `gorm:"size:64;not null;index:idx_booking_phone_hash"`
	PatientNameCipher []byte    `gorm:"type:blob"`
	PhoneCipher       []byte    `gorm:"type:blob;not null"`
	AppointmentAt     time.Time `gorm:"not null"`
	IsDeleted         bool      `gorm:"not null;default:false"`
	DeletedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (BookingModel) TableName() string {
	return constants.TableBookings
}
