package models

import (
	"time"

	"github.com/hhgcare/hhg/internal/shared/constants"
)

// RateLimitCounterModel is one fixed-window counter. Column names avoid the
// MySQL reserved words key and count.
type RateLimitCounterModel struct {
	ID           uint      `gorm:"primaryKey"`
	RateKey      string    `gorm:"column:rate_key;size:191;not null;uniqueIndex:uk_rate_key"`
	RequestCount int       `gorm:"column:request_count;not null;default:0"`
	WindowStart  time.Time `gorm:"column:window_start;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (RateLimitCounterModel) TableName() string {
	return constants.TableRateLimitCounters
}
