// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"gorm.io/gorm"
)

// NotDeleted filters out soft-deleted rows. Soft deletion is recorded with
// an is_deleted flag rather than gorm's DeletedAt so that deleted rows stay
// visible to uniqueness checks such as booking number allocation.
//
//	db.Model(&BookingModel{}).Scopes(db.NotDeleted()).Where("phone_hash = ?", h).Find(&rows)
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_deleted = ?", false)
	}
}

// Paginate applies offset/limit for 1-based page numbers.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
