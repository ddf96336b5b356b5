package booking

import (
	"context"
	"time"
)

// NumberLookup is the read side the number generator needs.
type NumberLookup interface {
	// ListNumbersWithPrefix returns every booking number starting with
	// prefix, soft-deleted rows included.
	ListNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)
}

type Repository interface {
	NumberLookup
	// Create fails with a duplicate-key error when the number is taken.
	Create(ctx context.Context, booking *Booking) error
	// GetByNumber returns nil, nil when no booking has that number.
	GetByNumber(ctx context.Context, number string) (*Booking, error)
	FindActiveByPhoneHash(ctx context.Context, phoneHash string) ([]*Booking, error)
	// SoftDeleteByPhoneHash flags every active booking for the hash and
	// returns how many rows changed.
	SoftDeleteByPhoneHash(ctx context.Context, phoneHash string, now time.Time) (int64, error)
}
