package ratelimit

import (
	"context"
	"time"
)

// CounterRepository persists fixed-window counters keyed by an opaque string.
type CounterRepository interface {
	// Get returns nil, nil when no counter exists for key.
	Get(ctx context.Context, key string) (*Counter, error)
	// Reset creates or overwrites the counter with count=1 starting at windowStart.
	Reset(ctx context.Context, key string, windowStart time.Time, window time.Duration) error
	// Increment adds one to the stored count.
	Increment(ctx context.Context, key string) error
}
