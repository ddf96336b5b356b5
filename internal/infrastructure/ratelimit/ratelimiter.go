package ratelimit

import (
	"context"
	"time"

	ratelimitDomain "github.com/hhgcare/hhg/internal/domain/ratelimit"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

// RateLimiter answers allow/deny for a key under a fixed window.
type RateLimiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) (*ratelimitDomain.Result, error)
}

// FixedWindowLimiter counts requests in windows aligned to the first request
// seen for a key. The read and the write-back are separate round trips, so
// concurrent callers on one key may over-count; they never under-count.
type FixedWindowLimiter struct {
	store  ratelimitDomain.CounterRepository
	logger logger.Interface
	now    func() time.Time
}

func NewFixedWindowLimiter(store ratelimitDomain.CounterRepository, logger logger.Interface) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		store:  store,
		logger: logger,
		now:    biztime.NowUTC,
	}
}

func (l *FixedWindowLimiter) Check(ctx context.Context, key string, limit int, window time.Duration) (*ratelimitDomain.Result, error) {
	if key == "" {
		return nil, errors.NewValidationError("rate limit key is required")
	}
	if limit <= 0 {
		return nil, errors.NewValidationError("rate limit must be positive")
	}
	if window <= 0 {
		return nil, errors.NewValidationError("rate limit window must be positive")
	}

	now := l.now()

	counter, err := l.store.Get(ctx, key)
	if err != nil {
		l.logger.Errorw("failed to read rate limit counter", "key", key, "error", err)
		return nil, errors.NewServiceUnavailableError("rate limit store unavailable")
	}

	decision := ratelimitDomain.Evaluate(counter, limit, window, now)

	switch decision.Action {
	case ratelimitDomain.ActionReset:
		err = l.store.Reset(ctx, key, now, window)
	case ratelimitDomain.ActionIncrement:
		err = l.store.Increment(ctx, key)
	case ratelimitDomain.ActionDeny:
		l.logger.Debugw("rate limit exceeded", "key", key, "limit", limit, "reset_at", decision.ResetAt)
	}
	if err != nil {
		l.logger.Errorw("failed to update rate limit counter",
			"key", key,
			"action", decision.Action.String(),
			"error", err,
		)
		return nil, errors.NewServiceUnavailableError("rate limit store unavailable")
	}

	result := decision.Result
	return &result, nil
}
