package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ratelimitDomain "github.com/hhgcare/hhg/internal/domain/ratelimit"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
	"github.com/hhgcare/hhg/internal/shared/db"
)

// RateLimitCounterRepository is the relational counter store used when
// ratelimit.store is "database".
type RateLimitCounterRepository struct {
	db *gorm.DB
}

func NewRateLimitCounterRepository(db *gorm.DB) *RateLimitCounterRepository {
	return &RateLimitCounterRepository{db: db}
}

func (r *RateLimitCounterRepository) Get(ctx context.Context, key string) (*ratelimitDomain.Counter, error) {
	var model models.RateLimitCounterModel
	if err := db.GetTxFromContext(ctx, r.db).Where("rate_key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rate limit counter: %w", err)
	}

	return &ratelimitDomain.Counter{
		Key:         model.RateKey,
		Count:       model.RequestCount,
		WindowStart: model.WindowStart.UTC(),
	}, nil
}

// Reset upserts the counter. The window length is not stored; expiry is
// decided by the limiter from window_start.
func (r *RateLimitCounterRepository) Reset(ctx context.Context, key string, windowStart time.Time, _ time.Duration) error {
	now := windowStart.UTC()
	model := &models.RateLimitCounterModel{
		RateKey:      key,
		RequestCount: 1,
		WindowStart:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rate_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"request_count", "window_start", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to reset rate limit counter: %w", err)
	}

	return nil
}

func (r *RateLimitCounterRepository) Increment(ctx context.Context, key string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RateLimitCounterModel{}).
		Where("rate_key = ?", key).
		Updates(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"updated_at":    time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to increment rate limit counter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("rate limit counter %q not found", key)
	}

	return nil
}
