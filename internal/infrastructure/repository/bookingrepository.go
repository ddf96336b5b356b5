package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/domain/booking"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/mappers"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
	"github.com/hhgcare/hhg/internal/shared/db"
)

// likeEscape is accepted by both MySQL and SQLite in an ESCAPE clause.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	model := mappers.BookingToModel(b)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	b.SetID(model.ID)
	return nil
}

func (r *BookingRepository) GetByNumber(ctx context.Context, number string) (*booking.Booking, error) {
	var model models.BookingModel
	if err := db.GetTxFromContext(ctx, r.db).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking by number: %w", err)
	}

	return mappers.BookingToDomain(&model)
}

// ListNumbersWithPrefix has no NotDeleted scope: an erased booking still
// owns its number.
func (r *BookingRepository) ListNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BookingModel{}).
		Where("booking_number LIKE ? ESCAPE '"+likeEscape+"'", likeReplacer.Replace(prefix)+"%").
		Pluck("booking_number", &numbers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list booking numbers: %w", err)
	}

	return numbers, nil
}

func (r *BookingRepository) FindActiveByPhoneHash(ctx context.Context, phoneHash string) ([]*booking.Booking, error) {
	var bookingModels []models.BookingModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NotDeleted()).
		Where("phone_hash = ?", phoneHash).
		Order("id ASC").
		Find(&bookingModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by phone hash: %w", err)
	}

	bookings := make([]*booking.Booking, 0, len(bookingModels))
	for i := range bookingModels {
		b, err := mappers.BookingToDomain(&bookingModels[i])
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}

func (r *BookingRepository) SoftDeleteByPhoneHash(ctx context.Context, phoneHash string, now time.Time) (int64, error) {
	at := now.UTC()
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.BookingModel{}).
		Scopes(db.NotDeleted()).
		Where("phone_hash = ?", phoneHash).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
			"updated_at": at,
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to soft delete bookings: %w", result.Error)
	}

	return result.RowsAffected, nil
}
