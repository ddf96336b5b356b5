package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/domain/consent"
	vo "github.com/hhgcare/hhg/internal/domain/consent/valueobjects"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/mappers"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
	"github.com/hhgcare/hhg/internal/shared/constants"
	"github.com/hhgcare/hhg/internal/shared/db"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

type ConsentTokenRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewConsentTokenRepository(db *gorm.DB, logger logger.Interface) consent.Repository {
	return &ConsentTokenRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *ConsentTokenRepositoryImpl) Create(ctx context.Context, token *consent.Token) error {
	model := mappers.ConsentTokenToModel(token)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create consent token", "error", err, "partner_name", token.PartnerName())
		return fmt.Errorf("failed to create consent token: %w", err)
	}

	token.SetID(model.ID)
	return nil
}

func (r *ConsentTokenRepositoryImpl) GetByToken(ctx context.Context, token string) (*consent.Token, error) {
	var model models.ConsentTokenModel
	if err := db.GetTxFromContext(ctx, r.db).Where("token = ?", token).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get consent token", "error", err)
		return nil, fmt.Errorf("failed to get consent token: %w", err)
	}

	return mappers.ConsentTokenToDomain(&model)
}

func (r *ConsentTokenRepositoryImpl) MarkExpired(ctx context.Context, token string, now time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConsentTokenModel{}).
		Where("token = ? AND status = ?", token, vo.StatusPending.String()).
		Updates(map[string]interface{}{
			"status":     vo.StatusExpired.String(),
			"updated_at": now.UTC(),
		})

	if result.Error != nil {
		r.logger.Errorw("failed to expire consent token", "error", result.Error)
		return false, fmt.Errorf("failed to expire consent token: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *ConsentTokenRepositoryImpl) MarkAccepted(ctx context.Context, token string, acceptedAt time.Time, patientIP, deviceFingerprint string) (bool, error) {
	at := acceptedAt.UTC()
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConsentTokenModel{}).
		Where("token = ? AND status = ? AND expires_at >= ?", token, vo.StatusPending.String(), at).
		Updates(map[string]interface{}{
			"status":             vo.StatusAccepted.String(),
			"accepted_at":        at,
			"patient_ip":         nullableString(patientIP),
			"device_fingerprint": nullableString(deviceFingerprint),
			"updated_at":         at,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to accept consent token", "error", result.Error)
		return false, fmt.Errorf("failed to accept consent token: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *ConsentTokenRepositoryImpl) AnonymizeByPhoneHash(ctx context.Context, phoneHash string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConsentTokenModel{}).
		Where("phone_hash = ?", phoneHash).
		Updates(map[string]interface{}{
			"phone_hash": constants.AnonymizedValue,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to anonymize consent tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// nullableString stores an absent value as NULL, matching the domain's nil.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
