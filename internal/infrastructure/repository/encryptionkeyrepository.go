package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/mappers"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
	"github.com/hhgcare/hhg/internal/shared/db"
)

type EncryptionKeyRepository struct {
	db *gorm.DB
}

func NewEncryptionKeyRepository(db *gorm.DB) *EncryptionKeyRepository {
	return &EncryptionKeyRepository{db: db}
}

func (r *EncryptionKeyRepository) GetByPhoneHash(ctx context.Context, hash privacy.PhoneHash) (*privacy.EncryptionKey, error) {
	var model models.EncryptionKeyModel
	if err := db.GetTxFromContext(ctx, r.db).Where("phone_hash = ?", hash.String()).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get encryption key: %w", err)
	}

	return mappers.EncryptionKeyToDomain(&model)
}

func (r *EncryptionKeyRepository) Create(ctx context.Context, key *privacy.EncryptionKey) error {
	model := mappers.EncryptionKeyToModel(key)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create encryption key: %w", err)
	}

	key.SetID(model.ID)
	return nil
}

func (r *EncryptionKeyRepository) Update(ctx context.Context, key *privacy.EncryptionKey) error {
	model := mappers.EncryptionKeyToModel(key)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.EncryptionKeyModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"wrapped_key": model.WrappedKey,
			"key_version": model.KeyVersion,
			"revoked_at":  model.RevokedAt,
			"updated_at":  model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update encryption key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("encryption key %d not found", model.ID)
	}

	return nil
}

// Revoke only touches an active key; a second call changes nothing.
func (r *EncryptionKeyRepository) Revoke(ctx context.Context, hash privacy.PhoneHash, now time.Time) (bool, error) {
	at := now.UTC()
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.EncryptionKeyModel{}).
		Where("phone_hash = ? AND revoked_at IS NULL", hash.String()).
		Updates(map[string]interface{}{
			"wrapped_key": gorm.Expr("NULL"),
			"revoked_at":  at,
			"updated_at":  at,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to revoke encryption key: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}
