package mappers

import (
	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
)

func EncryptionKeyToModel(k *privacy.EncryptionKey) *models.EncryptionKeyModel {
	return &models.EncryptionKeyModel{
		ID:         k.ID(),
		PhoneHash:  k.PhoneHash().String(),
		WrappedKey: k.WrappedKey(),
		KeyVersion: k.KeyVersion(),
		RevokedAt:  k.RevokedAt(),
		CreatedAt:  k.CreatedAt(),
		UpdatedAt:  k.UpdatedAt(),
	}
}

func EncryptionKeyToDomain(model *models.EncryptionKeyModel) (*privacy.EncryptionKey, error) {
	return privacy.ReconstructEncryptionKey(
		model.ID,
		privacy.PhoneHash(model.PhoneHash),
		model.WrappedKey,
		model.KeyVersion,
		utcPtr(model.RevokedAt),
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func DeletionRequestToModel(d *privacy.DeletionRequest) *models.DeletionRequestModel {
	return &models.DeletionRequestModel{
		ID:              d.ID(),
		PhoneHashPrefix: d.PhoneHashPrefix(),
		Status:          string(d.Status()),
		BookingsDeleted: d.BookingsDeleted(),
		RequestedBy:     d.RequestedBy(),
		CompletedAt:     d.CompletedAt(),
		CreatedAt:       d.CreatedAt(),
	}
}
