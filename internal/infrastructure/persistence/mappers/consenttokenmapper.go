package mappers

import (
	"github.com/hhgcare/hhg/internal/domain/consent"
	vo "github.com/hhgcare/hhg/internal/domain/consent/valueobjects"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
)

func ConsentTokenToModel(t *consent.Token) *models.ConsentTokenModel {
	return &models.ConsentTokenModel{
		ID:                t.ID(),
		Token:             t.Token(),
		Status:            t.Status().String(),
		ExpiresAt:         t.ExpiresAt(),
		AcceptedAt:        t.AcceptedAt(),
		PatientIP:         t.PatientIP(),
		DeviceFingerprint: t.DeviceFingerprint(),
		PartnerName:       t.PartnerName(),
		ServiceName:       t.ServiceName(),
		DataDescription:   t.DataDescription(),
		PhoneHash:         t.PhoneHash(),
		CreatedAt:         t.CreatedAt(),
		UpdatedAt:         t.UpdatedAt(),
	}
}

func ConsentTokenToDomain(model *models.ConsentTokenModel) (*consent.Token, error) {
	return consent.ReconstructToken(
		model.ID,
		model.Token,
		vo.ConsentStatus(model.Status),
		model.ExpiresAt.UTC(),
		utcPtr(model.AcceptedAt),
		model.PatientIP,
		model.DeviceFingerprint,
		model.PartnerName,
		model.ServiceName,
		model.DataDescription,
		model.PhoneHash,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}
