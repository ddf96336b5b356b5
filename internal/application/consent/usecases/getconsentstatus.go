package usecases

import (
	"context"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/consent"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

type GetConsentStatusQuery struct {
	Token string
}

type ConsentStatusResult struct {
	Status            string
	AcceptedAt        *time.Time
	PatientIP         *string
	DeviceFingerprint *string
}

// GetConsentStatusUseCase reports the lifecycle state. Unlike
// GetConsentInfoUseCase an expired token is a normal result, not Gone.
type GetConsentStatusUseCase struct {
	loader *consentLoader
	now    func() time.Time
}

func NewGetConsentStatusUseCase(
	repo consent.Repository,
	auditRepo audit.Repository,
	logger logger.Interface,
) *GetConsentStatusUseCase {
	return &GetConsentStatusUseCase{
		loader: &consentLoader{repo: repo, auditRepo: auditRepo, logger: logger},
		now:    biztime.NowUTC,
	}
}

func (uc *GetConsentStatusUseCase) Execute(ctx context.Context, query GetConsentStatusQuery) (*ConsentStatusResult, error) {
	tok, err := uc.loader.load(ctx, query.Token, uc.now())
	if err != nil {
		return nil, err
	}

	return &ConsentStatusResult{
		Status:            tok.Status().String(),
		AcceptedAt:        tok.AcceptedAt(),
		PatientIP:         tok.PatientIP(),
		DeviceFingerprint: tok.DeviceFingerprint(),
	}, nil
}
