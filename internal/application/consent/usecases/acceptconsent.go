package usecases

import (
	"context"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/consent"
	vo "github.com/hhgcare/hhg/internal/domain/consent/valueobjects"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

const maxDeviceFingerprintLength = 255

type AcceptConsentCommand struct {
	Token             string
	PatientIP         string
	DeviceFingerprint string
}

type AcceptConsentResult struct {
	Status     string
	AcceptedAt time.Time
}

type AcceptConsentUseCase struct {
	loader    *consentLoader
	repo      consent.Repository
	auditRepo audit.Repository
	logger    logger.Interface
	now       func() time.Time
}

func NewAcceptConsentUseCase(
	repo consent.Repository,
	auditRepo audit.Repository,
	logger logger.Interface,
) *AcceptConsentUseCase {
	return &AcceptConsentUseCase{
		loader:    &consentLoader{repo: repo, auditRepo: auditRepo, logger: logger},
		repo:      repo,
		auditRepo: auditRepo,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *AcceptConsentUseCase) Execute(ctx context.Context, cmd AcceptConsentCommand) (*AcceptConsentResult, error) {
	if len(cmd.DeviceFingerprint) > maxDeviceFingerprintLength {
		return nil, errors.NewValidationError("device fingerprint is too long")
	}

	now := uc.now()
	tok, err := uc.loader.load(ctx, cmd.Token, now)
	if err != nil {
		return nil, err
	}

	if err := rejectNonPending(tok.Status()); err != nil {
		return nil, err
	}

	accepted, err := uc.repo.MarkAccepted(ctx, tok.Token(), now, cmd.PatientIP, cmd.DeviceFingerprint)
	if err != nil {
		uc.logger.Errorw("failed to accept consent token", "error", err, "consent_id", tok.ID())
		return nil, errors.NewServiceUnavailableError("consent store unavailable")
	}
	if !accepted {
		// lost a race with another accept or with expiry
		current, err := uc.loader.load(ctx, cmd.Token, now)
		if err != nil {
			return nil, err
		}
		if err := rejectNonPending(current.Status()); err != nil {
			return nil, err
		}
		return nil, errors.NewConflictError("consent could not be accepted")
	}

	if err := tok.Accept(cmd.PatientIP, cmd.DeviceFingerprint, now); err != nil {
		return nil, errors.NewInternalError("failed to accept consent", err.Error())
	}

	entry, err := audit.NewEntry(audit.ActionConsentAccepted, audit.ActorPatient, "", now)
	if err == nil {
		entry.WithTarget(auditTargetConsent, tokenRef(tok.Token())).
			WithIP(cmd.PatientIP).
			WithMetadata("partner_name", tok.PartnerName())
		err = uc.auditRepo.Append(ctx, entry)
	}
	if err != nil {
		uc.logger.Errorw("failed to append consent accepted audit entry", "error", err, "consent_id", tok.ID())
	}

	uc.logger.Infow("consent token accepted", "consent_id", tok.ID())

	return &AcceptConsentResult{
		Status:     tok.Status().String(),
		AcceptedAt: now,
	}, nil
}

func rejectNonPending(status vo.ConsentStatus) error {
	switch status {
	case vo.StatusPending:
		return nil
	case vo.StatusExpired:
		return errors.NewGoneError("consent link has expired")
	case vo.StatusAccepted:
		return errors.NewConflictError("consent has already been accepted")
	default:
		return errors.NewInternalError("unknown consent status")
	}
}
