package usecases

import (
	"context"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/consent"
	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/id"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/services/markdown"
)

type IssueConsentCommand struct {
	PartnerName     string
	ServiceName     string
	DataDescription string
	// PatientPhone is optional; when set the consent is linked to the
	// patient's phone hash so erasure can anonymize it.
	PatientPhone string
	ActorType    audit.ActorType
	ActorID      string
	IPAddress    string
}

type IssueConsentResult struct {
	Token     string
	Status    string
	ExpiresAt time.Time
}

type IssueConsentUseCase struct {
	repo      consent.Repository
	auditRepo audit.Repository
	hasher    privacy.PhoneHasher
	markdown  markdown.MarkdownService
	tokenTTL  time.Duration
	logger    logger.Interface
	now       func() time.Time
	newToken  func() (string, error)
}

func NewIssueConsentUseCase(
	repo consent.Repository,
	auditRepo audit.Repository,
	hasher privacy.PhoneHasher,
	markdownService markdown.MarkdownService,
	tokenTTL time.Duration,
	logger logger.Interface,
) *IssueConsentUseCase {
	return &IssueConsentUseCase{
		repo:      repo,
		auditRepo: auditRepo,
		hasher:    hasher,
		markdown:  markdownService,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       biztime.NowUTC,
		newToken:  id.NewConsentToken,
	}
}

func (uc *IssueConsentUseCase) Execute(ctx context.Context, cmd IssueConsentCommand) (*IssueConsentResult, error) {
	uc.logger.Infow("executing issue consent use case", "partner_name", cmd.PartnerName, "actor_type", cmd.ActorType)

	if uc.tokenTTL <= 0 {
		return nil, errors.NewInternalError("consent token ttl is not configured")
	}

	partnerName := uc.markdown.StripTags(cmd.PartnerName)
	serviceName := uc.markdown.StripTags(cmd.ServiceName)

	var phoneHash *string
	if cmd.PatientPhone != "" {
		hash, err := uc.hasher.Hash(cmd.PatientPhone)
		if err != nil {
			return nil, err
		}
		h := hash.String()
		phoneHash = &h
	}

	token, err := uc.newToken()
	if err != nil {
		uc.logger.Errorw("failed to generate consent token", "error", err)
		return nil, errors.NewInternalError("failed to generate consent token")
	}

	now := uc.now()
	tok, err := consent.NewToken(token, partnerName, serviceName, cmd.DataDescription, phoneHash, now.Add(uc.tokenTTL), now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Create(ctx, tok); err != nil {
		uc.logger.Errorw("failed to save consent token", "error", err)
		return nil, errors.NewServiceUnavailableError("consent store unavailable")
	}

	entry, err := audit.NewEntry(audit.ActionConsentIssued, cmd.ActorType, cmd.ActorID, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	entry.WithTarget(auditTargetConsent, tokenRef(tok.Token())).
		WithIP(cmd.IPAddress).
		WithMetadata("partner_name", tok.PartnerName()).
		WithMetadata("service_name", tok.ServiceName()).
		WithMetadata("linked_to_patient", phoneHash != nil)
	if err := uc.auditRepo.Append(ctx, entry); err != nil {
		uc.logger.Errorw("failed to append consent issued audit entry", "error", err, "consent_id", tok.ID())
	}

	uc.logger.Infow("consent token issued", "consent_id", tok.ID(), "expires_at", tok.ExpiresAt())

	return &IssueConsentResult{
		Token:     tok.Token(),
		Status:    tok.Status().String(),
		ExpiresAt: tok.ExpiresAt(),
	}, nil
}
