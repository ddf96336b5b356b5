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
	"github.com/hhgcare/hhg/internal/shared/services/markdown"
)

type GetConsentInfoQuery struct {
	Token string
}

type ConsentInfoResult struct {
	PartnerName         string
	ServiceName         string
	DataDescription     string
	DataDescriptionHTML string
	Status              string
	ExpiresAt           time.Time
}

// GetConsentInfoUseCase serves the patient-facing consent page.
type GetConsentInfoUseCase struct {
	loader   *consentLoader
	markdown markdown.MarkdownService
	logger   logger.Interface
	now      func() time.Time
}

func NewGetConsentInfoUseCase(
	repo consent.Repository,
	auditRepo audit.Repository,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *GetConsentInfoUseCase {
	return &GetConsentInfoUseCase{
		loader:   &consentLoader{repo: repo, auditRepo: auditRepo, logger: logger},
		markdown: markdownService,
		logger:   logger,
		now:      biztime.NowUTC,
	}
}

func (uc *GetConsentInfoUseCase) Execute(ctx context.Context, query GetConsentInfoQuery) (*ConsentInfoResult, error) {
	tok, err := uc.loader.load(ctx, query.Token, uc.now())
	if err != nil {
		return nil, err
	}

	if tok.Status() == vo.StatusExpired {
		return nil, errors.NewGoneError("consent link has expired")
	}

	html, err := uc.markdown.ToHTMLSanitized(tok.DataDescription())
	if err != nil {
		// plain text is still safe to show
		uc.logger.Warnw("failed to render consent description", "error", err, "consent_id", tok.ID())
		html = ""
	}

	return &ConsentInfoResult{
		PartnerName:         tok.PartnerName(),
		ServiceName:         tok.ServiceName(),
		DataDescription:     tok.DataDescription(),
		DataDescriptionHTML: html,
		Status:              tok.Status().String(),
		ExpiresAt:           tok.ExpiresAt(),
	}, nil
}
