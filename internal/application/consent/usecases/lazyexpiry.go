package usecases

import (
	"context"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/consent"
	vo "github.com/hhgcare/hhg/internal/domain/consent/valueobjects"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

// consentLoader loads a token and applies lazy expiry. Every read path goes
// through it so no caller ever observes pending past expires_at.
type consentLoader struct {
	repo      consent.Repository
	auditRepo audit.Repository
	logger    logger.Interface
}

func (l *consentLoader) load(ctx context.Context, token string, now time.Time) (*consent.Token, error) {
	if err := utils.ValidateToken(token); err != nil {
		return nil, errors.NewNotFoundError("consent not found")
	}

	tok, err := l.repo.GetByToken(ctx, token)
	if err != nil {
		l.logger.Errorw("failed to load consent token", "error", err)
		return nil, errors.NewServiceUnavailableError("consent store unavailable")
	}
	if tok == nil {
		return nil, errors.NewNotFoundError("consent not found")
	}

	if tok.Status() != vo.StatusPending || consent.EffectiveStatus(tok, now) != vo.StatusExpired {
		return tok, nil
	}

	transitioned, err := l.repo.MarkExpired(ctx, token, now)
	if err != nil {
		l.logger.Errorw("failed to expire consent token", "error", err, "consent_id", tok.ID())
		return nil, errors.NewServiceUnavailableError("consent store unavailable")
	}

	if !transitioned {
		// another request moved the token first
		current, err := l.repo.GetByToken(ctx, token)
		if err != nil {
			l.logger.Errorw("failed to reload consent token", "error", err, "consent_id", tok.ID())
			return nil, errors.NewServiceUnavailableError("consent store unavailable")
		}
		if current == nil {
			return nil, errors.NewNotFoundError("consent not found")
		}
		return current, nil
	}

	if err := tok.Expire(now); err != nil {
		return nil, errors.NewInternalError("failed to expire consent", err.Error())
	}

	l.logger.Infow("consent token expired", "consent_id", tok.ID(), "expires_at", tok.ExpiresAt())
	l.appendExpired(ctx, tok, now)

	return tok, nil
}

// appendExpired records the transition. The status change is already
// committed, so a failed append is logged rather than returned.
func (l *consentLoader) appendExpired(ctx context.Context, tok *consent.Token, now time.Time) {
	entry, err := audit.NewEntry(audit.ActionConsentExpired, audit.ActorSystem, "", now)
	if err != nil {
		l.logger.Errorw("failed to build consent expiry audit entry", "error", err)
		return
	}
	entry.WithTarget(auditTargetConsent, tokenRef(tok.Token())).
		WithMetadata("partner_name", tok.PartnerName()).
		WithMetadata("expires_at", tok.ExpiresAt())

	if err := l.auditRepo.Append(ctx, entry); err != nil {
		l.logger.Errorw("failed to append consent expiry audit entry", "error", err, "consent_id", tok.ID())
	}
}

const auditTargetConsent = "consent_token"

// tokenRef is the part of a token safe to keep in audit records. A full token
// is a bearer credential.
func tokenRef(token string) string {
	const n = 8
	if len(token) <= n {
		return token
	}
	return token[:n]
}
