package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/booking"
	"github.com/hhgcare/hhg/internal/domain/consent"
	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

// TransactionRunner is satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type DeletePatientDataCommand struct {
	RawPhone    string
	RequestedBy string
	ActorType   audit.ActorType
	IPAddress   string
}

type DeletePatientDataResult struct {
	Found        bool
	DeletedCount int
}

// DeletePatientDataUseCase erases a patient by destroying their data key and
// then flagging every record that referenced it.
type DeletePatientDataUseCase struct {
	txManager    TransactionRunner
	hasher       privacy.PhoneHasher
	vault        privacy.KeyVault
	bookingRepo  booking.Repository
	consentRepo  consent.Repository
	deletionRepo privacy.DeletionRequestRepository
	auditRepo    audit.Repository
	logger       logger.Interface
	now          func() time.Time
}

func NewDeletePatientDataUseCase(
	txManager TransactionRunner,
	hasher privacy.PhoneHasher,
	vault privacy.KeyVault,
	bookingRepo booking.Repository,
	consentRepo consent.Repository,
	deletionRepo privacy.DeletionRequestRepository,
	auditRepo audit.Repository,
	logger logger.Interface,
) *DeletePatientDataUseCase {
	return &DeletePatientDataUseCase{
		txManager:    txManager,
		hasher:       hasher,
		vault:        vault,
		bookingRepo:  bookingRepo,
		consentRepo:  consentRepo,
		deletionRepo: deletionRepo,
		auditRepo:    auditRepo,
		logger:       logger,
		now:          biztime.NowUTC,
	}
}

func (uc *DeletePatientDataUseCase) Execute(ctx context.Context, cmd DeletePatientDataCommand) (*DeletePatientDataResult, error) {
	if cmd.RequestedBy == "" {
		return nil, errors.NewValidationError("requester is required")
	}
	if !cmd.ActorType.IsValid() {
		return nil, errors.NewValidationError("invalid actor type")
	}

	hash, err := uc.hasher.Hash(cmd.RawPhone)
	if err != nil {
		return nil, err
	}
	hashPrefix := hash.AuditPrefix()

	active, err := uc.bookingRepo.FindActiveByPhoneHash(ctx, hash.String())
	if err != nil {
		uc.logger.Errorw("failed to look up bookings for deletion", "error", err, "phone_hash_prefix", hashPrefix)
		return nil, errors.NewServiceUnavailableError("booking store unavailable")
	}
	if len(active) == 0 {
		uc.logger.Infow("no active bookings for deletion request", "phone_hash_prefix", hashPrefix)
		return &DeletePatientDataResult{Found: false, DeletedCount: 0}, nil
	}

	uc.logger.Infow("starting patient data deletion",
		"phone_hash_prefix", hashPrefix,
		"active_bookings", len(active),
		"requested_by", cmd.RequestedBy,
	)

	// Revocation commits on its own. Once it has, the records below can only
	// be marked deleted, never left decryptable.
	var revoked bool
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		revoked, err = uc.vault.Revoke(txCtx, hash)
		return err
	})
	if err != nil {
		uc.logger.Errorw("patient data deletion aborted before key revocation",
			"error", err,
			"phone_hash_prefix", hashPrefix,
		)
		return nil, errors.NewServiceUnavailableError("deletion could not be started")
	}

	var deleted int64
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := uc.now()

		var err error
		deleted, err = uc.bookingRepo.SoftDeleteByPhoneHash(txCtx, hash.String(), now)
		if err != nil {
			return err
		}

		anonymized, err := uc.consentRepo.AnonymizeByPhoneHash(txCtx, hash.String())
		if err != nil {
			return err
		}

		req, err := privacy.NewCompletedDeletionRequest(hash, int(deleted), cmd.RequestedBy, now)
		if err != nil {
			return err
		}
		if err := uc.deletionRepo.Create(txCtx, req); err != nil {
			return err
		}

		entry, err := audit.NewEntry(audit.ActionPatientDeleted, cmd.ActorType, cmd.RequestedBy, now)
		if err != nil {
			return err
		}
		entry.WithTarget("deletion_request", fmt.Sprintf("%d", req.ID())).
			WithIP(cmd.IPAddress).
			WithMetadata("phone_hash_prefix", hashPrefix).
			WithMetadata("bookings_deleted", deleted).
			WithMetadata("consents_anonymized", anonymized).
			WithMetadata("key_revoked", revoked)
		return uc.auditRepo.Append(txCtx, entry)
	})

	if err != nil {
		uc.logger.Errorw("patient data deletion failed after key revocation",
			"error", err,
			"phone_hash_prefix", hashPrefix,
			"requested_by", cmd.RequestedBy,
			"alert", true,
		)
		return nil, errors.NewPartialFailureError(
			"patient data key revoked but records were not marked deleted; operator review required before re-running",
		)
	}

	uc.logger.Infow("patient data deleted",
		"phone_hash_prefix", hashPrefix,
		"bookings_deleted", deleted,
	)

	return &DeletePatientDataResult{Found: true, DeletedCount: int(deleted)}, nil
}
