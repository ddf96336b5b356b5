package http

import (
	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/consent"
	"github.com/hhgcare/hhg/internal/infrastructure/repository"
	"github.com/hhgcare/hhg/internal/shared/db"
)

type repositories struct {
	rateLimitCounter *repository.RateLimitCounterRepository
	consentToken     consent.Repository
	booking          *repository.BookingRepository
	encryptionKey    *repository.EncryptionKeyRepository
	deletionRequest  *repository.DeletionRequestRepository
	auditLog         audit.Repository
	txManager        *db.TransactionManager
}

func (c *Container) wireRepositories() *repositories {
	return &repositories{
		rateLimitCounter: repository.NewRateLimitCounterRepository(c.db),
		consentToken:     repository.NewConsentTokenRepository(c.db, c.log.With("component", "consent_repository")),
		booking:          repository.NewBookingRepository(c.db),
		encryptionKey:    repository.NewEncryptionKeyRepository(c.db),
		deletionRequest:  repository.NewDeletionRequestRepository(c.db),
		auditLog:         repository.NewAuditLogRepository(c.db, c.log.With("component", "audit_repository")),
		txManager:        db.NewTransactionManager(c.db),
	}
}
