package http

import (
	auditUsecases "github.com/hhgcare/hhg/internal/application/audit/usecases"
	bookingUsecases "github.com/hhgcare/hhg/internal/application/booking/usecases"
	consentUsecases "github.com/hhgcare/hhg/internal/application/consent/usecases"
	privacyUsecases "github.com/hhgcare/hhg/internal/application/privacy/usecases"
	"github.com/hhgcare/hhg/internal/interfaces/http/handlers"
)

type handlerSet struct {
	consent  *handlers.ConsentHandler
	booking  *handlers.BookingHandler
	privacy  *handlers.PrivacyHandler
	auditLog *handlers.AuditLogHandler
}

func (c *Container) wireHandlers() *handlerSet {
	r, s := c.repos, c.services

	consentLog := c.log.With("component", "consent")
	getInfoUC := consentUsecases.NewGetConsentInfoUseCase(r.consentToken, r.auditLog, s.markdown, consentLog)
	getStatusUC := consentUsecases.NewGetConsentStatusUseCase(r.consentToken, r.auditLog, consentLog)
	acceptUC := consentUsecases.NewAcceptConsentUseCase(r.consentToken, r.auditLog, consentLog)
	issueUC := consentUsecases.NewIssueConsentUseCase(
		r.consentToken, r.auditLog, s.phoneHasher, s.markdown, c.cfg.Consent.TokenTTL(), consentLog,
	)

	bookingLog := c.log.With("component", "booking")
	createBookingUC := bookingUsecases.NewCreateBookingUseCase(
		r.booking, s.numberGenerator, s.phoneHasher, s.keyVault, s.fieldCipher, r.auditLog,
		c.cfg.Booking.MaxCreateAttempts, bookingLog,
	)
	getBookingUC := bookingUsecases.NewGetBookingUseCase(r.booking, s.keyVault, s.fieldCipher, bookingLog)

	privacyLog := c.log.With("component", "privacy")
	deleteUC := privacyUsecases.NewDeletePatientDataUseCase(
		r.txManager, s.phoneHasher, s.keyVault, r.booking, r.consentToken, r.deletionRequest, r.auditLog, privacyLog,
	)

	auditLog := c.log.With("component", "audit")
	listAuditUC := auditUsecases.NewListAuditLogsUseCase(r.auditLog, auditLog)

	return &handlerSet{
		consent:  handlers.NewConsentHandler(getInfoUC, getStatusUC, acceptUC, issueUC, consentLog),
		booking:  handlers.NewBookingHandler(createBookingUC, getBookingUC, bookingLog),
		privacy:  handlers.NewPrivacyHandler(deleteUC, privacyLog),
		auditLog: handlers.NewAuditLogHandler(listAuditUC, auditLog),
	}
}
