package handlers

import (
	"context"

	auditUsecases "github.com/hhgcare/hhg/internal/application/audit/usecases"
	bookingUsecases "github.com/hhgcare/hhg/internal/application/booking/usecases"
	consentUsecases "github.com/hhgcare/hhg/internal/application/consent/usecases"
	privacyUsecases "github.com/hhgcare/hhg/internal/application/privacy/usecases"
)

// Use case interfaces for the handlers

type getConsentInfoUseCase interface {
	Execute(ctx context.Context, query consentUsecases.GetConsentInfoQuery) (*consentUsecases.ConsentInfoResult, error)
}

type getConsentStatusUseCase interface {
	Execute(ctx context.Context, query consentUsecases.GetConsentStatusQuery) (*consentUsecases.ConsentStatusResult, error)
}

type acceptConsentUseCase interface {
	Execute(ctx context.Context, cmd consentUsecases.AcceptConsentCommand) (*consentUsecases.AcceptConsentResult, error)
}

type issueConsentUseCase interface {
	Execute(ctx context.Context, cmd consentUsecases.IssueConsentCommand) (*consentUsecases.IssueConsentResult, error)
}

type createBookingUseCase interface {
	Execute(ctx context.Context, cmd bookingUsecases.CreateBookingCommand) (*bookingUsecases.CreateBookingResult, error)
}

type getBookingUseCase interface {
	Execute(ctx context.Context, query bookingUsecases.GetBookingQuery) (*bookingUsecases.BookingResult, error)
}

type deletePatientDataUseCase interface {
	Execute(ctx context.Context, cmd privacyUsecases.DeletePatientDataCommand) (*privacyUsecases.DeletePatientDataResult, error)
}

type listAuditLogsUseCase interface {
	Execute(ctx context.Context, query auditUsecases.ListAuditLogsQuery) (*auditUsecases.ListAuditLogsResult, error)
}
