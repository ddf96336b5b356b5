package handlers

import (
	"context"

	auditUsecases "github.com/hhgcare/hhg/internal/application/audit/usecases"
	bookingUsecases "github.com/hhgcare/hhg/internal/application/booking/usecases"
	consentUsecases "github.com/hhgcare/hhg/internal/application/consent/usecases"
	privacyUsecases "github.com/hhgcare/hhg/internal/application/privacy/usecases"
)

type mockGetConsentInfoUC struct {
	result *consentUsecases.ConsentInfoResult
	err    error
	query  consentUsecases.GetConsentInfoQuery
}

func (m *mockGetConsentInfoUC) Execute(ctx context.Context, query consentUsecases.GetConsentInfoQuery) (*consentUsecases.ConsentInfoResult, error) {
	m.query = query
	return m.result, m.err
}

type mockGetConsentStatusUC struct {
	result *consentUsecases.ConsentStatusResult
	err    error
}

func (m *mockGetConsentStatusUC) Execute(ctx context.Context, query consentUsecases.GetConsentStatusQuery) (*consentUsecases.ConsentStatusResult, error) {
	return m.result, m.err
}

type mockAcceptConsentUC struct {
	result *consentUsecases.AcceptConsentResult
	err    error
	cmd    consentUsecases.AcceptConsentCommand
}

func (m *mockAcceptConsentUC) Execute(ctx context.Context, cmd consentUsecases.AcceptConsentCommand) (*consentUsecases.AcceptConsentResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockIssueConsentUC struct {
	result *consentUsecases.IssueConsentResult
	err    error
	cmd    consentUsecases.IssueConsentCommand
	called bool
}

func (m *mockIssueConsentUC) Execute(ctx context.Context, cmd consentUsecases.IssueConsentCommand) (*consentUsecases.IssueConsentResult, error) {
	m.called = true
	m.cmd = cmd
	return m.result, m.err
}

type mockCreateBookingUC struct {
	result *bookingUsecases.CreateBookingResult
	err    error
	cmd    bookingUsecases.CreateBookingCommand
	called bool
}

func (m *mockCreateBookingUC) Execute(ctx context.Context, cmd bookingUsecases.CreateBookingCommand) (*bookingUsecases.CreateBookingResult, error) {
	m.called = true
	m.cmd = cmd
	return m.result, m.err
}

type mockGetBookingUC struct {
	result *bookingUsecases.BookingResult
	err    error
	query  bookingUsecases.GetBookingQuery
}

func (m *mockGetBookingUC) Execute(ctx context.Context, query bookingUsecases.GetBookingQuery) (*bookingUsecases.BookingResult, error) {
	m.query = query
	return m.result, m.err
}

type mockDeletePatientDataUC struct {
	result *privacyUsecases.DeletePatientDataResult
	err    error
	cmd    privacyUsecases.DeletePatientDataCommand
}

func (m *mockDeletePatientDataUC) Execute(ctx context.Context, cmd privacyUsecases.DeletePatientDataCommand) (*privacyUsecases.DeletePatientDataResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockListAuditLogsUC struct {
	result *auditUsecases.ListAuditLogsResult
	err    error
	query  auditUsecases.ListAuditLogsQuery
}

func (m *mockListAuditLogsUC) Execute(ctx context.Context, query auditUsecases.ListAuditLogsQuery) (*auditUsecases.ListAuditLogsResult, error) {
	m.query = query
	return m.result, m.err
}
