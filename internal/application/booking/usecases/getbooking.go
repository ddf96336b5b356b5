package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/hhgcare/hhg/internal/domain/booking"
	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

type GetBookingQuery struct {
	BookingNumber string
	// PartnerScope restricts the lookup to one partner's bookings. Empty
	// means unrestricted.
	PartnerScope string
}

type BookingResult struct {
	BookingNumber string
	PartnerName   string
	ServiceName   string
	AppointmentAt time.Time
	IsDeleted     bool
	// PIIAvailable is false once the patient's key has been shredded.
	PIIAvailable bool
	PatientName  string
	PatientPhone string
	CreatedAt    time.Time
}

type GetBookingUseCase struct {
	repo   booking.Repository
	vault  privacy.KeyVault
	cipher privacy.FieldCipher
	logger logger.Interface
}

func NewGetBookingUseCase(
	repo booking.Repository,
	vault privacy.KeyVault,
	cipher privacy.FieldCipher,
	logger logger.Interface,
) *GetBookingUseCase {
	return &GetBookingUseCase{
		repo:   repo,
		vault:  vault,
		cipher: cipher,
		logger: logger,
	}
}

func (uc *GetBookingUseCase) Execute(ctx context.Context, query GetBookingQuery) (*BookingResult, error) {
	if query.BookingNumber == "" {
		return nil, errors.NewValidationError("booking number is required")
	}

	b, err := uc.repo.GetByNumber(ctx, query.BookingNumber)
	if err != nil {
		uc.logger.Errorw("failed to get booking", "error", err, "booking_number", query.BookingNumber)
		return nil, errors.NewServiceUnavailableError("booking store unavailable")
	}
	if b == nil || (query.PartnerScope != "" && b.PartnerName() != query.PartnerScope) {
		return nil, errors.NewNotFoundError("booking not found")
	}

	result := &BookingResult{
		BookingNumber: b.BookingNumber(),
		PartnerName:   b.PartnerName(),
		ServiceName:   b.ServiceName(),
		AppointmentAt: b.AppointmentAt(),
		IsDeleted:     b.IsDeleted(),
		CreatedAt:     b.CreatedAt(),
	}

	hash := privacy.PhoneHash(b.PhoneHash())
	dek, err := uc.vault.LookupDataKey(ctx, hash)
	switch {
	case stderrors.Is(err, privacy.ErrKeyRevoked):
		return result, nil
	case err != nil:
		uc.logger.Errorw("failed to load patient data key", "error", err, "booking_number", b.BookingNumber())
		return nil, errors.NewServiceUnavailableError("key store unavailable")
	case dek == nil:
		uc.logger.Warnw("booking has no patient data key", "booking_number", b.BookingNumber())
		return result, nil
	}

	// a key reissued after shredding cannot open data sealed under the old one
	phone, err := uc.cipher.Open(dek, b.PhoneCipher(), fieldAAD(hash, fieldPhone))
	if err != nil {
		uc.logger.Warnw("booking PII not decryptable with current key", "booking_number", b.BookingNumber())
		return result, nil
	}
	result.PatientPhone = string(phone)

	if len(b.PatientNameCipher()) > 0 {
		name, err := uc.cipher.Open(dek, b.PatientNameCipher(), fieldAAD(hash, fieldPatientName))
		if err != nil {
			uc.logger.Warnw("booking PII not decryptable with current key", "booking_number", b.BookingNumber())
			return result, nil
		}
		result.PatientName = string(name)
	}

	result.PIIAvailable = true
	return result, nil
}
