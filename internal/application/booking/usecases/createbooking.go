package usecases

import (
	"context"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/booking"
	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

const DefaultMaxCreateAttempts = 3

type CreateBookingCommand struct {
	PartnerName   string    `json:"partner_name" validate:"required,max=200"`
	ServiceName   string    `json:"service_name" validate:"required,max=200"`
	PatientName   string    `json:"patient_name" validate:"omitempty,max=200"`
	PatientPhone  string    `json:"patient_phone" validate:"required,phone"`
	AppointmentAt time.Time `json:"appointment_at" validate:"required"`
	ActorType     audit.ActorType
	ActorID       string
	IPAddress     string
}

type CreateBookingResult struct {
	BookingNumber string
	PartnerName   string
	ServiceName   string
	AppointmentAt time.Time
	CreatedAt     time.Time
}

// CreateBookingUseCase stores a booking with its PII sealed under the
// patient's data key.
type CreateBookingUseCase struct {
	repo        booking.Repository
	numbers     booking.NumberGenerator
	hasher      privacy.PhoneHasher
	vault       privacy.KeyVault
	cipher      privacy.FieldCipher
	auditRepo   audit.Repository
	maxAttempts int
	logger      logger.Interface
	now         func() time.Time
}

func NewCreateBookingUseCase(
	repo booking.Repository,
	numbers booking.NumberGenerator,
	hasher privacy.PhoneHasher,
	vault privacy.KeyVault,
	cipher privacy.FieldCipher,
	auditRepo audit.Repository,
	maxAttempts int,
	logger logger.Interface,
) *CreateBookingUseCase {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCreateAttempts
	}
	return &CreateBookingUseCase{
		repo:        repo,
		numbers:     numbers,
		hasher:      hasher,
		vault:       vault,
		cipher:      cipher,
		auditRepo:   auditRepo,
		maxAttempts: maxAttempts,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *CreateBookingUseCase) Execute(ctx context.Context, cmd CreateBookingCommand) (*CreateBookingResult, error) {
	uc.logger.Infow("executing create booking use case", "partner_name", cmd.PartnerName, "actor_type", cmd.ActorType)

	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(cmd.PatientPhone)
	if err != nil {
		return nil, err
	}

	dek, err := uc.vault.DataKeyFor(ctx, hash)
	if err != nil {
		uc.logger.Errorw("failed to obtain patient data key", "error", err, "phone_hash_prefix", hash.AuditPrefix())
		return nil, errors.NewServiceUnavailableError("key store unavailable")
	}

	phoneCipher, err := uc.cipher.Seal(dek, []byte(cmd.PatientPhone), fieldAAD(hash, fieldPhone))
	if err != nil {
		return nil, errors.NewInternalError("failed to encrypt booking")
	}
	var nameCipher []byte
	if cmd.PatientName != "" {
		nameCipher, err = uc.cipher.Seal(dek, []byte(cmd.PatientName), fieldAAD(hash, fieldPatientName))
		if err != nil {
			return nil, errors.NewInternalError("failed to encrypt booking")
		}
	}

	now := uc.now()
	var b *booking.Booking
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		number, err := uc.numbers.Generate(ctx, cmd.PartnerName, cmd.PatientPhone)
		if err != nil {
			uc.logger.Errorw("failed to allocate booking number", "error", err)
			return nil, errors.NewServiceUnavailableError("booking store unavailable")
		}

		if b == nil {
			b, err = booking.NewBooking(number, cmd.PartnerName, cmd.ServiceName, hash.String(),
				nameCipher, phoneCipher, cmd.AppointmentAt.UTC(), now)
			if err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
		} else if err := b.SetBookingNumber(number); err != nil {
			return nil, errors.NewInternalError("failed to renumber booking", err.Error())
		}

		err = uc.repo.Create(ctx, b)
		if err == nil {
			break
		}
		if !errors.IsDuplicateError(err) {
			uc.logger.Errorw("failed to save booking", "error", err)
			return nil, errors.NewServiceUnavailableError("booking store unavailable")
		}

		uc.logger.Warnw("booking number taken concurrently, retrying",
			"booking_number", number,
			"attempt", attempt,
		)
		if attempt == uc.maxAttempts {
			return nil, errors.NewConflictError("could not allocate a unique booking number")
		}
	}

	entry, err := audit.NewEntry(audit.ActionBookingCreated, cmd.ActorType, cmd.ActorID, now)
	if err == nil {
		entry.WithTarget("booking", b.BookingNumber()).
			WithIP(cmd.IPAddress).
			WithMetadata("partner_name", b.PartnerName())
		err = uc.auditRepo.Append(ctx, entry)
	}
	if err != nil {
		uc.logger.Errorw("failed to append booking audit entry", "error", err, "booking_number", b.BookingNumber())
	}

	uc.logger.Infow("booking created", "booking_id", b.ID(), "booking_number", b.BookingNumber())

	return &CreateBookingResult{
		BookingNumber: b.BookingNumber(),
		PartnerName:   b.PartnerName(),
		ServiceName:   b.ServiceName(),
		AppointmentAt: b.AppointmentAt(),
		CreatedAt:     b.CreatedAt(),
	}, nil
}
