package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/booking"
	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

var (
	bookingNow  = time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	appointment = time.Date(2025, 7, 3, 2, 30, 0, 0, time.UTC)
	testDEK     = []byte("0123456789abcdef0123456789abcdef")
)

func validCreateCommand() CreateBookingCommand {
	return CreateBookingCommand{
		PartnerName:   "Vinmec",
		ServiceName:   "MRI scan",
		PatientName:   "Nguyễn Văn A",
		PatientPhone:  "090 123 4567",
		AppointmentAt: appointment,
		ActorType:     audit.ActorPartner,
		ActorID:       "partner:vinmec",
	}
}

func newCreateUseCase(repo booking.Repository, numbers booking.NumberGenerator, auditRepo audit.Repository) *CreateBookingUseCase {
	uc := NewCreateBookingUseCase(repo, numbers, mockPhoneHasher{}, &mockKeyVault{key: testDEK}, mockCipher{},
		auditRepo, 3, logger.NewNopLogger())
	uc.now = func() time.Time { return bookingNow }
	return uc
}

func TestCreateBookingUseCase_Execute_Success(t *testing.T) {
	var saved *booking.Booking
	repo := &mockBookingRepository{
		CreateFunc: func(ctx context.Context, b *booking.Booking) error {
			b.SetID(9)
			saved = b
			return nil
		},
	}
	auditRepo := &mockAuditRepository{}
	uc := newCreateUseCase(repo, &mockNumberGenerator{}, auditRepo)

	result, err := uc.Execute(context.Background(), validCreateCommand())
	require.NoError(t, err)
	assert.Equal(t, "HHG-VIN-4567-A1", result.BookingNumber)
	assert.Equal(t, appointment, result.AppointmentAt)
	assert.Equal(t, bookingNow, result.CreatedAt)

	require.NotNil(t, saved)
	assert.Equal(t, "ffee0901234567", saved.PhoneHash())
	phone, err := mockCipher{}.Open(testDEK, saved.PhoneCipher(), fieldAAD("ffee0901234567", fieldPhone))
	require.NoError(t, err)
	assert.Equal(t, "090 123 4567", string(phone))

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, audit.ActionBookingCreated, auditRepo.entries[0].Action())
	assert.Equal(t, "HHG-VIN-4567-A1", auditRepo.entries[0].TargetID())
}

func TestCreateBookingUseCase_RetriesOnDuplicateNumber(t *testing.T) {
	attempts := 0
	repo := &mockBookingRepository{
		CreateFunc: func(ctx context.Context, b *booking.Booking) error {
			attempts++
			if attempts == 1 {
				return fmt.Errorf("failed to create booking: UNIQUE constraint failed: bookings.booking_number")
			}
			b.SetID(10)
			return nil
		},
	}
	numbers := &mockNumberGenerator{}
	uc := newCreateUseCase(repo, numbers, &mockAuditRepository{})

	result, err := uc.Execute(context.Background(), validCreateCommand())
	require.NoError(t, err)
	assert.Equal(t, "HHG-VIN-4567-A2", result.BookingNumber)
	assert.Equal(t, 2, numbers.calls)
}

func TestCreateBookingUseCase_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := &mockBookingRepository{
		CreateFunc: func(ctx context.Context, b *booking.Booking) error {
			return fmt.Errorf("Error 1062 (23000): Duplicate entry 'x' for key 'uk_booking_number'")
		},
	}
	numbers := &mockNumberGenerator{}
	uc := newCreateUseCase(repo, numbers, &mockAuditRepository{})

	_, err := uc.Execute(context.Background(), validCreateCommand())
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Equal(t, 3, numbers.calls)
}

func TestCreateBookingUseCase_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cmd *CreateBookingCommand)
		numbers *mockNumberGenerator
		check   func(error) bool
	}{
		{
			name:    "missing phone",
			mutate:  func(cmd *CreateBookingCommand) { cmd.PatientPhone = "" },
			numbers: &mockNumberGenerator{},
			check:   errors.IsValidationError,
		},
		{
			name:    "malformed phone",
			mutate:  func(cmd *CreateBookingCommand) { cmd.PatientPhone = "call me" },
			numbers: &mockNumberGenerator{},
			check:   errors.IsValidationError,
		},
		{
			name:    "missing appointment",
			mutate:  func(cmd *CreateBookingCommand) { cmd.AppointmentAt = time.Time{} },
			numbers: &mockNumberGenerator{},
			check:   errors.IsValidationError,
		},
		{
			name:   "number lookup outage",
			mutate: func(cmd *CreateBookingCommand) {},
			numbers: &mockNumberGenerator{
				GenerateFunc: func(ctx context.Context, partnerName, phone string) (string, error) {
					return "", fmt.Errorf("dial tcp: connection refused")
				},
			},
			check: errors.IsServiceUnavailableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCreateCommand()
			tt.mutate(&cmd)
			uc := newCreateUseCase(&mockBookingRepository{}, tt.numbers, &mockAuditRepository{})

			_, err := uc.Execute(context.Background(), cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
}

func sealedBooking(t *testing.T, partner string, deleted bool) *booking.Booking {
	hash := privacy.PhoneHash("ffee0901234567")
	phone, _ := mockCipher{}.Seal(testDEK, []byte("0901234567"), fieldAAD(hash, fieldPhone))
	name, _ := mockCipher{}.Seal(testDEK, []byte("Trần Thị B"), fieldAAD(hash, fieldPatientName))

	var deletedAt *time.Time
	if deleted {
		deletedAt = &bookingNow
	}
	b, err := booking.ReconstructBooking(3, "HHG-VIN-4567-A1", partner, "MRI scan", hash.String(),
		name, phone, appointment, deleted, deletedAt, bookingNow, bookingNow)
	require.NoError(t, err)
	return b
}

func TestGetBookingUseCase_Execute(t *testing.T) {
	repoFor := func(b *booking.Booking) *mockBookingRepository {
		return &mockBookingRepository{
			GetByNumberFunc: func(ctx context.Context, number string) (*booking.Booking, error) {
				if number == b.BookingNumber() {
					return b, nil
				}
				return nil, nil
			},
		}
	}

	t.Run("decrypts PII with active key", func(t *testing.T) {
		uc := NewGetBookingUseCase(repoFor(sealedBooking(t, "Vinmec", false)), &mockKeyVault{key: testDEK}, mockCipher{}, logger.NewNopLogger())

		result, err := uc.Execute(context.Background(), GetBookingQuery{BookingNumber: "HHG-VIN-4567-A1"})
		require.NoError(t, err)
		assert.True(t, result.PIIAvailable)
		assert.Equal(t, "0901234567", result.PatientPhone)
		assert.Equal(t, "Trần Thị B", result.PatientName)
	})

	t.Run("shredded key hides PII", func(t *testing.T) {
		vault := &mockKeyVault{
			LookupDataKeyFunc: func(ctx context.Context, hash privacy.PhoneHash) ([]byte, error) {
				return nil, privacy.ErrKeyRevoked
			},
		}
		uc := NewGetBookingUseCase(repoFor(sealedBooking(t, "Vinmec", true)), vault, mockCipher{}, logger.NewNopLogger())

		result, err := uc.Execute(context.Background(), GetBookingQuery{BookingNumber: "HHG-VIN-4567-A1"})
		require.NoError(t, err)
		assert.True(t, result.IsDeleted)
		assert.False(t, result.PIIAvailable)
		assert.Empty(t, result.PatientPhone)
		assert.Empty(t, result.PatientName)
	})

	t.Run("reissued key cannot open old data", func(t *testing.T) {
		vault := &mockKeyVault{key: []byte("fedcba9876543210fedcba9876543210")}
		uc := NewGetBookingUseCase(repoFor(sealedBooking(t, "Vinmec", true)), vault, mockCipher{}, logger.NewNopLogger())

		result, err := uc.Execute(context.Background(), GetBookingQuery{BookingNumber: "HHG-VIN-4567-A1"})
		require.NoError(t, err)
		assert.False(t, result.PIIAvailable)
		assert.Empty(t, result.PatientPhone)
	})

	t.Run("other partner sees not found", func(t *testing.T) {
		uc := NewGetBookingUseCase(repoFor(sealedBooking(t, "Vinmec", false)), &mockKeyVault{key: testDEK}, mockCipher{}, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), GetBookingQuery{BookingNumber: "HHG-VIN-4567-A1", PartnerScope: "Hoan My"})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("unknown number", func(t *testing.T) {
		uc := NewGetBookingUseCase(&mockBookingRepository{}, &mockKeyVault{key: testDEK}, mockCipher{}, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), GetBookingQuery{BookingNumber: "HHG-XXX-0000-A1"})
		assert.True(t, errors.IsNotFoundError(err))
	})
}
