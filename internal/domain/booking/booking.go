package booking

import (
	"fmt"
	"time"
)

// Booking is a patient appointment with a partner. Patient name and phone are
// stored only as ciphertext under the patient's data key.
type Booking struct {
	id                uint
	bookingNumber     string
	partnerName       string
	serviceName       string
	phoneHash         string
	patientNameCipher []byte
	phoneCipher       []byte
	appointmentAt     time.Time
	isDeleted         bool
	deletedAt         *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func NewBooking(
	bookingNumber string,
	partnerName string,
	serviceName string,
	phoneHash string,
	patientNameCipher []byte,
	phoneCipher []byte,
	appointmentAt time.Time,
	now time.Time,
) (*Booking, error) {
	if bookingNumber == "" {
		return nil, fmt.Errorf("booking number is required")
	}
	if partnerName == "" {
		return nil, fmt.Errorf("partner name is required")
	}
	if serviceName == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if phoneHash == "" {
		return nil, fmt.Errorf("phone hash is required")
	}
	if len(phoneCipher) == 0 {
		return nil, fmt.Errorf("encrypted phone is required")
	}
	if appointmentAt.IsZero() {
		return nil, fmt.Errorf("appointment time is required")
	}

	return &Booking{
		bookingNumber:     bookingNumber,
		partnerName:       partnerName,
		serviceName:       serviceName,
		phoneHash:         phoneHash,
		patientNameCipher: patientNameCipher,
		phoneCipher:       phoneCipher,
		appointmentAt:     appointmentAt,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructBooking(
	id uint,
	bookingNumber string,
	partnerName string,
	serviceName string,
	phoneHash string,
	patientNameCipher []byte,
	phoneCipher []byte,
	appointmentAt time.Time,
	isDeleted bool,
	deletedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if id == 0 {
		return nil, fmt.Errorf("booking ID cannot be zero")
	}
	if bookingNumber == "" {
		return nil, fmt.Errorf("booking number is required")
	}
	return &Booking{
		id:                id,
		bookingNumber:     bookingNumber,
		partnerName:       partnerName,
		serviceName:       serviceName,
		phoneHash:         phoneHash,
		patientNameCipher: patientNameCipher,
		phoneCipher:       phoneCipher,
		appointmentAt:     appointmentAt,
		isDeleted:         isDeleted,
		deletedAt:         deletedAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (b *Booking) ID() uint                  { return b.id }
func (b *Booking) BookingNumber() string     { return b.bookingNumber }
func (b *Booking) PartnerName() string       { return b.partnerName }
func (b *Booking) ServiceName() string       { return b.serviceName }
func (b *Booking) PhoneHash() string         { return b.phoneHash }
func (b *Booking) PatientNameCipher() []byte { return b.patientNameCipher }
func (b *Booking) PhoneCipher() []byte       { return b.phoneCipher }
func (b *Booking) AppointmentAt() time.Time  { return b.appointmentAt }
func (b *Booking) IsDeleted() bool           { return b.isDeleted }
func (b *Booking) DeletedAt() *time.Time     { return b.deletedAt }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

func (b *Booking) SetID(id uint) {
	b.id = id
}

// SetBookingNumber replaces the number of an unsaved booking after an
// allocation collision.
func (b *Booking) SetBookingNumber(number string) error {
	if b.id != 0 {
		return fmt.Errorf("booking %d is already persisted", b.id)
	}
	if number == "" {
		return fmt.Errorf("booking number is required")
	}
	b.bookingNumber = number
	return nil
}
