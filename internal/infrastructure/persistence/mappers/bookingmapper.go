package mappers

import (
	"github.com/hhgcare/hhg/internal/domain/booking"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
)

func BookingToModel(b *booking.Booking) *models.BookingModel {
	return &models.BookingModel{
		ID:                b.ID(),
		BookingNumber:     b.BookingNumber(),
		PartnerName:       b.PartnerName(),
		ServiceName:       b.ServiceName(),
		PhoneHash:         b.PhoneHash(),
		PatientNameCipher: b.PatientNameCipher(),
		PhoneCipher:       b.PhoneCipher(),
		AppointmentAt:     b.AppointmentAt(),
		IsDeleted:         b.IsDeleted(),
		DeletedAt:         b.DeletedAt(),
		CreatedAt:         b.CreatedAt(),
		UpdatedAt:         b.UpdatedAt(),
	}
}

func BookingToDomain(model *models.BookingModel) (*booking.Booking, error) {
	return booking.ReconstructBooking(
		model.ID,
		model.BookingNumber,
		model.PartnerName,
		model.ServiceName,
		model.PhoneHash,
		model.PatientNameCipher,
		model.PhoneCipher,
		model.AppointmentAt.UTC(),
		model.IsDeleted,
		utcPtr(model.DeletedAt),
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}
