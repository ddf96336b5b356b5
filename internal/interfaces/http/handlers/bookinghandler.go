package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/application/booking/usecases"
	"github.com/hhgcare/hhg/internal/shared/authorization"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

type BookingHandler struct {
	createUC createBookingUseCase
	getUC    getBookingUseCase
	logger   logger.Interface
}

func NewBookingHandler(createUC createBookingUseCase, getUC getBookingUseCase, logger logger.Interface) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		getUC:    getUC,
		logger:   logger,
	}
}

type CreateBookingRequest struct {
	PartnerName   string    `json:"partner_name" binding:"omitempty,max=200"`
	ServiceName   string    `json:"service_name" binding:"required,max=200"`
	PatientName   string    `json:"patient_name" binding:"omitempty,max=200"`
	PatientPhone  string    `json:"patient_phone" binding:"required,max=32"`
	AppointmentAt time.Time `json:"appointment_at" binding:"required"`
}

type BookingResponse struct {
	BookingNumber string    `json:"booking_number"`
	PartnerName   string    `json:"partner_name"`
	ServiceName   string    `json:"service_name"`
	AppointmentAt time.Time `json:"appointment_at"`
	IsDeleted     bool      `json:"is_deleted"`
	PIIAvailable  bool      `json:"pii_available"`
	PatientName   string    `json:"patient_name,omitempty"`
	PatientPhone  string    `json:"patient_phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create booking", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	caller := actorFromContext(c)
	partnerName := req.PartnerName
	if caller.isPartner() && partnerName == "" {
		partnerName = caller.PartnerName
	}
	if !authorization.CanAccessPartnerResource(caller.Role, caller.PartnerName, partnerName) {
		utils.ErrorResponse(c, http.StatusForbidden, "cannot create bookings for another partner")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateBookingCommand{
		PartnerName:   partnerName,
		ServiceName:   req.ServiceName,
		PatientName:   req.PatientName,
		PatientPhone:  req.PatientPhone,
		AppointmentAt: req.AppointmentAt,
		ActorType:     caller.Type,
		ActorID:       caller.ID,
		IPAddress:     caller.IP,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, BookingResponse{
		BookingNumber: result.BookingNumber,
		PartnerName:   result.PartnerName,
		ServiceName:   result.ServiceName,
		AppointmentAt: result.AppointmentAt,
		PIIAvailable:  true,
		CreatedAt:     result.CreatedAt,
	}, "Booking created")
}

// GetBooking handles GET /bookings/:number. Partners only see their own
// bookings and never the full phone number.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	caller := actorFromContext(c)

	query := usecases.GetBookingQuery{BookingNumber: c.Param("number")}
	if caller.isPartner() {
		if caller.PartnerName == "" {
			utils.ErrorResponse(c, http.StatusForbidden, "partner scope missing from token")
			return
		}
		query.PartnerScope = caller.PartnerName
	}

	result, err := h.getUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := BookingResponse{
		BookingNumber: result.BookingNumber,
		PartnerName:   result.PartnerName,
		ServiceName:   result.ServiceName,
		AppointmentAt: result.AppointmentAt,
		IsDeleted:     result.IsDeleted,
		PIIAvailable:  result.PIIAvailable,
		PatientName:   result.PatientName,
		PatientPhone:  result.PatientPhone,
		CreatedAt:     result.CreatedAt,
	}
	if caller.isPartner() && resp.PatientPhone != "" {
		resp.PatientPhone = utils.MaskPhone(resp.PatientPhone)
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
