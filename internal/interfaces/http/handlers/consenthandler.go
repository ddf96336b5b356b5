package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/application/consent/usecases"
	"github.com/hhgcare/hhg/internal/shared/authorization"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

const headerDeviceFingerprint = "X-Device-Fingerprint"

type ConsentHandler struct {
	getInfoUC   getConsentInfoUseCase
	getStatusUC getConsentStatusUseCase
	acceptUC    acceptConsentUseCase
	issueUC     issueConsentUseCase
	logger      logger.Interface
}

func NewConsentHandler(
	getInfoUC getConsentInfoUseCase,
	getStatusUC getConsentStatusUseCase,
	acceptUC acceptConsentUseCase,
	issueUC issueConsentUseCase,
	logger logger.Interface,
) *ConsentHandler {
	return &ConsentHandler{
		getInfoUC:   getInfoUC,
		getStatusUC: getStatusUC,
		acceptUC:    acceptUC,
		issueUC:     issueUC,
		logger:      logger,
	}
}

type ConsentInfoResponse struct {
	PartnerName         string    `json:"partner_name"`
	ServiceName         string    `json:"service_name"`
	DataDescription     string    `json:"data_description"`
	DataDescriptionHTML string    `json:"data_description_html"`
	Status              string    `json:"status"`
	ExpiresAt           time.Time `json:"expires_at"`
}

type ConsentStatusResponse struct {
	Status            string     `json:"status"`
	AcceptedAt        *time.Time `json:"accepted_at,omitempty"`
	PatientIP         *string    `json:"patient_ip,omitempty"`
	DeviceFingerprint *string    `json:"device_fingerprint,omitempty"`
}

type AcceptConsentRequest struct {
	DeviceFingerprint string `json:"device_fingerprint"`
}

type AcceptConsentResponse struct {
	Status     string    `json:"status"`
	AcceptedAt time.Time `json:"accepted_at"`
}

type IssueConsentRequest struct {
	PartnerName     string `json:"partner_name" binding:"omitempty,max=200"`
	ServiceName     string `json:"service_name" binding:"required,max=200"`
	DataDescription string `json:"data_description" binding:"required,max=10000"`
	PatientPhone    string `json:"patient_phone" binding:"omitempty,max=32"`
}

type IssueConsentResponse struct {
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetConsentInfo handles GET /consent/:token
func (h *ConsentHandler) GetConsentInfo(c *gin.Context) {
	result, err := h.getInfoUC.Execute(c.Request.Context(), usecases.GetConsentInfoQuery{
		Token: c.Param("token"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ConsentInfoResponse{
		PartnerName:         result.PartnerName,
		ServiceName:         result.ServiceName,
		DataDescription:     result.DataDescription,
		DataDescriptionHTML: result.DataDescriptionHTML,
		Status:              result.Status,
		ExpiresAt:           result.ExpiresAt,
	})
}

// GetConsentStatus handles GET /consent/:token/status
func (h *ConsentHandler) GetConsentStatus(c *gin.Context) {
	result, err := h.getStatusUC.Execute(c.Request.Context(), usecases.GetConsentStatusQuery{
		Token: c.Param("token"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ConsentStatusResponse{
		Status:            result.Status,
		AcceptedAt:        result.AcceptedAt,
		PatientIP:         result.PatientIP,
		DeviceFingerprint: result.DeviceFingerprint,
	})
}

// AcceptConsent handles POST /consent/:token/accept. The body is optional;
// the fingerprint may also arrive in the X-Device-Fingerprint header.
func (h *ConsentHandler) AcceptConsent(c *gin.Context) {
	var req AcceptConsentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for accept consent", "error", err)
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
			return
		}
	}
	if req.DeviceFingerprint == "" {
		req.DeviceFingerprint = c.GetHeader(headerDeviceFingerprint)
	}

	result, err := h.acceptUC.Execute(c.Request.Context(), usecases.AcceptConsentCommand{
		Token:             c.Param("token"),
		PatientIP:         c.ClientIP(),
		DeviceFingerprint: req.DeviceFingerprint,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Consent accepted", AcceptConsentResponse{
		Status:     result.Status,
		AcceptedAt: result.AcceptedAt,
	})
}

// IssueConsent handles POST /consent-requests. Partner callers always issue
// under their own partner name.
func (h *ConsentHandler) IssueConsent(c *gin.Context) {
	var req IssueConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for issue consent", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	caller := actorFromContext(c)
	partnerName := req.PartnerName
	if caller.isPartner() && partnerName == "" {
		partnerName = caller.PartnerName
	}
	if !authorization.CanAccessPartnerResource(caller.Role, caller.PartnerName, partnerName) {
		utils.ErrorResponse(c, http.StatusForbidden, "cannot issue consent for another partner")
		return
	}
	if partnerName == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("partner_name is required"))
		return
	}

	result, err := h.issueUC.Execute(c.Request.Context(), usecases.IssueConsentCommand{
		PartnerName:     partnerName,
		ServiceName:     req.ServiceName,
		DataDescription: req.DataDescription,
		PatientPhone:    req.PatientPhone,
		ActorType:       caller.Type,
		ActorID:         caller.ID,
		IPAddress:       caller.IP,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, IssueConsentResponse{
		Token:     result.Token,
		Status:    result.Status,
		ExpiresAt: result.ExpiresAt,
	}, "Consent request created")
}
