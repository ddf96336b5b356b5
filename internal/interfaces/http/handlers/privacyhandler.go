package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/application/privacy/usecases"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

type PrivacyHandler struct {
	deleteUC deletePatientDataUseCase
	logger   logger.Interface
}

func NewPrivacyHandler(deleteUC deletePatientDataUseCase, logger logger.Interface) *PrivacyHandler {
	return &PrivacyHandler{
		deleteUC: deleteUC,
		logger:   logger,
	}
}

type DeletePatientDataRequest struct {
	Phone string `json:"phone" binding:"required,max=32"`
}

type DeletePatientDataResponse struct {
	Found        bool `json:"found"`
	DeletedCount int  `json:"deleted_count"`
}

// DeletePatientData handles POST /admin/privacy/deletions
func (h *PrivacyHandler) DeletePatientData(c *gin.Context) {
	var req DeletePatientDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for patient data deletion", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	caller := actorFromContext(c)
	result, err := h.deleteUC.Execute(c.Request.Context(), usecases.DeletePatientDataCommand{
		RawPhone:    req.Phone,
		RequestedBy: caller.ID,
		ActorType:   caller.Type,
		IPAddress:   caller.IP,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Patient data deleted"
	if !result.Found {
		message = "No active records for this phone number"
	}
	utils.SuccessResponse(c, http.StatusOK, message, DeletePatientDataResponse{
		Found:        result.Found,
		DeletedCount: result.DeletedCount,
	})
}
