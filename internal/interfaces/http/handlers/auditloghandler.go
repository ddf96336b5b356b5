package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/application/audit/usecases"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

type AuditLogHandler struct {
	listUC listAuditLogsUseCase
	logger logger.Interface
}

func NewAuditLogHandler(listUC listAuditLogsUseCase, logger logger.Interface) *AuditLogHandler {
	return &AuditLogHandler{
		listUC: listUC,
		logger: logger,
	}
}

// ListAuditLogs handles GET /admin/audit-logs?action=&actor_type=&from=&to=&page=&page_size=
func (h *AuditLogHandler) ListAuditLogs(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAuditLogsQuery{
		Action:    c.Query("action"),
		ActorType: c.Query("actor_type"),
		FromDate:  c.Query("from"),
		ToDate:    c.Query("to"),
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Entries, result.Total, result.Page, result.PageSize)
}
