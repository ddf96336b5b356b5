package usecases

import (
	"context"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

// ListAuditLogsQuery filters by exact action and actor type. Dates are
// YYYY-MM-DD in the business timezone and both ends are inclusive.
type ListAuditLogsQuery struct {
	Action    string
	ActorType string
	FromDate  string
	ToDate    string
	Page      int
	PageSize  int
}

type AuditLogDTO struct {
	ID         uint           `json:"id"`
	Action     string         `json:"action"`
	ActorType  string         `json:"actor_type"`
	ActorID    string         `json:"actor_id,omitempty"`
	TargetType string         `json:"target_type,omitempty"`
	TargetID   string         `json:"target_id,omitempty"`
	IPAddress  string         `json:"ip_address,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ListAuditLogsResult struct {
	Entries  []AuditLogDTO
	Total    int64
	Page     int
	PageSize int
}

type ListAuditLogsUseCase struct {
	repo   audit.Repository
	logger logger.Interface
}

func NewListAuditLogsUseCase(repo audit.Repository, logger logger.Interface) *ListAuditLogsUseCase {
	return &ListAuditLogsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListAuditLogsUseCase) Execute(ctx context.Context, query ListAuditLogsQuery) (*ListAuditLogsResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	filter := audit.Filter{Page: pagination.Page, PageSize: pagination.PageSize}

	if query.Action != "" {
		action := audit.Action(query.Action)
		filter.Action = &action
	}
	if query.ActorType != "" {
		actorType := audit.ActorType(query.ActorType)
		if !actorType.IsValid() {
			return nil, errors.NewValidationError("invalid actor type")
		}
		filter.ActorType = &actorType
	}
	if query.FromDate != "" {
		from, err := biztime.ParseDateInBizTimezone(query.FromDate)
		if err != nil {
			return nil, errors.NewValidationError("invalid from date", err.Error())
		}
		filter.From = &from
	}
	if query.ToDate != "" {
		day, err := biztime.ParseDateInBizTimezone(query.ToDate)
		if err != nil {
			return nil, errors.NewValidationError("invalid to date", err.Error())
		}
		to := biztime.EndOfDayUTC(day)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, errors.NewValidationError("from date is after to date")
	}

	entries, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list audit logs", "error", err)
		return nil, errors.NewServiceUnavailableError("audit store unavailable")
	}

	dtos := make([]AuditLogDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, AuditLogDTO{
			ID:         e.ID(),
			Action:     e.Action().String(),
			ActorType:  e.ActorType().String(),
			ActorID:    e.ActorID(),
			TargetType: e.TargetType(),
			TargetID:   e.TargetID(),
			IPAddress:  e.IPAddress(),
			Metadata:   e.Metadata(),
			CreatedAt:  e.CreatedAt(),
		})
	}

	return &ListAuditLogsResult{
		Entries:  dtos,
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
