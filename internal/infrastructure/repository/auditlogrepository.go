package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/mappers"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
	"github.com/hhgcare/hhg/internal/shared/constants"
	"github.com/hhgcare/hhg/internal/shared/db"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

type AuditLogRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAuditLogRepository(db *gorm.DB, logger logger.Interface) audit.Repository {
	return &AuditLogRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *AuditLogRepositoryImpl) Append(ctx context.Context, entry *audit.Entry) error {
	model, err := mappers.AuditEntryToModel(entry)
	if err != nil {
		r.logger.Errorw("failed to convert audit entry to model", "error", err, "action", entry.Action())
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append audit entry", "error", err, "action", entry.Action())
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	entry.SetID(model.ID)
	return nil
}

func (r *AuditLogRepositoryImpl) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.AuditLogModel{})

	if filter.Action != nil {
		query = query.Where("action = ?", filter.Action.String())
	}
	if filter.ActorType != nil {
		query = query.Where("actor_type = ?", filter.ActorType.String())
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count audit entries", "error", err)
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}

	var logModels []models.AuditLogModel
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Scopes(db.Paginate(filter.Page, pageSize)).
		Find(&logModels).Error
	if err != nil {
		r.logger.Errorw("failed to list audit entries", "error", err)
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.Entry, 0, len(logModels))
	for i := range logModels {
		entry, err := mappers.AuditEntryToDomain(&logModels[i])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
