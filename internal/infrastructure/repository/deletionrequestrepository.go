package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/mappers"
	"github.com/hhgcare/hhg/internal/shared/db"
)

type DeletionRequestRepository struct {
	db *gorm.DB
}

func NewDeletionRequestRepository(db *gorm.DB) *DeletionRequestRepository {
	return &DeletionRequestRepository{db: db}
}

func (r *DeletionRequestRepository) Create(ctx context.Context, req *privacy.DeletionRequest) error {
	model := mappers.DeletionRequestToModel(req)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create deletion request: %w", err)
	}

	req.SetID(model.ID)
	return nil
}
