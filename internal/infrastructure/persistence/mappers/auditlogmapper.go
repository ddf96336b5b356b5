package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
)

func AuditEntryToModel(e *audit.Entry) (*models.AuditLogModel, error) {
	model := &models.AuditLogModel{
		ID:         e.ID(),
		Action:     e.Action().String(),
		ActorType:  e.ActorType().String(),
		ActorID:    e.ActorID(),
		TargetType: e.TargetType(),
		TargetID:   e.TargetID(),
		IPAddress:  e.IPAddress(),
		CreatedAt:  e.CreatedAt(),
	}

	if len(e.Metadata()) > 0 {
		raw, err := json.Marshal(e.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit metadata: %w", err)
		}
		model.Metadata = datatypes.JSON(raw)
	}

	return model, nil
}

func AuditEntryToDomain(model *models.AuditLogModel) (*audit.Entry, error) {
	var metadata map[string]any
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit metadata for entry %d: %w", model.ID, err)
		}
	}

	return audit.ReconstructEntry(
		model.ID,
		audit.Action(model.Action),
		audit.ActorType(model.ActorType),
		model.ActorID,
		model.TargetType,
		model.TargetID,
		model.IPAddress,
		metadata,
		model.CreatedAt.UTC(),
	), nil
}
