package migration

import (
	"github.com/hhgcare/hhg/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every table owned by the service, in dependency-free order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.RateLimitCounterModel{},
		&models.ConsentTokenModel{},
		&models.EncryptionKeyModel{},
		&models.BookingModel{},
		&models.DeletionRequestModel{},
		&models.AuditLogModel{},
	}
}
