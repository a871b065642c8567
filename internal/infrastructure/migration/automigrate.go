package migration

import (
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every model the auto-migrate strategy manages.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PackModel{},
		&models.SubUnitModel{},
		&models.PurchaseRequestModel{},
		&models.ReceiptModel{},
	}
}
