package model

import (
	"gorm.io/gorm"

	alertEntity "stocknet.GO/model/entity/alert"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	replenishmentEntity "stocknet.GO/model/entity/replenishment"
	transferEntity "stocknet.GO/model/entity/transfer"
)

// AutoMigrate creates/updates all domain tables and their indexes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&inventoryEntity.Record{},
		&alertEntity.ReplenishmentAlert{},
		&replenishmentEntity.Request{},
		&transferEntity.Order{},
		&transferEntity.ReceivingSchedule{},
	)
}
