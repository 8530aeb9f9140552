package alert

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	alertEntity "stocknet.GO/model/entity/alert"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *AlertRepository) WithTx(tx *gorm.DB) *AlertRepository {
	return &AlertRepository{db: tx}
}

// Upsert creates or refreshes the alert for (product, warehouse). The unique
// index gives natural dedup: applying the same breach twice leaves one row.
func (r *AlertRepository) Upsert(a *alertEntity.ReplenishmentAlert) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"alert_id", "product_name", "warehouse_name", "stock", "suggested",
			"trigger_text", "level", "level_label", "threshold", "shortage_qty",
		}),
	}).Create(a).Error
}

// DeleteFor removes the alert for (product, warehouse); no-op when absent.
// Called when stock recovers above threshold.
func (r *AlertRepository) DeleteFor(productID, warehouseID string) error {
	return r.db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Delete(&alertEntity.ReplenishmentAlert{}).Error
}

// Get returns the alert for (product, warehouse), or nil when none exists.
func (r *AlertRepository) Get(productID, warehouseID string) (*alertEntity.ReplenishmentAlert, error) {
	var a alertEntity.ReplenishmentAlert
	err := r.db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// List returns alerts, newest first, optionally filtered to one warehouse.
func (r *AlertRepository) List(warehouseID string) ([]alertEntity.ReplenishmentAlert, error) {
	q := r.db.Order("created_at DESC")
	if warehouseID != "" {
		q = q.Where("warehouse_id = ?", warehouseID)
	}
	var alerts []alertEntity.ReplenishmentAlert
	err := q.Find(&alerts).Error
	return alerts, err
}
