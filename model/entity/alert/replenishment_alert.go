package alert

import "time"

// Alert levels surfaced to warehouse managers.
const (
	LevelWarning = "warning"
	LevelDanger  = "danger"

	LabelWarning = "Warning"
	LabelUrgent  = "Urgent"
)

// ReplenishmentAlert is an upsertable advisory for one (product, warehouse)
// pair. It reflects currently-true state only: raised while stock is below
// threshold, deleted once stock recovers.
type ReplenishmentAlert struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	AlertID       string    `gorm:"column:alert_id;type:varchar(64);not null" json:"alertId"`
	ProductID     string    `gorm:"column:product_id;type:varchar(64);not null;uniqueIndex:idx_alert_product_warehouse,priority:1" json:"productId"`
	ProductName   string    `gorm:"column:product_name;type:varchar(255)" json:"productName"`
	WarehouseID   string    `gorm:"column:warehouse_id;type:varchar(64);not null;uniqueIndex:idx_alert_product_warehouse,priority:2;index:idx_alert_warehouse" json:"warehouseId"`
	WarehouseName string    `gorm:"column:warehouse_name;type:varchar(255)" json:"warehouseName"`
	Stock         int       `gorm:"column:stock;not null;default:0" json:"stock"`
	Suggested     int       `gorm:"column:suggested;not null;default:0" json:"suggested"`
	Trigger       string    `gorm:"column:trigger_text;type:varchar(512)" json:"trigger"`
	Level         string    `gorm:"column:level;type:varchar(16);not null;default:warning" json:"level"`
	LevelLabel    string    `gorm:"column:level_label;type:varchar(32)" json:"levelLabel"`
	Threshold     int       `gorm:"column:threshold;not null;default:0" json:"threshold"`
	ShortageQty   int       `gorm:"column:shortage_qty;not null;default:0" json:"shortageQty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (ReplenishmentAlert) TableName() string {
	return "replenishment_alert"
}
