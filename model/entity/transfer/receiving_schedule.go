package transfer

import "time"

// ReceivingSchedule is the inbound plan created alongside a manual
// allocation, so the destination knows what is arriving and when.
type ReceivingSchedule struct {
	ID                uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	PlanNo            string    `gorm:"column:plan_no;type:varchar(32);not null;index:idx_receiving_plan" json:"planNo"`
	Supplier          string    `gorm:"column:supplier;type:varchar(255)" json:"supplier"`
	ETA               time.Time `gorm:"column:eta" json:"eta"`
	Dock              string    `gorm:"column:dock;type:varchar(64)" json:"dock"`
	Items             int       `gorm:"column:items;not null;default:1" json:"items"`
	ProductSKU        string    `gorm:"column:product_sku;type:varchar(64);not null" json:"productSku"`
	ProductName       string    `gorm:"column:product_name;type:varchar(255)" json:"productName"`
	Quantity          int       `gorm:"column:quantity;not null" json:"quantity"`
	StorageLocationID string    `gorm:"column:storage_location_id;type:varchar(64)" json:"storageLocationId"`
	QualityLevel      string    `gorm:"column:quality_level;type:varchar(8);default:A" json:"qualityLevel"`
	Status            string    `gorm:"column:status;type:varchar(16);not null" json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (ReceivingSchedule) TableName() string {
	return "receiving_schedule"
}
