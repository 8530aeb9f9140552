package inventory

import "time"

// Record represents per-location stock for one product (inventory_record table).
// One row per (product_id, location_id); created lazily on first adjustment.
type Record struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	ProductID    string    `gorm:"column:product_id;type:varchar(64);not null;uniqueIndex:idx_inventory_product_location,priority:1;index:idx_inventory_product" json:"productId"`
	ProductName  string    `gorm:"column:product_name;type:varchar(255);not null" json:"productName"`
	LocationID   string    `gorm:"column:location_id;type:varchar(64);not null;uniqueIndex:idx_inventory_product_location,priority:2;index:idx_inventory_location" json:"locationId"`
	LocationName string    `gorm:"column:location_name;type:varchar(255)" json:"locationName"`
	Region       string    `gorm:"column:region;type:varchar(32)" json:"region,omitempty"`
	TotalStock   int       `gorm:"column:total_stock;not null;default:0" json:"totalStock"`
	Available    int       `gorm:"column:available;not null;default:0" json:"available"`
	MinThreshold int       `gorm:"column:min_threshold;not null;default:0" json:"minThreshold"`
	MaxThreshold int       `gorm:"column:max_threshold;not null;default:0" json:"maxThreshold"`
	LastUpdated  time.Time `gorm:"column:last_updated" json:"lastUpdated"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Record) TableName() string {
	return "inventory_record"
}
