package transfer

import (
	"time"

	"gorm.io/datatypes"
)

// Transfer order statuses. PENDING/IN_TRANSIT are "open": only one open
// order may exist per (product, from, to) route at a time.
const (
	StatusPending   = "PENDING"
	StatusInTransit = "IN_TRANSIT"
	StatusReceived  = "RECEIVED"
)

// HistoryEntry is one entry of the append-only transfer history log.
type HistoryEntry struct {
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order is a physical stock movement between two locations.
//
// Two creation paths exist and stay distinct: auto-generated low-stock
// transfers are created PENDING with inventory untouched until dispatch,
// while manual allocations are created directly IN_TRANSIT with the source
// already debited (InventoryUpdated=true). Open mirrors the request dedup
// scheme: 1 while PENDING/IN_TRANSIT, NULL once RECEIVED.
type Order struct {
	ID               uint                              `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	TransferID       string                            `gorm:"column:transfer_id;type:varchar(32);not null;uniqueIndex:idx_transfer_id" json:"transferId"`
	ProductSKU       string                            `gorm:"column:product_sku;type:varchar(64);not null;uniqueIndex:idx_transfer_open_dedup,priority:1" json:"productSku"`
	ProductName      string                            `gorm:"column:product_name;type:varchar(255)" json:"productName"`
	Quantity         int                               `gorm:"column:quantity;not null" json:"quantity"`
	FromLocationID   string                            `gorm:"column:from_location_id;type:varchar(64);not null;uniqueIndex:idx_transfer_open_dedup,priority:2;index:idx_transfer_from" json:"fromLocationId"`
	FromLocationName string                            `gorm:"column:from_location_name;type:varchar(255)" json:"fromLocationName"`
	ToLocationID     string                            `gorm:"column:to_location_id;type:varchar(64);not null;uniqueIndex:idx_transfer_open_dedup,priority:3;index:idx_transfer_to" json:"toLocationId"`
	ToLocationName   string                            `gorm:"column:to_location_name;type:varchar(255)" json:"toLocationName"`
	Status           string                            `gorm:"column:status;type:varchar(16);not null;default:PENDING;index:idx_transfer_status" json:"status"`
	Open             *int8                             `gorm:"column:open;uniqueIndex:idx_transfer_open_dedup,priority:4" json:"-"`
	History          datatypes.JSONSlice[HistoryEntry] `gorm:"column:history" json:"history"`
	InventoryUpdated bool                              `gorm:"column:inventory_updated;not null;default:false" json:"inventoryUpdated"`
	RequestID        string                            `gorm:"column:request_id;type:varchar(32)" json:"requestId,omitempty"`
	Carrier          string                            `gorm:"column:carrier;type:varchar(128)" json:"carrier,omitempty"`
	Departure        *time.Time                        `gorm:"column:departure" json:"departure,omitempty"`
	DispatchRemark   string                            `gorm:"column:dispatch_remark;type:varchar(512)" json:"dispatchRemark,omitempty"`
	CreatedAt        time.Time                         `json:"createdAt"`
	UpdatedAt        time.Time                         `json:"updatedAt"`
}

func (Order) TableName() string {
	return "transfer_order"
}

// IsOpen reports whether the status still blocks creation of a new transfer
// on the same route.
func IsOpen(status string) bool {
	return status == StatusPending || status == StatusInTransit
}

// SetStatus updates the status and keeps the sparse dedup column in sync.
func (o *Order) SetStatus(status string) {
	o.Status = status
	if IsOpen(status) {
		one := int8(1)
		o.Open = &one
	} else {
		o.Open = nil
	}
}

// AppendHistory adds one entry to the history log (append-only).
func (o *Order) AppendHistory(status, note string, at time.Time) {
	o.History = append(o.History, HistoryEntry{Status: status, Note: note, CreatedAt: at})
}
