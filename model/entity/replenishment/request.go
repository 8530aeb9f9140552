package replenishment

import (
	"time"

	"gorm.io/datatypes"
)

// Request statuses. PENDING/PROCESSING/APPROVED are "open": only one open
// request may exist per (product, warehouse) at a time.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusInTransit  = "IN_TRANSIT"
)

// Progress step states used in the request progress log.
const (
	StepCompleted  = "completed"
	StepProcessing = "processing"
)

// ProgressStep is one entry of the append-only request progress log.
type ProgressStep struct {
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Request is a replenishment application from a warehouse towards its
// supplying tier (store→regional warehouse, or regional→central).
//
// Open is 1 while the request is in an open status and NULL otherwise, so
// the sparse unique index (product_id, warehouse_id, open) lets any number
// of closed requests coexist while a second concurrent open creator hits a
// duplicate-key error instead of duplicating work.
type Request struct {
	ID            uint                              `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	RequestID     string                            `gorm:"column:request_id;type:varchar(32);not null;uniqueIndex:idx_request_id" json:"requestId"`
	ProductID     string                            `gorm:"column:product_id;type:varchar(64);not null;uniqueIndex:idx_request_open_dedup,priority:1" json:"productId"`
	ProductName   string                            `gorm:"column:product_name;type:varchar(255)" json:"productName"`
	Vendor        string                            `gorm:"column:vendor;type:varchar(255)" json:"vendor"`
	Quantity      int                               `gorm:"column:quantity;not null" json:"quantity"`
	DeliveryDate  time.Time                         `gorm:"column:delivery_date" json:"deliveryDate"`
	Remark        string                            `gorm:"column:remark;type:varchar(512)" json:"remark"`
	WarehouseID   string                            `gorm:"column:warehouse_id;type:varchar(64);not null;uniqueIndex:idx_request_open_dedup,priority:2;index:idx_request_warehouse" json:"warehouseId"`
	WarehouseName string                            `gorm:"column:warehouse_name;type:varchar(255)" json:"warehouseName"`
	Reason        string                            `gorm:"column:reason;type:varchar(512)" json:"reason"`
	Status        string                            `gorm:"column:status;type:varchar(16);not null;default:PENDING;index:idx_request_status" json:"status"`
	Open          *int8                             `gorm:"column:open;uniqueIndex:idx_request_open_dedup,priority:3" json:"-"`
	Progress      datatypes.JSONSlice[ProgressStep] `gorm:"column:progress" json:"progress"`
	CreatedAt     time.Time                         `json:"createdAt"`
	UpdatedAt     time.Time                         `json:"updatedAt"`
}

func (Request) TableName() string {
	return "replenishment_request"
}

// IsOpen reports whether the status still blocks creation of a new request
// for the same (product, warehouse).
func IsOpen(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusApproved:
		return true
	}
	return false
}

// SetStatus updates the status and keeps the sparse dedup column in sync.
func (r *Request) SetStatus(status string) {
	r.Status = status
	if IsOpen(status) {
		one := int8(1)
		r.Open = &one
	} else {
		r.Open = nil
	}
}

// AppendProgress adds one entry to the progress log. The log is append-only;
// callers must never reorder it.
func (r *Request) AppendProgress(title, desc, status string, at time.Time) {
	r.Progress = append(r.Progress, ProgressStep{
		Title:     title,
		Desc:      desc,
		Status:    status,
		Timestamp: at,
	})
}
