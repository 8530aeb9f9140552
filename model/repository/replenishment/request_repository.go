package replenishment

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	replenishmentEntity "stocknet.GO/model/entity/replenishment"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *RequestRepository) WithTx(tx *gorm.DB) *RequestRepository {
	return &RequestRepository{db: tx}
}

// isDuplicateKey detects a unique-constraint violation across mysql and sqlite.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// CreateOpen inserts a new open request. The sparse unique index on
// (product_id, warehouse_id, open) rejects a second open request for the
// same pair: the caller gets ErrOpenRequestExists and treats it as
// already-covered, not a failure. A collision on the display request id
// (random suffix) is retried once with a regenerated id.
func (r *RequestRepository) CreateOpen(req *replenishmentEntity.Request, regenID func() string) error {
	req.SetStatus(req.Status)
	err := r.db.Create(req).Error
	if err == nil {
		return nil
	}
	if !isDuplicateKey(err) {
		return err
	}
	if open, ferr := r.FindOpen(req.ProductID, req.WarehouseID); ferr == nil && open != nil {
		return replenishmentEntity.ErrOpenRequestExists
	}
	// Display-ID collision: regenerate once and retry.
	req.ID = 0
	req.RequestID = regenID()
	if err := r.db.Create(req).Error; err != nil {
		if isDuplicateKey(err) {
			return replenishmentEntity.ErrOpenRequestExists
		}
		return err
	}
	return nil
}

// FindOpen returns the open request for (product, warehouse), or nil.
func (r *RequestRepository) FindOpen(productID, warehouseID string) (*replenishmentEntity.Request, error) {
	var req replenishmentEntity.Request
	err := r.db.Where("product_id = ? AND warehouse_id = ? AND open = 1", productID, warehouseID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// FindByRequestID returns the request with the given display id.
func (r *RequestRepository) FindByRequestID(requestID string) (*replenishmentEntity.Request, error) {
	var req replenishmentEntity.Request
	err := r.db.Where("request_id = ?", requestID).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, replenishmentEntity.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Save persists status/progress changes.
func (r *RequestRepository) Save(req *replenishmentEntity.Request) error {
	return r.db.Save(req).Error
}

// ListFilter narrows List results; zero values mean no filtering.
type ListFilter struct {
	Status      string
	WarehouseID string
	Vendor      string
	Limit       int
}

// List returns requests, newest first.
func (r *RequestRepository) List(f ListFilter) ([]replenishmentEntity.Request, error) {
	q := r.db.Order("created_at DESC")
	if f.Status != "" && f.Status != "ALL" {
		q = q.Where("status = ?", f.Status)
	}
	if f.WarehouseID != "" {
		q = q.Where("warehouse_id = ?", f.WarehouseID)
	}
	if f.Vendor != "" {
		q = q.Where("vendor = ?", f.Vendor)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var reqs []replenishmentEntity.Request
	err := q.Find(&reqs).Error
	return reqs, err
}
