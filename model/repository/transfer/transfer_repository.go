package transfer

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	transferEntity "stocknet.GO/model/entity/transfer"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *TransferRepository) WithTx(tx *gorm.DB) *TransferRepository {
	return &TransferRepository{db: tx}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// CreateOpen inserts a new open transfer order. The sparse unique index on
// (product_sku, from_location_id, to_location_id, open) rejects a second
// open order on the same route (ErrOpenTransferExists); display-ID
// collisions are retried once with a regenerated id.
func (r *TransferRepository) CreateOpen(o *transferEntity.Order, regenID func() string) error {
	o.SetStatus(o.Status)
	err := r.db.Create(o).Error
	if err == nil {
		return nil
	}
	if !isDuplicateKey(err) {
		return err
	}
	if open, ferr := r.FindOpen(o.ProductSKU, o.FromLocationID, o.ToLocationID); ferr == nil && open != nil {
		return transferEntity.ErrOpenTransferExists
	}
	o.ID = 0
	o.TransferID = regenID()
	if err := r.db.Create(o).Error; err != nil {
		if isDuplicateKey(err) {
			return transferEntity.ErrOpenTransferExists
		}
		return err
	}
	return nil
}

// FindOpen returns the open (PENDING or IN_TRANSIT) order on a route, or nil.
func (r *TransferRepository) FindOpen(productSKU, fromID, toID string) (*transferEntity.Order, error) {
	var o transferEntity.Order
	err := r.db.Where("product_sku = ? AND from_location_id = ? AND to_location_id = ? AND open = 1",
		productSKU, fromID, toID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// FindPending returns the PENDING order on a route, or nil.
func (r *TransferRepository) FindPending(productSKU, fromID, toID string) (*transferEntity.Order, error) {
	var o transferEntity.Order
	err := r.db.Where("product_sku = ? AND from_location_id = ? AND to_location_id = ? AND status = ?",
		productSKU, fromID, toID, transferEntity.StatusPending).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// FindByTransferID returns the order with the given display id.
func (r *TransferRepository) FindByTransferID(transferID string) (*transferEntity.Order, error) {
	var o transferEntity.Order
	err := r.db.Where("transfer_id = ?", transferID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transferEntity.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Save persists status/history/quantity changes.
func (r *TransferRepository) Save(o *transferEntity.Order) error {
	return r.db.Save(o).Error
}

// CreateSchedule inserts the receiving plan linked to a dispatched transfer.
func (r *TransferRepository) CreateSchedule(s *transferEntity.ReceivingSchedule) error {
	return r.db.Create(s).Error
}

// ListFilter narrows List results; zero values mean no filtering.
// LocationID matches either end of the route.
type ListFilter struct {
	LocationID string
	Status     string
}

// List returns transfer orders, newest first.
func (r *TransferRepository) List(f ListFilter) ([]transferEntity.Order, error) {
	q := r.db.Order("created_at DESC")
	if f.LocationID != "" {
		q = q.Where("from_location_id = ? OR to_location_id = ?", f.LocationID, f.LocationID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var orders []transferEntity.Order
	err := q.Find(&orders).Error
	return orders, err
}
