package inventory

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "stocknet.GO/model/entity/inventory"
)

// Defaults are the tier capacity values applied when a record is created
// lazily. Creation-time only; existing records never change tier.
type Defaults struct {
	TotalStock   int
	MinThreshold int
	MaxThreshold int
}

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *InventoryRepository) WithTx(tx *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: tx}
}

// Get returns the record for (product, location).
func (r *InventoryRepository) Get(productID, locationID string) (*inventoryEntity.Record, error) {
	var rec inventoryEntity.Record
	err := r.db.Where("product_id = ? AND location_id = ?", productID, locationID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventoryEntity.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListByLocation returns all records at one location.
func (r *InventoryRepository) ListByLocation(locationID string) ([]inventoryEntity.Record, error) {
	var recs []inventoryEntity.Record
	err := r.db.Where("location_id = ?", locationID).Order("product_id").Find(&recs).Error
	return recs, err
}

// List returns all records.
func (r *InventoryRepository) List() ([]inventoryEntity.Record, error) {
	var recs []inventoryEntity.Record
	err := r.db.Order("location_id, product_id").Find(&recs).Error
	return recs, err
}

// AdjustOrCreate creates the record if absent (with tier defaults and
// available=0) and then applies available += delta as one guarded UPDATE:
//
//	available = available + ?  WHERE 0 <= available+? <= total_stock
//
// The increment happens inside the storage engine, so concurrent adjusters
// serialize on the row instead of racing a read-modify-write. A zero-row
// update is classified by re-reading the record.
func (r *InventoryRepository) AdjustOrCreate(productID, productName, locationID, locationName, region string, delta int, defs Defaults) (*inventoryEntity.Record, error) {
	if productName == "" {
		productName = productID
	}
	if locationName == "" {
		locationName = locationID
	}
	now := time.Now()

	// Lazy create; DoNothing makes a concurrent double-create harmless.
	seed := inventoryEntity.Record{
		ProductID:    productID,
		ProductName:  productName,
		LocationID:   locationID,
		LocationName: locationName,
		Region:       region,
		TotalStock:   defs.TotalStock,
		Available:    0,
		MinThreshold: defs.MinThreshold,
		MaxThreshold: defs.MaxThreshold,
		LastUpdated:  now,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
		DoNothing: true,
	}).Create(&seed).Error
	if err != nil {
		return nil, fmt.Errorf("inventory create: %w", err)
	}

	res := r.db.Model(&inventoryEntity.Record{}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Where("available + ? >= 0 AND available + ? <= total_stock", delta, delta).
		Updates(map[string]interface{}{
			"available":     gorm.Expr("available + ?", delta),
			"product_name":  productName,
			"location_name": locationName,
			"last_updated":  now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("inventory adjust: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		rec, err := r.Get(productID, locationID)
		if err != nil {
			return nil, err
		}
		if rec.Available+delta < 0 {
			return nil, fmt.Errorf("%w: product %s at %s (available: %d, requested: %d)",
				inventoryEntity.ErrInsufficientStock, productID, locationID, rec.Available, -delta)
		}
		return nil, fmt.Errorf("%w: product %s at %s (total stock: %d, requested: %d)",
			inventoryEntity.ErrCapacityExceeded, productID, locationID, rec.TotalStock, rec.Available+delta)
	}

	return r.Get(productID, locationID)
}
