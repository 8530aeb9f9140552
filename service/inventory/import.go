package inventory

import (
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	inventoryEntity "stocknet.GO/model/entity/inventory"
)

// RecordInput is the JSON input for the bulk inventory import API.
type RecordInput struct {
	ProductID    string `json:"productId" validate:"required"`
	ProductName  string `json:"productName"`
	LocationID   string `json:"locationId" validate:"required"`
	LocationName string `json:"locationName"`
	TotalStock   *int   `json:"totalStock"`
	Available    *int   `json:"available"`
	MinThreshold *int   `json:"minThreshold"`
	MaxThreshold *int   `json:"maxThreshold"`
}

// ImportResult holds the result of a bulk import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// ImportRecords bulk-upserts ledger records, keyed on (product, location).
// Unset numeric fields fall back to the location's tier defaults; available
// defaults to full stock. This is a seeding/correction path: it bypasses the
// cascade on purpose, so imports never fan out transfers or requests.
func (s *Service) ImportRecords(items []RecordInput, batchSize int) (*ImportResult, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	result := &ImportResult{}

	rows := make([]inventoryEntity.Record, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.LocationID == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings, "missing productId or locationId, skipping")
			continue
		}
		defs := s.net.DefaultsFor(it.LocationID)
		rec := inventoryEntity.Record{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			LocationID:   it.LocationID,
			LocationName: it.LocationName,
			Region:       s.net.Region(it.LocationID),
			TotalStock:   defs.TotalStock,
			MinThreshold: defs.MinThreshold,
			MaxThreshold: defs.MaxThreshold,
			LastUpdated:  time.Now(),
		}
		if it.TotalStock != nil {
			rec.TotalStock = *it.TotalStock
		}
		rec.Available = rec.TotalStock
		if it.Available != nil {
			rec.Available = *it.Available
		}
		if it.MinThreshold != nil {
			rec.MinThreshold = *it.MinThreshold
		}
		if it.MaxThreshold != nil {
			rec.MaxThreshold = *it.MaxThreshold
		}
		if rec.Available < 0 || rec.Available > rec.TotalStock {
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s at %s: available %d outside [0, %d]", it.ProductID, it.LocationID, rec.Available, rec.TotalStock))
			continue
		}
		rows = append(rows, rec)
	}

	if len(rows) > 0 {
		upsert := clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_name", "location_name", "region", "total_stock", "available",
				"min_threshold", "max_threshold", "last_updated",
			}),
		}
		if err := s.db.Clauses(upsert).CreateInBatches(rows, batchSize).Error; err != nil {
			return nil, fmt.Errorf("inventory upsert: %w", err)
		}
	}

	result.Imported = len(rows)
	return result, nil
}
