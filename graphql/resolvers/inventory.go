package resolvers

import (
	"context"

	"stocknet.GO/graphql"
	gqlmodels "stocknet.GO/graphql/models"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	inventoryRepo "stocknet.GO/model/repository/inventory"
)

// InventoryArgs matches the inventory query arguments.
type InventoryArgs struct {
	LocationID *string
	ProductID  *string
}

// Inventory lists ledger records. The location scope falls back to the
// request's Location header when the argument is absent.
func (r *QueryResolver) Inventory(ctx context.Context, args InventoryArgs) ([]*gqlmodels.InventoryRecord, error) {
	locationID := deref(args.LocationID)
	if locationID == "" {
		locationID = graphql.LocationFromContext(ctx)
	}

	repo := inventoryRepo.NewInventoryRepository(r.db)
	var records []inventoryEntity.Record
	var err error
	if locationID != "" {
		records, err = repo.ListByLocation(locationID)
	} else {
		records, err = repo.List()
	}
	if err != nil {
		return nil, err
	}

	productID := deref(args.ProductID)
	out := make([]*gqlmodels.InventoryRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		if productID != "" && rec.ProductID != productID {
			continue
		}
		out = append(out, &gqlmodels.InventoryRecord{
			ProductID:    rec.ProductID,
			ProductName:  rec.ProductName,
			LocationID:   rec.LocationID,
			LocationName: rec.LocationName,
			Region:       rec.Region,
			TotalStock:   int32(rec.TotalStock),
			Available:    int32(rec.Available),
			MinThreshold: int32(rec.MinThreshold),
			MaxThreshold: int32(rec.MaxThreshold),
		})
	}
	return out, nil
}
