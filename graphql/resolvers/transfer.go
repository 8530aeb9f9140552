package resolvers

import (
	"context"
	"time"

	gqlmodels "stocknet.GO/graphql/models"
	transferRepo "stocknet.GO/model/repository/transfer"
)

// TransfersArgs matches the transfers query arguments.
type TransfersArgs struct {
	LocationID *string
	Status     *string
}

// Transfers lists transfer orders, newest first. LocationID matches either
// end of the route.
func (r *QueryResolver) Transfers(ctx context.Context, args TransfersArgs) ([]*gqlmodels.TransferOrder, error) {
	orders, err := transferRepo.NewTransferRepository(r.db).List(transferRepo.ListFilter{
		LocationID: deref(args.LocationID),
		Status:     deref(args.Status),
	})
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.TransferOrder, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		history := make([]gqlmodels.HistoryEntry, 0, len(o.History))
		for _, h := range o.History {
			history = append(history, gqlmodels.HistoryEntry{
				Status:    h.Status,
				Note:      h.Note,
				CreatedAt: h.CreatedAt.Format(time.RFC3339),
			})
		}
		out = append(out, &gqlmodels.TransferOrder{
			TransferID:       o.TransferID,
			ProductSKU:       o.ProductSKU,
			ProductName:      o.ProductName,
			Quantity:         int32(o.Quantity),
			FromLocationID:   o.FromLocationID,
			FromLocationName: o.FromLocationName,
			ToLocationID:     o.ToLocationID,
			ToLocationName:   o.ToLocationName,
			Status:           o.Status,
			Carrier:          o.Carrier,
			DispatchRemark:   o.DispatchRemark,
			History:          history,
		})
	}
	return out, nil
}
