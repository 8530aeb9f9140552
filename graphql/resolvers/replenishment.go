package resolvers

import (
	"context"
	"time"

	gqlmodels "stocknet.GO/graphql/models"
	replenishmentRepo "stocknet.GO/model/repository/replenishment"
)

// ApplicationsArgs matches the applications query arguments.
type ApplicationsArgs struct {
	Status      *string
	WarehouseID *string
}

// Applications lists replenishment requests, newest first.
func (r *QueryResolver) Applications(ctx context.Context, args ApplicationsArgs) ([]*gqlmodels.ReplenishmentRequest, error) {
	reqs, err := replenishmentRepo.NewRequestRepository(r.db).List(replenishmentRepo.ListFilter{
		Status:      deref(args.Status),
		WarehouseID: deref(args.WarehouseID),
	})
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.ReplenishmentRequest, 0, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		progress := make([]gqlmodels.ProgressStep, 0, len(req.Progress))
		for _, step := range req.Progress {
			progress = append(progress, gqlmodels.ProgressStep{
				Title:     step.Title,
				Desc:      step.Desc,
				Status:    step.Status,
				Timestamp: step.Timestamp.Format(time.RFC3339),
			})
		}
		out = append(out, &gqlmodels.ReplenishmentRequest{
			RequestID:     req.RequestID,
			ProductID:     req.ProductID,
			ProductName:   req.ProductName,
			Vendor:        req.Vendor,
			Quantity:      int32(req.Quantity),
			DeliveryDate:  req.DeliveryDate.Format(time.RFC3339),
			Remark:        req.Remark,
			WarehouseID:   req.WarehouseID,
			WarehouseName: req.WarehouseName,
			Reason:        req.Reason,
			Status:        req.Status,
			Progress:      progress,
		})
	}
	return out, nil
}
