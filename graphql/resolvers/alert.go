package resolvers

import (
	"context"

	gqlmodels "stocknet.GO/graphql/models"
	alertRepo "stocknet.GO/model/repository/alert"
)

// AlertsArgs matches the alerts query arguments.
type AlertsArgs struct {
	WarehouseID *string
}

// Alerts lists current replenishment alerts, newest first.
func (r *QueryResolver) Alerts(ctx context.Context, args AlertsArgs) ([]*gqlmodels.ReplenishmentAlert, error) {
	alerts, err := alertRepo.NewAlertRepository(r.db).List(deref(args.WarehouseID))
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.ReplenishmentAlert, 0, len(alerts))
	for i := range alerts {
		a := &alerts[i]
		out = append(out, &gqlmodels.ReplenishmentAlert{
			AlertID:       a.AlertID,
			ProductID:     a.ProductID,
			ProductName:   a.ProductName,
			WarehouseID:   a.WarehouseID,
			WarehouseName: a.WarehouseName,
			Stock:         int32(a.Stock),
			Suggested:     int32(a.Suggested),
			Trigger:       a.Trigger,
			Level:         a.Level,
			LevelLabel:    a.LevelLabel,
			Threshold:     int32(a.Threshold),
			ShortageQty:   int32(a.ShortageQty),
		})
	}
	return out, nil
}
