package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"stocknet.GO/core/cache"
	alertEntity "stocknet.GO/model/entity/alert"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	alertRepo "stocknet.GO/model/repository/alert"
	inventoryRepo "stocknet.GO/model/repository/inventory"
	replenishmentRepo "stocknet.GO/model/repository/replenishment"
)

// SweepResult counts what one alert sweep did.
type SweepResult struct {
	Checked int `json:"checked"`
	Raised  int `json:"raised"`
	Cleared int `json:"cleared"`
	Skipped int `json:"skipped"`
}

// SweepAlerts re-evaluates every (sweep product, regional warehouse) pair and
// reconciles the alert table: raise on breach, clear on recovery. Products
// with an open replenishment request are skipped so a request already in
// flight is not double-alerted. Warehouses are swept concurrently; pairs
// within a warehouse sequentially.
func (s *Service) SweepAlerts(ctx context.Context) (*SweepResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SweepResult, len(s.net.Warehouses))

	i := 0
	for _, wh := range s.net.Warehouses {
		idx, wh := i, wh
		i++
		g.Go(func() error {
			res, err := s.sweepWarehouse(ctx, wh.ID, wh.Name)
			if err != nil {
				return fmt.Errorf("sweep %s: %w", wh.ID, err)
			}
			results[idx] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &SweepResult{}
	for _, r := range results {
		total.Checked += r.Checked
		total.Raised += r.Raised
		total.Cleared += r.Cleared
		total.Skipped += r.Skipped
	}
	if total.Raised > 0 || total.Cleared > 0 {
		cache.GetInstance().DeleteByTag(AlertsCacheTag)
	}
	log.Printf("[Alert Sweep] checked=%d, raised=%d, cleared=%d, skipped=%d",
		total.Checked, total.Raised, total.Cleared, total.Skipped)
	return total, nil
}

func (s *Service) sweepWarehouse(ctx context.Context, warehouseID, warehouseName string) (*SweepResult, error) {
	res := &SweepResult{}
	records := inventoryRepo.NewInventoryRepository(s.db)
	alerts := alertRepo.NewAlertRepository(s.db)
	requests := replenishmentRepo.NewRequestRepository(s.db)

	for _, productID := range s.net.SweepProducts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := records.Get(productID, warehouseID)
		if errors.Is(err, inventoryEntity.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		res.Checked++

		ev := Evaluate(rec.TotalStock, rec.Available)
		if !ev.Breached {
			if err := alerts.DeleteFor(productID, warehouseID); err != nil {
				return nil, err
			}
			res.Cleared++
			continue
		}

		open, err := requests.FindOpen(productID, warehouseID)
		if err != nil {
			return nil, err
		}
		if open != nil {
			res.Skipped++
			continue
		}

		err = alerts.Upsert(&alertEntity.ReplenishmentAlert{
			AlertID:       alertEntity.NewAlertID(),
			ProductID:     productID,
			ProductName:   rec.ProductName,
			WarehouseID:   warehouseID,
			WarehouseName: warehouseName,
			Stock:         rec.Available,
			Suggested:     ev.Suggested,
			Trigger:       fmt.Sprintf("Periodic sweep: inventory below 30%% of total stock (current: %d < %d)", rec.Available, ev.Threshold),
			Level:         ev.Level,
			LevelLabel:    ev.LevelLabel,
			Threshold:     ev.Threshold,
			ShortageQty:   ev.Shortage,
		})
		if err != nil {
			return nil, err
		}
		res.Raised++
	}
	return res, nil
}
