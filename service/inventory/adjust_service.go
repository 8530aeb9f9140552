package inventory

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"stocknet.GO/config"
	"stocknet.GO/core/cache"
	alertEntity "stocknet.GO/model/entity/alert"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	replenishmentEntity "stocknet.GO/model/entity/replenishment"
	transferEntity "stocknet.GO/model/entity/transfer"
	alertRepo "stocknet.GO/model/repository/alert"
	inventoryRepo "stocknet.GO/model/repository/inventory"
	replenishmentRepo "stocknet.GO/model/repository/replenishment"
	transferRepo "stocknet.GO/model/repository/transfer"
)

// ErrInvalidAdjustment covers missing identifiers or a zero delta.
var ErrInvalidAdjustment = errors.New("productSku, locationId and delta are required for inventory adjustment")

const deliveryEstimate = 3 * 24 * time.Hour

// AlertsCacheTag tags cached alert listings; any write that can touch the
// alert table invalidates it.
const AlertsCacheTag = "alerts"

// Service is the adjustment orchestrator: the single entry point for stock
// mutation. Every delta flows through one transaction that updates the
// ledger and drives the alert/request/transfer cascade before returning.
type Service struct {
	db  *gorm.DB
	net *config.Network
}

func NewService(db *gorm.DB, net *config.Network) *Service {
	return &Service{db: db, net: net}
}

// Network exposes the injected topology (read-only) to callers.
func (s *Service) Network() *config.Network {
	return s.net
}

// AdjustInput identifies one stock mutation. Names are display fallbacks and
// may be empty.
type AdjustInput struct {
	ProductSKU   string
	ProductName  string
	LocationID   string
	LocationName string
	Delta        int
}

// Adjust applies the delta and the full cascade as one transaction.
func (s *Service) Adjust(in AdjustInput) (*inventoryEntity.Record, error) {
	var rec *inventoryEntity.Record
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rec, err = s.AdjustTx(tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	cache.GetInstance().DeleteByTag(AlertsCacheTag)
	return rec, nil
}

// AdjustTx is Adjust running inside a caller-owned transaction. The transfer
// workflow uses it so a dispatch debits, credits and cascades atomically.
func (s *Service) AdjustTx(tx *gorm.DB, in AdjustInput) (*inventoryEntity.Record, error) {
	if in.ProductSKU == "" || in.LocationID == "" || in.Delta == 0 {
		return nil, ErrInvalidAdjustment
	}

	defs := s.net.DefaultsFor(in.LocationID)
	rec, err := inventoryRepo.NewInventoryRepository(tx).AdjustOrCreate(
		in.ProductSKU, in.ProductName, in.LocationID, in.LocationName,
		s.net.Region(in.LocationID), in.Delta,
		inventoryRepo.Defaults{
			TotalStock:   defs.TotalStock,
			MinThreshold: defs.MinThreshold,
			MaxThreshold: defs.MaxThreshold,
		})
	if err != nil {
		// Primary mutation failed: no cascade step may run.
		return nil, err
	}

	switch {
	case s.net.IsStore(rec.LocationID):
		err = s.cascadeStore(tx, rec)
	case s.net.IsRegionalWarehouse(rec.LocationID):
		err = s.cascadeWarehouse(tx, rec)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Inventory Updated] productId=%s, locationId=%s, available=%d, totalStock=%d",
		rec.ProductID, rec.LocationID, rec.Available, rec.TotalStock)
	return rec, nil
}

// cascadeStore reacts to a store-level threshold breach: queue a pending
// transfer from the resident regional warehouse, raise a replenishment
// request towards central if none is open, and mirror the breach into the
// alert registry.
func (s *Service) cascadeStore(tx *gorm.DB, rec *inventoryEntity.Record) error {
	wh, ok := s.net.WarehouseForStore(rec.LocationID)
	if !ok {
		return nil
	}
	ev := Evaluate(rec.TotalStock, rec.Available)
	if !ev.Breached {
		return nil
	}

	if ev.Suggested > 0 {
		if err := s.queueStoreTransfer(tx, rec, wh, ev); err != nil {
			return err
		}
	}

	requests := replenishmentRepo.NewRequestRepository(tx)
	existing, err := requests.FindOpen(rec.ProductID, wh.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		qty := rec.TotalStock - rec.Available
		if qty <= 0 {
			qty = rec.MinThreshold
		}
		now := time.Now()
		req := &replenishmentEntity.Request{
			RequestID:     replenishmentEntity.NewRequestID(),
			ProductID:     rec.ProductID,
			ProductName:   rec.ProductName,
			Vendor:        s.net.CentralName,
			Quantity:      qty,
			DeliveryDate:  now.Add(deliveryEstimate),
			Remark:        fmt.Sprintf("Auto request from %s", rec.LocationName),
			WarehouseID:   wh.ID,
			WarehouseName: wh.Name,
			Reason:        fmt.Sprintf("Store inventory below %d", ev.Threshold),
			Status:        replenishmentEntity.StatusPending,
		}
		req.AppendProgress("Replenishment Alert Generated",
			fmt.Sprintf("%s below threshold at %s", rec.ProductName, rec.LocationName),
			replenishmentEntity.StepCompleted, now)
		req.AppendProgress("Application Submitted",
			fmt.Sprintf("%s auto request %d units", wh.Name, qty),
			replenishmentEntity.StepCompleted, now)
		req.AppendProgress("Waiting for Approval", "Awaiting central approval",
			replenishmentEntity.StepProcessing, now)

		err := requests.CreateOpen(req, replenishmentEntity.NewRequestID)
		if err != nil && !errors.Is(err, replenishmentEntity.ErrOpenRequestExists) {
			return err
		}
		if err == nil {
			log.Printf("[Request Created] requestId=%s, productId=%s, warehouseId=%s, quantity=%d",
				req.RequestID, rec.ProductID, wh.ID, qty)
		}
	}

	return alertRepo.NewAlertRepository(tx).Upsert(&alertEntity.ReplenishmentAlert{
		AlertID:       alertEntity.NewAlertID(),
		ProductID:     rec.ProductID,
		ProductName:   rec.ProductName,
		WarehouseID:   wh.ID,
		WarehouseName: wh.Name,
		Stock:         rec.Available,
		Suggested:     ev.Suggested,
		Trigger:       fmt.Sprintf("Store inventory below threshold at %s (current: %d < %d)", rec.LocationID, rec.Available, ev.Threshold),
		Level:         ev.Level,
		LevelLabel:    ev.LevelLabel,
		Threshold:     ev.Threshold,
		ShortageQty:   ev.Shortage,
	})
}

// queueStoreTransfer creates or grows the pending transfer covering a store
// breach. At most one open order per (product, from, to): an existing
// PENDING order absorbs the new suggestion via max(), an IN_TRANSIT order
// suppresses creation entirely.
func (s *Service) queueStoreTransfer(tx *gorm.DB, rec *inventoryEntity.Record, wh config.Warehouse, ev Evaluation) error {
	transfers := transferRepo.NewTransferRepository(tx)

	pending, err := transfers.FindPending(rec.ProductID, wh.ID, rec.LocationID)
	if err != nil {
		return err
	}
	if pending != nil {
		if ev.Suggested > pending.Quantity {
			old := pending.Quantity
			pending.Quantity = ev.Suggested
			pending.AppendHistory(transferEntity.StatusPending,
				fmt.Sprintf("Updated quantity: %d → %d units (current stock: %d)", old, ev.Suggested, rec.Available),
				time.Now())
			if err := transfers.Save(pending); err != nil {
				return err
			}
			log.Printf("[Transfer Updated] transferId=%s, productId=%s, quantity=%d → %d",
				pending.TransferID, rec.ProductID, old, ev.Suggested)
		}
		return nil
	}

	open, err := transfers.FindOpen(rec.ProductID, wh.ID, rec.LocationID)
	if err != nil {
		return err
	}
	if open != nil {
		// Already in transit; the shipment on the way covers the breach.
		return nil
	}

	order := &transferEntity.Order{
		TransferID:       transferEntity.NewTransferID(),
		ProductSKU:       rec.ProductID,
		ProductName:      rec.ProductName,
		Quantity:         ev.Suggested,
		FromLocationID:   wh.ID,
		FromLocationName: wh.Name,
		ToLocationID:     rec.LocationID,
		ToLocationName:   rec.LocationName,
		Status:           transferEntity.StatusPending,
		InventoryUpdated: false,
	}
	order.AppendHistory(transferEntity.StatusPending,
		fmt.Sprintf("Auto-created transfer: replenish %d units for low stock at %s (current: %d)",
			ev.Suggested, rec.LocationID, rec.Available),
		time.Now())

	err = transfers.CreateOpen(order, transferEntity.NewTransferID)
	if errors.Is(err, transferEntity.ErrOpenTransferExists) {
		// Concurrent creator won the race; nothing left to do.
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("[Transfer Created] transferId=%s, productId=%s, from=%s, to=%s, quantity=%d, currentStock=%d",
		order.TransferID, rec.ProductID, wh.ID, rec.LocationID, ev.Suggested, rec.Available)
	return nil
}

// cascadeWarehouse reacts to a regional-warehouse evaluation: raise the
// alert and an auto request towards central on breach, retract the alert on
// recovery.
func (s *Service) cascadeWarehouse(tx *gorm.DB, rec *inventoryEntity.Record) error {
	ev := Evaluate(rec.TotalStock, rec.Available)
	alerts := alertRepo.NewAlertRepository(tx)

	if !ev.Breached {
		return alerts.DeleteFor(rec.ProductID, rec.LocationID)
	}

	requests := replenishmentRepo.NewRequestRepository(tx)
	existing, err := requests.FindOpen(rec.ProductID, rec.LocationID)
	if err != nil {
		return err
	}
	if existing == nil && ev.Suggested > 0 {
		now := time.Now()
		req := &replenishmentEntity.Request{
			RequestID:     replenishmentEntity.NewRequestID(),
			ProductID:     rec.ProductID,
			ProductName:   rec.ProductName,
			Vendor:        s.net.CentralName,
			Quantity:      ev.Suggested,
			DeliveryDate:  now.Add(deliveryEstimate),
			Remark:        fmt.Sprintf("Auto-request: replenish %d units to reach target stock", ev.Suggested),
			WarehouseID:   rec.LocationID,
			WarehouseName: rec.LocationName,
			Reason:        fmt.Sprintf("Regional warehouse inventory below 30%% of total stock (current: %d < %d)", rec.Available, ev.Threshold),
			Status:        replenishmentEntity.StatusPending,
		}
		req.AppendProgress("Replenishment Alert Generated",
			fmt.Sprintf("%s below threshold at %s", rec.ProductName, rec.LocationName),
			replenishmentEntity.StepCompleted, now)
		req.AppendProgress("Application Auto-Submitted",
			fmt.Sprintf("%s auto-requested %d units from %s", rec.LocationName, ev.Suggested, s.net.CentralName),
			replenishmentEntity.StepCompleted, now)
		req.AppendProgress("Waiting for Approval", "Awaiting central approval",
			replenishmentEntity.StepProcessing, now)

		err := requests.CreateOpen(req, replenishmentEntity.NewRequestID)
		if err != nil && !errors.Is(err, replenishmentEntity.ErrOpenRequestExists) {
			return err
		}
		if err == nil {
			log.Printf("[Request Created] requestId=%s, productId=%s, warehouseId=%s, quantity=%d",
				req.RequestID, rec.ProductID, rec.LocationID, ev.Suggested)
		}
	}

	return alerts.Upsert(&alertEntity.ReplenishmentAlert{
		AlertID:       alertEntity.NewAlertID(),
		ProductID:     rec.ProductID,
		ProductName:   rec.ProductName,
		WarehouseID:   rec.LocationID,
		WarehouseName: rec.LocationName,
		Stock:         rec.Available,
		Suggested:     ev.Suggested,
		Trigger:       fmt.Sprintf("Regional warehouse inventory below 30%% of total stock (current: %d < %d)", rec.Available, ev.Threshold),
		Level:         ev.Level,
		LevelLabel:    ev.LevelLabel,
		Threshold:     ev.Threshold,
		ShortageQty:   ev.Shortage,
	})
}

// TransferResult holds both ends of a direct two-location move.
type TransferResult struct {
	From *inventoryEntity.Record `json:"from"`
	To   *inventoryEntity.Record `json:"to"`
}

// Transfer is the ad-hoc two-location atomic move used outside the transfer
// order workflow. Debit and credit either both apply or neither does.
func (s *Service) Transfer(productID, fromLocationID, toLocationID string, quantity int) (*TransferResult, error) {
	if productID == "" || fromLocationID == "" || toLocationID == "" || quantity <= 0 {
		return nil, ErrInvalidAdjustment
	}
	if fromLocationID == toLocationID {
		return nil, fmt.Errorf("%w: fromLocationId and toLocationId cannot be the same", ErrInvalidAdjustment)
	}

	res := &TransferResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := inventoryRepo.NewInventoryRepository(tx)
		from, err := repo.Get(productID, fromLocationID)
		if err != nil {
			return err
		}

		res.From, err = s.AdjustTx(tx, AdjustInput{
			ProductSKU:   productID,
			ProductName:  from.ProductName,
			LocationID:   fromLocationID,
			LocationName: from.LocationName,
			Delta:        -quantity,
		})
		if err != nil {
			return err
		}

		res.To, err = s.AdjustTx(tx, AdjustInput{
			ProductSKU:   productID,
			ProductName:  from.ProductName,
			LocationID:   toLocationID,
			Delta:        quantity,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	cache.GetInstance().DeleteByTag(AlertsCacheTag)
	return res, nil
}
