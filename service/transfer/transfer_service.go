package transfer

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"stocknet.GO/core/cache"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	replenishmentEntity "stocknet.GO/model/entity/replenishment"
	transferEntity "stocknet.GO/model/entity/transfer"
	replenishmentRepo "stocknet.GO/model/repository/replenishment"
	transferRepo "stocknet.GO/model/repository/transfer"
	inventoryService "stocknet.GO/service/inventory"
)

const receivingEstimate = 2 * 24 * time.Hour

// Service owns the transfer order workflow. It never touches the ledger
// directly: every debit and credit goes through the adjustment orchestrator
// so the cascade runs for both ends of the route.
type Service struct {
	db  *gorm.DB
	inv *inventoryService.Service
}

func NewService(db *gorm.DB, inv *inventoryService.Service) *Service {
	return &Service{db: db, inv: inv}
}

// CreateInput describes a transfer order to be created, on either path.
type CreateInput struct {
	ProductSKU       string `json:"productSku"`
	ProductName      string `json:"productName"`
	Quantity         int    `json:"quantity"`
	FromLocationID   string `json:"fromLocationId"`
	FromLocationName string `json:"fromLocationName"`
	ToLocationID     string `json:"toLocationId"`
	ToLocationName   string `json:"toLocationName"`
	RequestID        string `json:"requestId"`
	Remark           string `json:"remark"`
}

func (in CreateInput) validate() error {
	if in.ProductSKU == "" || in.FromLocationID == "" || in.ToLocationID == "" || in.Quantity <= 0 {
		return fmt.Errorf("%w: productSku, fromLocationId, toLocationId and a positive quantity are required",
			transferEntity.ErrValidation)
	}
	if in.FromLocationID == in.ToLocationID {
		return fmt.Errorf("%w: fromLocationId and toLocationId cannot be the same", transferEntity.ErrValidation)
	}
	return nil
}

// CreatePending queues a transfer order without moving stock. Inventory is
// only touched at dispatch. One open order per route: a duplicate returns
// ErrOpenTransferExists.
func (s *Service) CreatePending(in CreateInput) (*transferEntity.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := &transferEntity.Order{
		TransferID:       transferEntity.NewTransferID(),
		ProductSKU:       in.ProductSKU,
		ProductName:      in.ProductName,
		Quantity:         in.Quantity,
		FromLocationID:   in.FromLocationID,
		FromLocationName: in.FromLocationName,
		ToLocationID:     in.ToLocationID,
		ToLocationName:   in.ToLocationName,
		Status:           transferEntity.StatusPending,
		RequestID:        in.RequestID,
		InventoryUpdated: false,
	}
	note := in.Remark
	if note == "" {
		note = fmt.Sprintf("Transfer order created: %d units %s → %s", in.Quantity, in.FromLocationID, in.ToLocationID)
	}
	order.AppendHistory(transferEntity.StatusPending, note, time.Now())

	if err := transferRepo.NewTransferRepository(s.db).CreateOpen(order, transferEntity.NewTransferID); err != nil {
		return nil, err
	}
	log.Printf("[Transfer Created] transferId=%s, productSku=%s, from=%s, to=%s, quantity=%d",
		order.TransferID, in.ProductSKU, in.FromLocationID, in.ToLocationID, in.Quantity)
	return order, nil
}

// DispatchInput carries the logistics details recorded at dispatch.
type DispatchInput struct {
	Carrier   string     `json:"carrier"`
	Departure *time.Time `json:"departure"`
	Remark    string     `json:"remark"`
}

// Dispatch moves a PENDING order to IN_TRANSIT and executes the stock
// movement: debit source, credit destination, both through the orchestrator
// inside one transaction, so the source warehouse re-evaluates its own
// thresholds in the same commit. When the named source cannot cover the
// quantity and the destination is a store, sibling stores in the same region
// are tried in order as fallback sources.
func (s *Service) Dispatch(transferID string, in DispatchInput) (*transferEntity.Order, error) {
	if in.Carrier == "" {
		return nil, fmt.Errorf("%w: carrier is required", transferEntity.ErrValidation)
	}
	if in.Departure == nil {
		return nil, fmt.Errorf("%w: departure time is required", transferEntity.ErrValidation)
	}
	departure := *in.Departure

	var order *transferEntity.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transfers := transferRepo.NewTransferRepository(tx)
		var err error
		order, err = transfers.FindByTransferID(transferID)
		if err != nil {
			return err
		}
		if order.Status != transferEntity.StatusPending {
			return fmt.Errorf("%w: transfer %s is %s, only PENDING can be dispatched",
				transferEntity.ErrInvalidState, transferID, order.Status)
		}

		source, err := s.debitWithFallback(tx, order)
		if err != nil {
			return err
		}

		if _, err := s.inv.AdjustTx(tx, inventoryService.AdjustInput{
			ProductSKU:   order.ProductSKU,
			ProductName:  order.ProductName,
			LocationID:   order.ToLocationID,
			LocationName: order.ToLocationName,
			Delta:        order.Quantity,
		}); err != nil {
			return err
		}

		now := time.Now()
		order.SetStatus(transferEntity.StatusInTransit)
		order.Carrier = in.Carrier
		order.Departure = &departure
		order.DispatchRemark = in.Remark
		order.InventoryUpdated = true
		note := fmt.Sprintf("Dispatched via %s", in.Carrier)
		if source != order.FromLocationID {
			note = fmt.Sprintf("Dispatched via %s (rerouted from %s)", in.Carrier, source)
		}
		order.AppendHistory(transferEntity.StatusInTransit, note, now)
		return transfers.Save(order)
	})
	if err != nil {
		return nil, err
	}

	cache.GetInstance().DeleteByTag(inventoryService.AlertsCacheTag)
	log.Printf("[Transfer Dispatched] transferId=%s, carrier=%s, quantity=%d",
		order.TransferID, in.Carrier, order.Quantity)
	return order, nil
}

// debitWithFallback debits the order quantity from the named source, falling
// back to sibling stores of the destination region when the source cannot
// cover it. Returns the location actually debited.
func (s *Service) debitWithFallback(tx *gorm.DB, order *transferEntity.Order) (string, error) {
	_, err := s.inv.AdjustTx(tx, inventoryService.AdjustInput{
		ProductSKU:   order.ProductSKU,
		ProductName:  order.ProductName,
		LocationID:   order.FromLocationID,
		LocationName: order.FromLocationName,
		Delta:        -order.Quantity,
	})
	if err == nil {
		return order.FromLocationID, nil
	}
	if !errors.Is(err, inventoryEntity.ErrInsufficientStock) {
		return "", err
	}

	net := s.inv.Network()
	if !net.IsStore(order.ToLocationID) {
		return "", err
	}
	for _, sibling := range net.SiblingStores(order.ToLocationID) {
		if sibling == order.ToLocationID || sibling == order.FromLocationID {
			continue
		}
		_, serr := s.inv.AdjustTx(tx, inventoryService.AdjustInput{
			ProductSKU:  order.ProductSKU,
			ProductName: order.ProductName,
			LocationID:  sibling,
			Delta:       -order.Quantity,
		})
		if serr == nil {
			log.Printf("[Transfer Rerouted] transferId=%s, from=%s, actualSource=%s",
				order.TransferID, order.FromLocationID, sibling)
			return sibling, nil
		}
		if !errors.Is(serr, inventoryEntity.ErrInsufficientStock) {
			return "", serr
		}
	}
	return "", err
}

// CreateDispatched is the manual allocation path: the order is created
// already IN_TRANSIT with the source debited in the same transaction, plus a
// receiving schedule for the destination. When the allocation fulfils a
// replenishment request, that request advances to IN_TRANSIT too.
func (s *Service) CreateDispatched(in CreateInput) (*transferEntity.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := &transferEntity.Order{
		TransferID:       transferEntity.NewTransferID(),
		ProductSKU:       in.ProductSKU,
		ProductName:      in.ProductName,
		Quantity:         in.Quantity,
		FromLocationID:   in.FromLocationID,
		FromLocationName: in.FromLocationName,
		ToLocationID:     in.ToLocationID,
		ToLocationName:   in.ToLocationName,
		Status:           transferEntity.StatusInTransit,
		RequestID:        in.RequestID,
		InventoryUpdated: true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.inv.AdjustTx(tx, inventoryService.AdjustInput{
			ProductSKU:   in.ProductSKU,
			ProductName:  in.ProductName,
			LocationID:   in.FromLocationID,
			LocationName: in.FromLocationName,
			Delta:        -in.Quantity,
		}); err != nil {
			return err
		}

		now := time.Now()
		order.AppendHistory(transferEntity.StatusPending,
			fmt.Sprintf("Transfer order created: %d units %s → %s", in.Quantity, in.FromLocationID, in.ToLocationID), now)
		order.AppendHistory(transferEntity.StatusInTransit,
			fmt.Sprintf("Shipment dispatched from %s", in.FromLocationID), now)

		transfers := transferRepo.NewTransferRepository(tx)
		if err := transfers.CreateOpen(order, transferEntity.NewTransferID); err != nil {
			return err
		}

		eta := now.Add(receivingEstimate)
		if err := transfers.CreateSchedule(&transferEntity.ReceivingSchedule{
			PlanNo:            order.TransferID,
			Supplier:          in.FromLocationName,
			ETA:               eta,
			Dock:              dockFor(in.FromLocationID),
			Items:             1,
			ProductSKU:        in.ProductSKU,
			ProductName:       in.ProductName,
			Quantity:          in.Quantity,
			StorageLocationID: in.ToLocationID,
			QualityLevel:      "A",
			Status:            transferEntity.StatusInTransit,
		}); err != nil {
			return err
		}

		if in.RequestID != "" {
			if err := s.advanceRequest(tx, in.RequestID, order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.GetInstance().DeleteByTag(inventoryService.AlertsCacheTag)
	log.Printf("[Transfer Dispatched] transferId=%s, productSku=%s, from=%s, to=%s, quantity=%d",
		order.TransferID, in.ProductSKU, in.FromLocationID, in.ToLocationID, in.Quantity)
	return order, nil
}

// dockFor picks the receiving dock from the shipping origin.
func dockFor(fromLocationID string) string {
	if fromLocationID == "" {
		return "Central-Dock"
	}
	return fromLocationID + "-Dock"
}

// advanceRequest moves the fulfilled replenishment request to IN_TRANSIT and
// extends its progress log. An unknown request id is not an error: the
// allocation stands on its own.
func (s *Service) advanceRequest(tx *gorm.DB, requestID string, order *transferEntity.Order) error {
	requests := replenishmentRepo.NewRequestRepository(tx)
	req, err := requests.FindByRequestID(requestID)
	if errors.Is(err, replenishmentEntity.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now()
	req.SetStatus(replenishmentEntity.StatusInTransit)
	req.AppendProgress("Application Approved",
		"Approved by central warehouse", replenishmentEntity.StepCompleted, now)
	req.AppendProgress("Shipment Dispatched",
		fmt.Sprintf("Transfer %s dispatched: %d units from %s", order.TransferID, order.Quantity, order.FromLocationName),
		replenishmentEntity.StepCompleted, now)
	req.AppendProgress("In Transit",
		fmt.Sprintf("Expected arrival at %s", order.ToLocationID),
		replenishmentEntity.StepProcessing, now)
	return requests.Save(req)
}

// Get returns one transfer order by display id.
func (s *Service) Get(transferID string) (*transferEntity.Order, error) {
	return transferRepo.NewTransferRepository(s.db).FindByTransferID(transferID)
}

// List returns transfer orders matching the filter, newest first.
func (s *Service) List(f transferRepo.ListFilter) ([]transferEntity.Order, error) {
	return transferRepo.NewTransferRepository(s.db).List(f)
}
