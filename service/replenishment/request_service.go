package replenishment

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"stocknet.GO/core/cache"
	alertEntity "stocknet.GO/model/entity/alert"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	replenishmentEntity "stocknet.GO/model/entity/replenishment"
	alertRepo "stocknet.GO/model/repository/alert"
	inventoryRepo "stocknet.GO/model/repository/inventory"
	replenishmentRepo "stocknet.GO/model/repository/replenishment"
	inventoryService "stocknet.GO/service/inventory"
)

const deliveryEstimate = 3 * 24 * time.Hour

// progressFeedLimit caps the flattened activity feed.
const progressFeedLimit = 20

// Service owns the replenishment application lifecycle: manual submission,
// the central approve/reject decision and the activity feed.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubmitInput is a manual replenishment application. AlertID optionally names
// the alert that prompted it; the alert is retired on submission.
type SubmitInput struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	WarehouseID   string `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
	Vendor        string `json:"vendor"`
	Quantity      int    `json:"quantity"`
	Remark        string `json:"remark"`
	AlertID       string `json:"alertId"`
}

// Submit files a manual replenishment application. At most one open request
// per (product, warehouse): a second submission returns ErrOpenRequestExists.
func (s *Service) Submit(in SubmitInput) (*replenishmentEntity.Request, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: productId, warehouseId and a positive quantity are required",
			replenishmentEntity.ErrValidation)
	}

	now := time.Now()
	req := &replenishmentEntity.Request{
		RequestID:     replenishmentEntity.NewRequestID(),
		ProductID:     in.ProductID,
		ProductName:   in.ProductName,
		Vendor:        in.Vendor,
		Quantity:      in.Quantity,
		DeliveryDate:  now.Add(deliveryEstimate),
		Remark:        in.Remark,
		WarehouseID:   in.WarehouseID,
		WarehouseName: in.WarehouseName,
		Reason:        "Manual replenishment application",
		Status:        replenishmentEntity.StatusPending,
	}
	req.AppendProgress("Replenishment Alert Generated",
		fmt.Sprintf("%s flagged for replenishment at %s", in.ProductName, in.WarehouseName),
		replenishmentEntity.StepCompleted, now)
	req.AppendProgress("Application Submitted",
		fmt.Sprintf("%s requested %d units from %s", in.WarehouseName, in.Quantity, in.Vendor),
		replenishmentEntity.StepCompleted, now)
	req.AppendProgress("Waiting for Approval", "Awaiting central approval",
		replenishmentEntity.StepProcessing, now)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := replenishmentRepo.NewRequestRepository(tx).CreateOpen(req, replenishmentEntity.NewRequestID); err != nil {
			return err
		}
		// The request supersedes the alert that prompted it.
		return alertRepo.NewAlertRepository(tx).DeleteFor(in.ProductID, in.WarehouseID)
	})
	if err != nil {
		return nil, err
	}

	cache.GetInstance().DeleteByTag(inventoryService.AlertsCacheTag)
	log.Printf("[Request Submitted] requestId=%s, productId=%s, warehouseId=%s, quantity=%d",
		req.RequestID, in.ProductID, in.WarehouseID, in.Quantity)
	return req, nil
}

// Decide records the central approve/reject decision on an open request.
// A non-empty remark becomes the progress-entry description. Rejection
// re-evaluates the warehouse inventory and restores the alert if the
// shortage that produced the request still stands.
func (s *Service) Decide(requestID, decision, remark string) (*replenishmentEntity.Request, error) {
	if decision != replenishmentEntity.StatusApproved && decision != replenishmentEntity.StatusRejected {
		return nil, replenishmentEntity.ErrInvalidDecision
	}

	var req *replenishmentEntity.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		requests := replenishmentRepo.NewRequestRepository(tx)
		var err error
		req, err = requests.FindByRequestID(requestID)
		if err != nil {
			return err
		}
		if req.Status != replenishmentEntity.StatusPending && req.Status != replenishmentEntity.StatusProcessing {
			return fmt.Errorf("%w: request %s is %s", replenishmentEntity.ErrInvalidDecision, requestID, req.Status)
		}

		now := time.Now()
		req.SetStatus(decision)
		if decision == replenishmentEntity.StatusApproved {
			desc := remark
			if desc == "" {
				desc = "Approved by central warehouse"
			}
			req.AppendProgress("Application Approved", desc, replenishmentEntity.StepCompleted, now)
		} else {
			desc := remark
			if desc == "" {
				desc = "Rejected by central warehouse"
			}
			req.AppendProgress("Application Rejected", desc, replenishmentEntity.StepCompleted, now)
		}
		if err := requests.Save(req); err != nil {
			return err
		}

		if decision == replenishmentEntity.StatusRejected {
			return s.restoreAlertIfBreached(tx, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.GetInstance().DeleteByTag(inventoryService.AlertsCacheTag)
	log.Printf("[Request Decided] requestId=%s, decision=%s", requestID, decision)
	return req, nil
}

// restoreAlertIfBreached re-checks the warehouse after a rejection. The
// submission retired the alert, so a still-standing shortage must surface
// again. A missing ledger row is treated as zero stock under the flat
// fallback thresholds.
func (s *Service) restoreAlertIfBreached(tx *gorm.DB, req *replenishmentEntity.Request) error {
	totalStock, available := 0, 0
	productName := req.ProductName

	rec, err := inventoryRepo.NewInventoryRepository(tx).Get(req.ProductID, req.WarehouseID)
	switch {
	case err == nil:
		totalStock, available = rec.TotalStock, rec.Available
		productName = rec.ProductName
	case errors.Is(err, inventoryEntity.ErrNotFound):
		// keep the zero-stock fallback
	default:
		return err
	}

	ev := inventoryService.Evaluate(totalStock, available)
	if !ev.Breached {
		return nil
	}
	return alertRepo.NewAlertRepository(tx).Upsert(&alertEntity.ReplenishmentAlert{
		AlertID:       alertEntity.NewAlertID(),
		ProductID:     req.ProductID,
		ProductName:   productName,
		WarehouseID:   req.WarehouseID,
		WarehouseName: req.WarehouseName,
		Stock:         available,
		Suggested:     ev.Suggested,
		Trigger:       fmt.Sprintf("Replenishment request %s rejected while inventory still below threshold (current: %d < %d)", req.RequestID, available, ev.Threshold),
		Level:         ev.Level,
		LevelLabel:    ev.LevelLabel,
		Threshold:     ev.Threshold,
		ShortageQty:   ev.Shortage,
	})
}

// Get returns one request by display id.
func (s *Service) Get(requestID string) (*replenishmentEntity.Request, error) {
	return replenishmentRepo.NewRequestRepository(s.db).FindByRequestID(requestID)
}

// List returns requests matching the filter, newest first.
func (s *Service) List(f replenishmentRepo.ListFilter) ([]replenishmentEntity.Request, error) {
	return replenishmentRepo.NewRequestRepository(s.db).List(f)
}

// FeedItem is one entry of the flattened progress activity feed.
type FeedItem struct {
	RequestID string    `json:"requestId"`
	ProductID string    `json:"productId"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ProgressFeed flattens the progress logs of recent requests into one feed,
// newest entries first, capped at 20 items.
func (s *Service) ProgressFeed(warehouseID string) ([]FeedItem, error) {
	reqs, err := replenishmentRepo.NewRequestRepository(s.db).List(replenishmentRepo.ListFilter{
		WarehouseID: warehouseID,
		Limit:       progressFeedLimit,
	})
	if err != nil {
		return nil, err
	}

	feed := make([]FeedItem, 0, len(reqs)*3)
	for _, req := range reqs {
		for _, step := range req.Progress {
			feed = append(feed, FeedItem{
				RequestID: req.RequestID,
				ProductID: req.ProductID,
				Title:     step.Title,
				Desc:      step.Desc,
				Status:    step.Status,
				Timestamp: step.Timestamp,
			})
		}
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > progressFeedLimit {
		feed = feed[:progressFeedLimit]
	}
	return feed, nil
}
