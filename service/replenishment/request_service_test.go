package replenishment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	alertEntity "stocknet.GO/model/entity/alert"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	replenishmentEntity "stocknet.GO/model/entity/replenishment"
	alertRepo "stocknet.GO/model/repository/alert"
	replenishmentRepo "stocknet.GO/model/repository/replenishment"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("stocknet_req_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	dsn := tmpFile + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&inventoryEntity.Record{},
		&alertEntity.ReplenishmentAlert{},
		&replenishmentEntity.Request{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func submitInput() SubmitInput {
	return SubmitInput{
		ProductID:     "PROD-001",
		ProductName:   "Widget PROD-001",
		WarehouseID:   "WH-EAST",
		WarehouseName: "East Warehouse",
		Vendor:        "Central Warehouse",
		Quantity:      300,
	}
}

func TestSubmit_CreatesRequestAndRetiresAlert(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	alerts := alertRepo.NewAlertRepository(db)
	if err := alerts.Upsert(&alertEntity.ReplenishmentAlert{
		AlertID: alertEntity.NewAlertID(), ProductID: "PROD-001", WarehouseID: "WH-EAST",
		Level: "warning", LevelLabel: "Warning",
	}); err != nil {
		t.Fatalf("seed alert: %v", err)
	}

	req, err := svc.Submit(submitInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if req.Status != replenishmentEntity.StatusPending {
		t.Errorf("Status = %s, want PENDING", req.Status)
	}
	if len(req.Progress) != 3 {
		t.Errorf("Progress len = %d, want 3 seeded steps", len(req.Progress))
	}
	if req.Progress[2].Status != replenishmentEntity.StepProcessing {
		t.Errorf("final step Status = %s, want processing", req.Progress[2].Status)
	}

	if a, _ := alerts.Get("PROD-001", "WH-EAST"); a != nil {
		t.Error("alert should be retired by submission")
	}
}

func TestSubmit_SecondOpenRejected(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	if _, err := svc.Submit(submitInput()); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	_, err := svc.Submit(submitInput())
	if !errors.Is(err, replenishmentEntity.ErrOpenRequestExists) {
		t.Fatalf("second Submit err = %v, want ErrOpenRequestExists", err)
	}
}

func TestSubmit_Validation(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	in := submitInput()
	in.Quantity = 0
	if _, err := svc.Submit(in); !errors.Is(err, replenishmentEntity.ErrValidation) {
		t.Errorf("zero quantity err = %v, want ErrValidation", err)
	}
	in = submitInput()
	in.ProductID = ""
	if _, err := svc.Submit(in); !errors.Is(err, replenishmentEntity.ErrValidation) {
		t.Errorf("missing product err = %v, want ErrValidation", err)
	}
}

func TestDecide_Approve(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	req, err := svc.Submit(submitInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	decided, err := svc.Decide(req.RequestID, replenishmentEntity.StatusApproved, "Stock confirmed at central")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != replenishmentEntity.StatusApproved {
		t.Errorf("Status = %s, want APPROVED", decided.Status)
	}
	if len(decided.Progress) != 4 {
		t.Errorf("Progress len = %d, want 4", len(decided.Progress))
	}
	last := decided.Progress[len(decided.Progress)-1]
	if last.Title != "Application Approved" {
		t.Errorf("last step = %q, want Application Approved", last.Title)
	}
	// the decision remark is the progress-entry description
	if last.Desc != "Stock confirmed at central" {
		t.Errorf("last step Desc = %q, want the remark", last.Desc)
	}

	// APPROVED is still open: no second request may be filed
	open, err := replenishmentRepo.NewRequestRepository(db).FindOpen("PROD-001", "WH-EAST")
	if err != nil || open == nil {
		t.Fatalf("FindOpen after approve: %v, %v; APPROVED must stay open", open, err)
	}
}

func TestDecide_RejectRestoresAlert(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	// still breached: 200/1000
	if err := db.Create(&inventoryEntity.Record{
		ProductID: "PROD-001", ProductName: "Widget PROD-001",
		LocationID: "WH-EAST", LocationName: "East Warehouse",
		TotalStock: 1000, Available: 200, LastUpdated: time.Now(),
	}).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}

	req, err := svc.Submit(submitInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if a, _ := alertRepo.NewAlertRepository(db).Get("PROD-001", "WH-EAST"); a != nil {
		t.Fatal("no alert expected right after submission")
	}

	decided, err := svc.Decide(req.RequestID, replenishmentEntity.StatusRejected, "")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != replenishmentEntity.StatusRejected {
		t.Errorf("Status = %s, want REJECTED", decided.Status)
	}
	// empty remark falls back to the default description
	last := decided.Progress[len(decided.Progress)-1]
	if last.Desc != "Rejected by central warehouse" {
		t.Errorf("last step Desc = %q, want the default rejection text", last.Desc)
	}

	alert, _ := alertRepo.NewAlertRepository(db).Get("PROD-001", "WH-EAST")
	if alert == nil {
		t.Fatal("rejection with standing shortage must restore the alert")
	}
	if alert.Stock != 200 || alert.Suggested != 700 {
		t.Errorf("alert Stock/Suggested = %d/%d, want 200/700", alert.Stock, alert.Suggested)
	}

	// REJECTED is closed: a new request may be filed
	if _, err := svc.Submit(submitInput()); err != nil {
		t.Errorf("Submit after rejection: %v", err)
	}
}

func TestDecide_RejectWithoutRecordUsesFlatFallback(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	req, err := svc.Submit(submitInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Decide(req.RequestID, replenishmentEntity.StatusRejected, ""); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	alert, _ := alertRepo.NewAlertRepository(db).Get("PROD-001", "WH-EAST")
	if alert == nil {
		t.Fatal("missing ledger row counts as zero stock under the flat fallback")
	}
	if alert.Threshold != 50 || alert.Suggested != 100 {
		t.Errorf("alert Threshold/Suggested = %d/%d, want flat 50/100", alert.Threshold, alert.Suggested)
	}
	if alert.Level != "danger" {
		t.Errorf("Level = %s, want danger at zero stock", alert.Level)
	}
}

func TestDecide_Invalid(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	if _, err := svc.Decide("REQ-00000000-000", replenishmentEntity.StatusApproved, ""); !errors.Is(err, replenishmentEntity.ErrNotFound) {
		t.Errorf("unknown request err = %v, want ErrNotFound", err)
	}

	req, err := svc.Submit(submitInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Decide(req.RequestID, "SHIPPED", ""); !errors.Is(err, replenishmentEntity.ErrInvalidDecision) {
		t.Errorf("bad decision err = %v, want ErrInvalidDecision", err)
	}

	if _, err := svc.Decide(req.RequestID, replenishmentEntity.StatusApproved, ""); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	// already decided
	if _, err := svc.Decide(req.RequestID, replenishmentEntity.StatusRejected, ""); !errors.Is(err, replenishmentEntity.ErrInvalidDecision) {
		t.Errorf("re-decide err = %v, want ErrInvalidDecision", err)
	}
}

func TestProgressFeed_NewestFirstCapped(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	for i := 0; i < 10; i++ {
		in := submitInput()
		in.ProductID = fmt.Sprintf("PROD-%03d", i)
		if _, err := svc.Submit(in); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}

	feed, err := svc.ProgressFeed("WH-EAST")
	if err != nil {
		t.Fatalf("ProgressFeed: %v", err)
	}
	if len(feed) != 20 {
		t.Errorf("feed len = %d, want cap of 20 (10 requests x 3 steps)", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].Timestamp.After(feed[i-1].Timestamp) {
			t.Fatalf("feed not newest-first at index %d", i)
		}
	}
}
