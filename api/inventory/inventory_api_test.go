package inventory

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	alertEntity "stocknet.GO/model/entity/alert"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	replenishmentEntity "stocknet.GO/model/entity/replenishment"
	transferEntity "stocknet.GO/model/entity/transfer"
)

func apiTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("stocknet_invapi_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
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
		&transferEntity.Order{},
		&transferEntity.ReceivingSchedule{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newInventoryServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	e := echo.New()
	db := apiTestDB(t)
	RegisterInventoryRoutes(e.Group("/api"), db)
	return e, db
}

func seedLedger(t *testing.T, db *gorm.DB, productID, locationID string, total, available int) {
	t.Helper()
	if err := db.Create(&inventoryEntity.Record{
		ProductID: productID, ProductName: "Widget " + productID,
		LocationID: locationID, LocationName: locationID,
		TotalStock: total, Available: available, LastUpdated: time.Now(),
	}).Error; err != nil {
		t.Fatalf("seed %s@%s: %v", productID, locationID, err)
	}
}

func TestInventoryAPI_Adjust(t *testing.T) {
	e, db := newInventoryServer(t)
	seedLedger(t, db, "PROD-001", "WH-EAST", 1000, 500)

	body := `{"productSku":"PROD-001","locationId":"WH-EAST","delta":-10}`
	req := httptest.NewRequest(http.MethodPatch, "/api/inventory/adjust", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH /api/inventory/adjust status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp inventoryEntity.Record
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Available != 490 {
		t.Errorf("available = %d, want 490", resp.Available)
	}
}

func TestInventoryAPI_AdjustInsufficient(t *testing.T) {
	e, db := newInventoryServer(t)
	seedLedger(t, db, "PROD-001", "WH-EAST", 1000, 5)

	body := `{"productSku":"PROD-001","locationId":"WH-EAST","delta":-50}`
	req := httptest.NewRequest(http.MethodPatch, "/api/inventory/adjust", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("insufficient stock status = %d, want 409", rec.Code)
	}
}

func TestInventoryAPI_AdjustValidation(t *testing.T) {
	e, _ := newInventoryServer(t)

	body := `{"productSku":"PROD-001","delta":-5}`
	req := httptest.NewRequest(http.MethodPatch, "/api/inventory/adjust", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing locationId status = %d, want 400", rec.Code)
	}
}

func TestInventoryAPI_Transfer(t *testing.T) {
	e, db := newInventoryServer(t)
	seedLedger(t, db, "PROD-001", "WH-EAST", 1000, 500)
	seedLedger(t, db, "PROD-001", "STORE-EAST-01", 200, 100)

	body := `{"productId":"PROD-001","fromLocationId":"WH-EAST","toLocationId":"STORE-EAST-01","quantity":40}`
	req := httptest.NewRequest(http.MethodPatch, "/api/inventory/transfer", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH /api/inventory/transfer status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		From inventoryEntity.Record `json:"from"`
		To   inventoryEntity.Record `json:"to"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.From.Available != 460 || resp.To.Available != 140 {
		t.Errorf("from/to available = %d/%d, want 460/140", resp.From.Available, resp.To.Available)
	}
}

func TestInventoryAPI_ImportAndList(t *testing.T) {
	e, _ := newInventoryServer(t)

	body := `{"items":[
		{"productId":"PROD-001","productName":"Widget","locationId":"WH-EAST","totalStock":1000,"available":800},
		{"productId":"PROD-002","locationId":"WH-EAST"},
		{"locationId":"WH-EAST"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/import", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/inventory/import status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Errorf("imported/skipped = %d/%d, want 2/1", result.Imported, result.Skipped)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/inventory?locationId=WH-EAST", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/inventory status = %d", rec.Code)
	}
	var records []inventoryEntity.Record
	if err := json.NewDecoder(rec.Body).Decode(&records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestInventoryAPI_ImportEmptyItems(t *testing.T) {
	e, _ := newInventoryServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/import", strings.NewReader(`{"items":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty items status = %d, want 400", rec.Code)
	}
}
