package graphqlserver

import (
	"context"
	"encoding/json"
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
	transferEntity "stocknet.GO/model/entity/transfer"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("stocknet_gql_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
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

func TestSchemaParses(t *testing.T) {
	if _, err := NewSchema(testDB(t)); err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
}

func TestInventoryQuery(t *testing.T) {
	db := testDB(t)
	for _, rec := range []inventoryEntity.Record{
		{ProductID: "PROD-001", ProductName: "Widget PROD-001", LocationID: "WH-EAST", TotalStock: 1000, Available: 500, LastUpdated: time.Now()},
		{ProductID: "PROD-002", ProductName: "Widget PROD-002", LocationID: "WH-EAST", TotalStock: 1000, Available: 900, LastUpdated: time.Now()},
		{ProductID: "PROD-001", ProductName: "Widget PROD-001", LocationID: "WH-WEST", TotalStock: 1000, Available: 100, LastUpdated: time.Now()},
	} {
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	query := `{ inventory(locationId: "WH-EAST") { productId available } }`
	resp := schema.Exec(context.Background(), query, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("query errors: %v", resp.Errors)
	}

	var data struct {
		Inventory []struct {
			ProductID string `json:"productId"`
			Available int32  `json:"available"`
		} `json:"inventory"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(data.Inventory) != 2 {
		t.Fatalf("inventory len = %d, want 2", len(data.Inventory))
	}
	if data.Inventory[0].ProductID != "PROD-001" || data.Inventory[0].Available != 500 {
		t.Errorf("first record = %+v, want PROD-001/500", data.Inventory[0])
	}

	query = `{ inventory(locationId: "WH-EAST", productId: "PROD-002") { productId } }`
	resp = schema.Exec(context.Background(), query, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("filtered query errors: %v", resp.Errors)
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(data.Inventory) != 1 || data.Inventory[0].ProductID != "PROD-002" {
		t.Errorf("filtered inventory = %+v, want only PROD-002", data.Inventory)
	}
}

func TestAlertsQuery(t *testing.T) {
	db := testDB(t)
	if err := db.Create(&alertEntity.ReplenishmentAlert{
		AlertID: alertEntity.NewAlertID(), ProductID: "PROD-001", ProductName: "Widget PROD-001",
		WarehouseID: "WH-EAST", WarehouseName: "East Warehouse",
		Stock: 200, Suggested: 700, Threshold: 300, ShortageQty: 100,
		Level: "warning", LevelLabel: "Warning",
	}).Error; err != nil {
		t.Fatalf("seed alert: %v", err)
	}

	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	resp := schema.Exec(context.Background(),
		`{ alerts(warehouseId: "WH-EAST") { productId stock suggested level } }`, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("query errors: %v", resp.Errors)
	}
	var data struct {
		Alerts []struct {
			ProductID string `json:"productId"`
			Stock     int32  `json:"stock"`
			Suggested int32  `json:"suggested"`
			Level     string `json:"level"`
		} `json:"alerts"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(data.Alerts) != 1 {
		t.Fatalf("alerts len = %d, want 1", len(data.Alerts))
	}
	if data.Alerts[0].Stock != 200 || data.Alerts[0].Suggested != 700 || data.Alerts[0].Level != "warning" {
		t.Errorf("alert = %+v", data.Alerts[0])
	}
}
