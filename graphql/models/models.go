package models

// GraphQL view types. Quantities are int32 (graphql-go Int) and timestamps
// are RFC3339 strings; the resolvers map from the gorm entities.

// --- Inventory ---

type InventoryRecord struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
	Region       string `json:"region"`
	TotalStock   int32  `json:"totalStock"`
	Available    int32  `json:"available"`
	MinThreshold int32  `json:"minThreshold"`
	MaxThreshold int32  `json:"maxThreshold"`
}

// --- Alerts ---

type ReplenishmentAlert struct {
	AlertID       string `json:"alertId"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	WarehouseID   string `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
	Stock         int32  `json:"stock"`
	Suggested     int32  `json:"suggested"`
	Trigger       string `json:"trigger"`
	Level         string `json:"level"`
	LevelLabel    string `json:"levelLabel"`
	Threshold     int32  `json:"threshold"`
	ShortageQty   int32  `json:"shortageQty"`
}

// --- Replenishment requests ---

type ProgressStep struct {
	Title     string `json:"title"`
	Desc      string `json:"desc"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ReplenishmentRequest struct {
	RequestID     string         `json:"requestId"`
	ProductID     string         `json:"productId"`
	ProductName   string         `json:"productName"`
	Vendor        string         `json:"vendor"`
	Quantity      int32          `json:"quantity"`
	DeliveryDate  string         `json:"deliveryDate"`
	Remark        string         `json:"remark"`
	WarehouseID   string         `json:"warehouseId"`
	WarehouseName string         `json:"warehouseName"`
	Reason        string         `json:"reason"`
	Status        string         `json:"status"`
	Progress      []ProgressStep `json:"progress"`
}

// --- Transfer orders ---

type HistoryEntry struct {
	Status    string `json:"status"`
	Note      string `json:"note"`
	CreatedAt string `json:"createdAt"`
}

type TransferOrder struct {
	TransferID       string         `json:"transferId"`
	ProductSKU       string         `json:"productSku"`
	ProductName      string         `json:"productName"`
	Quantity         int32          `json:"quantity"`
	FromLocationID   string         `json:"fromLocationId"`
	FromLocationName string         `json:"fromLocationName"`
	ToLocationID     string         `json:"toLocationId"`
	ToLocationName   string         `json:"toLocationName"`
	Status           string         `json:"status"`
	Carrier          string         `json:"carrier"`
	DispatchRemark   string         `json:"dispatchRemark"`
	History          []HistoryEntry `json:"history"`
}
