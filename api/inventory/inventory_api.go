package inventory

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stocknet.GO/api"
	"stocknet.GO/config"
	inventoryRepo "stocknet.GO/model/repository/inventory"
	inventoryService "stocknet.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/inventory")
	svc := inventoryService.NewService(db, config.LoadNetwork())

	// PATCH /api/inventory/adjust – apply a stock delta and run the cascade
	g.PATCH("/adjust", func(c echo.Context) error {
		var body struct {
			ProductSKU   string `json:"productSku"`
			ProductName  string `json:"productName"`
			LocationID   string `json:"locationId"`
			LocationName string `json:"locationName"`
			Delta        int    `json:"delta"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		rec, err := svc.Adjust(inventoryService.AdjustInput{
			ProductSKU:   body.ProductSKU,
			ProductName:  body.ProductName,
			LocationID:   body.LocationID,
			LocationName: body.LocationName,
			Delta:        body.Delta,
		})
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, rec)
	})

	// PATCH /api/inventory/transfer – direct two-location move, no cascade workflow
	g.PATCH("/transfer", func(c echo.Context) error {
		var body struct {
			ProductID      string `json:"productId"`
			FromLocationID string `json:"fromLocationId"`
			ToLocationID   string `json:"toLocationId"`
			Quantity       int    `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		res, err := svc.Transfer(body.ProductID, body.FromLocationID, body.ToLocationID, body.Quantity)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	// POST /api/inventory/import – bulk ledger upsert (seeding path, no cascade)
	g.POST("/import", func(c echo.Context) error {
		var body struct {
			Items     []inventoryService.RecordInput `json:"items"`
			BatchSize int                            `json:"batch_size"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}
		res, err := svc.ImportRecords(body.Items, body.BatchSize)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, res)
	})

	// GET /api/inventory – list ledger records, optionally for one location
	g.GET("", func(c echo.Context) error {
		repo := inventoryRepo.NewInventoryRepository(db)
		if locationID := c.QueryParam("locationId"); locationID != "" {
			records, err := repo.ListByLocation(locationID)
			if err != nil {
				return api.WriteError(c, err)
			}
			return c.JSON(http.StatusOK, records)
		}
		records, err := repo.List()
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, records)
	})
}
