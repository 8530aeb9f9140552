package replenishment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stocknet.GO/api"
	"stocknet.GO/config"
	"stocknet.GO/core/cache"
	alertEntity "stocknet.GO/model/entity/alert"
	alertRepo "stocknet.GO/model/repository/alert"
	replenishmentRepo "stocknet.GO/model/repository/replenishment"
	inventoryService "stocknet.GO/service/inventory"
	replenishmentService "stocknet.GO/service/replenishment"
)

const alertsCacheTTL = 30 // seconds

func init() {
	api.RegisterModule(RegisterReplenishmentRoutes)
}

func RegisterReplenishmentRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/replenishment")
	svc := replenishmentService.NewService(db)

	// GET /api/replenishment/alerts – current alerts, cached per warehouse
	g.GET("/alerts", func(c echo.Context) error {
		warehouseID := c.QueryParam("warehouseId")
		alerts, err := loadAlerts(db, warehouseID)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, alerts)
	})

	// GET /api/replenishment/progress – flattened activity feed
	g.GET("/progress", func(c echo.Context) error {
		feed, err := svc.ProgressFeed(c.QueryParam("warehouseId"))
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, feed)
	})

	// POST /api/replenishment/applications – manual application
	g.POST("/applications", func(c echo.Context) error {
		var body replenishmentService.SubmitInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		req, err := svc.Submit(body)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusCreated, req)
	})

	// GET /api/replenishment/applications – list with filters
	g.GET("/applications", func(c echo.Context) error {
		reqs, err := svc.List(replenishmentRepo.ListFilter{
			Status:      c.QueryParam("status"),
			WarehouseID: c.QueryParam("warehouseId"),
			Vendor:      c.QueryParam("vendor"),
		})
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, reqs)
	})

	// PATCH /api/replenishment/applications/:requestId/status – approve/reject
	g.PATCH("/applications/:requestId/status", func(c echo.Context) error {
		var body struct {
			Status string `json:"status"`
			Remark string `json:"remark"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		req, err := svc.Decide(c.Param("requestId"), body.Status, body.Remark)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, req)
	})
}

// loadAlerts serves the alert list through two cache layers: the in-process
// tagged cache (invalidated on every alert write) and, when configured,
// redis with a short TTL for cross-instance reuse.
func loadAlerts(db *gorm.DB, warehouseID string) ([]alertEntity.ReplenishmentAlert, error) {
	mem := cache.GetInstance()
	if v, ok := mem.GetN("alerts", warehouseID); ok {
		if alerts, ok := v.([]alertEntity.ReplenishmentAlert); ok {
			return alerts, nil
		}
	}

	redisKey := "stocknet:alerts:" + warehouseID
	if config.RedisClient != nil {
		if data, err := config.RedisClient.Get(config.RedisCtx(), redisKey).Bytes(); err == nil {
			var alerts []alertEntity.ReplenishmentAlert
			if json.Unmarshal(data, &alerts) == nil {
				mem.SetN([]interface{}{"alerts", warehouseID}, alerts, alertsCacheTTL,
					[]string{inventoryService.AlertsCacheTag})
				return alerts, nil
			}
		}
	}

	alerts, err := alertRepo.NewAlertRepository(db).List(warehouseID)
	if err != nil {
		return nil, err
	}
	mem.SetN([]interface{}{"alerts", warehouseID}, alerts, alertsCacheTTL,
		[]string{inventoryService.AlertsCacheTag})
	if config.RedisClient != nil {
		if data, err := json.Marshal(alerts); err == nil {
			config.RedisClient.Set(config.RedisCtx(), redisKey, data, alertsCacheTTL*time.Second)
		}
	}
	return alerts, nil
}
