package transfer

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stocknet.GO/api"
	"stocknet.GO/config"
	transferRepo "stocknet.GO/model/repository/transfer"
	inventoryService "stocknet.GO/service/inventory"
	transferService "stocknet.GO/service/transfer"
)

func init() {
	api.RegisterModule(RegisterTransferRoutes)
}

func RegisterTransferRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/transfers")
	svc := transferService.NewService(db, inventoryService.NewService(db, config.LoadNetwork()))

	// POST /api/transfers – manual allocation, dispatched immediately
	g.POST("", func(c echo.Context) error {
		var body transferService.CreateInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		order, err := svc.CreateDispatched(body)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusCreated, order)
	})

	// POST /api/transfers/pending – queue without moving stock
	g.POST("/pending", func(c echo.Context) error {
		var body transferService.CreateInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		order, err := svc.CreatePending(body)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusCreated, order)
	})

	// PATCH /api/transfers/:transferId/dispatch – execute a pending order
	g.PATCH("/:transferId/dispatch", func(c echo.Context) error {
		var body transferService.DispatchInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		order, err := svc.Dispatch(c.Param("transferId"), body)
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, order)
	})

	// GET /api/transfers – list with location/status filters
	g.GET("", func(c echo.Context) error {
		orders, err := svc.List(transferRepo.ListFilter{
			LocationID: c.QueryParam("locationId"),
			Status:     c.QueryParam("status"),
		})
		if err != nil {
			return api.WriteError(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	})
}
