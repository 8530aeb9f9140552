package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	inventoryEntity "stocknet.GO/model/entity/inventory"
	replenishmentEntity "stocknet.GO/model/entity/replenishment"
	transferEntity "stocknet.GO/model/entity/transfer"
	inventoryService "stocknet.GO/service/inventory"
)

// WriteError maps domain sentinel errors to HTTP responses. Every API module
// funnels its service errors through here so the mapping stays in one place.
func WriteError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, inventoryEntity.ErrNotFound),
		errors.Is(err, replenishmentEntity.ErrNotFound),
		errors.Is(err, transferEntity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventoryEntity.ErrInsufficientStock),
		errors.Is(err, inventoryEntity.ErrCapacityExceeded),
		errors.Is(err, replenishmentEntity.ErrOpenRequestExists),
		errors.Is(err, transferEntity.ErrOpenTransferExists):
		return http.StatusConflict
	case errors.Is(err, replenishmentEntity.ErrValidation),
		errors.Is(err, replenishmentEntity.ErrInvalidDecision),
		errors.Is(err, transferEntity.ErrValidation),
		errors.Is(err, transferEntity.ErrInvalidState),
		errors.Is(err, inventoryService.ErrInvalidAdjustment):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
