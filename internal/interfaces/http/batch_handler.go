package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
)

// BatchHandler consultas por lote (protegido).
type BatchHandler struct {
	uc *inventory.BatchQueryUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *inventory.BatchQueryUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Summary godoc
// @Summary      Stock restante del lote
// @Description  entrada + sumas - restas - bajas, calculado al momento.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        batchId  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicine-inventory/batches/{batchId}/summary [get]
func (h *BatchHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.Params("batchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockIn godoc
// @Summary      Entrada del lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        batchId  path  string  true  "ID del lote"
// @Success      200  {object}  dto.StockInResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicine-inventory/batches/{batchId}/stock-in [get]
func (h *BatchHandler) StockIn(c *fiber.Ctx) error {
	out, err := h.uc.StockInByBatch(c.UserContext(), c.Params("batchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Disposals godoc
// @Summary      Bajas del lote con su total
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        batchId  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchDisposalsResponse
// @Router       /api/medicine-inventory/batches/{batchId}/disposals [get]
func (h *BatchHandler) Disposals(c *fiber.Ctx) error {
	out, err := h.uc.Disposals(c.UserContext(), c.Params("batchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Adjustments godoc
// @Summary      Ajustes del lote con totales por tipo
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        batchId  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchAdjustmentsResponse
// @Router       /api/medicine-inventory/batches/{batchId}/adjustments [get]
func (h *BatchHandler) Adjustments(c *fiber.Ctx) error {
	out, err := h.uc.Adjustments(c.UserContext(), c.Params("batchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
