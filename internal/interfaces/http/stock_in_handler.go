package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
)

// StockInHandler recepción de lotes (protegido).
type StockInHandler struct {
	uc *inventory.StockInUseCase
}

// NewStockInHandler construye el handler.
func NewStockInHandler(uc *inventory.StockInUseCase) *StockInHandler {
	return &StockInHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrada de lote
// @Tags         stock-ins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockInRequest  true  "item_id, batch_id, receipt_id, quantity, expiration_date"
// @Success      201   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/medicine-inventory/stock-ins [post]
func (h *StockInHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada por ID
// @Tags         stock-ins
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.StockInResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicine-inventory/stock-ins/{id} [get]
func (h *StockInHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar entradas
// @Tags         stock-ins
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StockInListResponse
// @Router       /api/medicine-inventory/stock-ins [get]
func (h *StockInHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
