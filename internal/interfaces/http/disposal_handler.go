package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
)

// DisposalHandler bajas de lote (protegido).
type DisposalHandler struct {
	uc *inventory.DisposalUseCase
}

// NewDisposalHandler construye el handler.
func NewDisposalHandler(uc *inventory.DisposalUseCase) *DisposalHandler {
	return &DisposalHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar baja
// @Description  Valida contra el stock restante del lote y actualiza la cantidad total del medicamento.
// @Tags         disposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterDisposalRequest  true  "item_id, batch_id, quantity, reason"
// @Success      201   {object}  dto.DisposalResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/medicine-inventory/disposals [post]
func (h *DisposalHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterDisposalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener baja por ID
// @Tags         disposals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la baja"
// @Success      200  {object}  dto.DisposalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicine-inventory/disposals/{id} [get]
func (h *DisposalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bajas
// @Tags         disposals
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.DisposalListResponse
// @Router       /api/medicine-inventory/disposals [get]
func (h *DisposalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
