package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *usecase.ItemUseCase
	StockInUC    *inventory.StockInUseCase
	DisposalUC   *inventory.DisposalUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	BatchQueryUC *inventory.BatchQueryUseCase
	JWTSecret    string
	JWTIssuer    string
}

// Router registra las rutas de la API. Todo /api/medicine-inventory requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/medicine-inventory", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)

	stockIns := api.Group("/stock-ins")
	stockInHandler := NewStockInHandler(deps.StockInUC)
	stockIns.Post("/", stockInHandler.Create)
	stockIns.Get("/", stockInHandler.List)
	stockIns.Get("/:id", stockInHandler.GetByID)

	disposals := api.Group("/disposals")
	disposalHandler := NewDisposalHandler(deps.DisposalUC)
	disposals.Post("/", disposalHandler.Register)
	disposals.Get("/", disposalHandler.List)
	disposals.Get("/:id", disposalHandler.GetByID)

	adjustments := api.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Register)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)

	batches := api.Group("/batches/:batchId")
	batchHandler := NewBatchHandler(deps.BatchQueryUC)
	batches.Get("/stock-in", batchHandler.StockIn)
	batches.Get("/summary", batchHandler.Summary)
	batches.Get("/disposals", batchHandler.Disposals)
	batches.Get("/adjustments", batchHandler.Adjustments)
}
