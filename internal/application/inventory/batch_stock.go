package inventory

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/medicine-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
)

// Mensajes visibles para el usuario cuando falla la resolución de referencias.
const (
	msgItemMismatch       = "Item ID mismatch"
	msgBatchMismatch      = "Batch ID mismatch"
	msgBatchDoesNotExist  = "Batch ID does not exist"
	msgItemDoesNotExist   = "Item ID does not exist"
	msgBatchAlreadyExists = "Batch ID already exists"
)

// BatchStock resultado de conciliar un lote: la entrada, los agregados y el restante.
type BatchStock struct {
	StockIn   *entity.StockIn
	Totals    entity.BatchTotals
	Remaining int64
}

// loadBatchStock lee la entrada del lote y agrega bajas y ajustes en el momento (sin caché).
// forUpdate bloquea la entrada hasta el fin de la transacción en curso.
func loadBatchStock(ctx context.Context, repos TxRepos, batchID string, forUpdate bool) (*BatchStock, error) {
	var (
		in  *entity.StockIn
		err error
	)
	if forUpdate {
		in, err = repos.StockIns.GetByBatchIDForUpdate(ctx, batchID)
	} else {
		in, err = repos.StockIns.GetByBatchID(ctx, batchID)
	}
	if err != nil {
		return nil, domain.WrapStorage("get stock-in", err)
	}
	if in == nil {
		return nil, domain.NewNotFound("batch", msgBatchMismatch)
	}
	disposed, err := repos.Disposals.SumByBatchID(ctx, batchID)
	if err != nil {
		return nil, domain.WrapStorage("sum disposals", err)
	}
	adj, err := repos.Adjustments.SumByBatchID(ctx, batchID)
	if err != nil {
		return nil, domain.WrapStorage("sum adjustments", err)
	}
	totals := entity.BatchTotals{
		DisposalTotal:    disposed,
		AdditionTotal:    adj.AdditionTotal,
		SubtractionTotal: adj.SubtractionTotal,
	}
	return &BatchStock{
		StockIn:   in,
		Totals:    totals,
		Remaining: domaininv.RemainingStock(in.Quantity, totals),
	}, nil
}

// BatchQueryUseCase consultas de solo lectura sobre un lote (validación del lado del cliente y reportes).
type BatchQueryUseCase struct {
	stockIns    repository.StockInRepository
	disposals   repository.DisposalRepository
	adjustments repository.AdjustmentRepository
}

// NewBatchQueryUseCase construye el caso de uso.
func NewBatchQueryUseCase(
	stockIns repository.StockInRepository,
	disposals repository.DisposalRepository,
	adjustments repository.AdjustmentRepository,
) *BatchQueryUseCase {
	return &BatchQueryUseCase{stockIns: stockIns, disposals: disposals, adjustments: adjustments}
}

// Remaining calcula el stock restante del lote. Dos llamadas sin escrituras intermedias devuelven lo mismo.
func (uc *BatchQueryUseCase) Remaining(ctx context.Context, batchID string) (int64, error) {
	bs, err := loadBatchStock(ctx, TxRepos{StockIns: uc.stockIns, Disposals: uc.disposals, Adjustments: uc.adjustments}, batchID, false)
	if err != nil {
		return 0, err
	}
	return bs.Remaining, nil
}

// Summary lee entrada, bajas y ajustes en paralelo y devuelve el stock del lote.
func (uc *BatchQueryUseCase) Summary(ctx context.Context, batchID string) (*dto.BatchSummaryResponse, error) {
	if batchID == "" {
		return nil, domain.NewValidationError("batch_id", "es requerido")
	}
	var (
		in       *entity.StockIn
		disposed int64
		adj      entity.AdjustmentTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in, err = uc.stockIns.GetByBatchID(gctx, batchID)
		return domain.WrapStorage("get stock-in", err)
	})
	g.Go(func() error {
		var err error
		disposed, err = uc.disposals.SumByBatchID(gctx, batchID)
		return domain.WrapStorage("sum disposals", err)
	})
	g.Go(func() error {
		var err error
		adj, err = uc.adjustments.SumByBatchID(gctx, batchID)
		return domain.WrapStorage("sum adjustments", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, domain.NewNotFound("batch", msgBatchMismatch)
	}
	totals := entity.BatchTotals{DisposalTotal: disposed, AdditionTotal: adj.AdditionTotal, SubtractionTotal: adj.SubtractionTotal}
	return &dto.BatchSummaryResponse{
		BatchID:          batchID,
		ItemID:           in.ItemID,
		StockInQuantity:  in.Quantity,
		DisposalTotal:    disposed,
		AdditionTotal:    adj.AdditionTotal,
		SubtractionTotal: adj.SubtractionTotal,
		RemainingStock:   domaininv.RemainingStock(in.Quantity, totals),
	}, nil
}

// Disposals lista las bajas del lote y su total. Un lote sin bajas devuelve total 0 y lista vacía.
func (uc *BatchQueryUseCase) Disposals(ctx context.Context, batchID string) (*dto.BatchDisposalsResponse, error) {
	list, err := uc.disposals.ListByBatchID(ctx, batchID)
	if err != nil {
		return nil, domain.WrapStorage("list disposals by batch", err)
	}
	out := &dto.BatchDisposalsResponse{BatchID: batchID, Documents: make([]dto.DisposalResponse, 0, len(list))}
	for _, d := range list {
		out.DisposalTotal += d.Quantity
		out.Documents = append(out.Documents, dto.NewDisposalResponse(d))
	}
	return out, nil
}

// Adjustments lista los ajustes del lote con los totales por tipo calculados en una sola pasada.
func (uc *BatchQueryUseCase) Adjustments(ctx context.Context, batchID string) (*dto.BatchAdjustmentsResponse, error) {
	list, err := uc.adjustments.ListByBatchID(ctx, batchID)
	if err != nil {
		return nil, domain.WrapStorage("list adjustments by batch", err)
	}
	out := &dto.BatchAdjustmentsResponse{BatchID: batchID, Documents: make([]dto.AdjustmentResponse, 0, len(list))}
	for _, a := range list {
		switch a.Type {
		case entity.AdjustmentTypeAddition:
			out.AdditionTotal += a.Quantity
		case entity.AdjustmentTypeSubtraction:
			out.SubtractionTotal += a.Quantity
		}
		out.Documents = append(out.Documents, dto.NewAdjustmentResponse(a))
	}
	return out, nil
}

// StockInByBatch devuelve la entrada del lote o NotFound.
func (uc *BatchQueryUseCase) StockInByBatch(ctx context.Context, batchID string) (*dto.StockInResponse, error) {
	in, err := uc.stockIns.GetByBatchID(ctx, batchID)
	if err != nil {
		return nil, domain.WrapStorage("get stock-in", err)
	}
	if in == nil {
		return nil, domain.NewNotFound("batch", msgBatchDoesNotExist)
	}
	out := dto.NewStockInResponse(in)
	return &out, nil
}
