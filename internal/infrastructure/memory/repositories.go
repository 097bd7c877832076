package memory

import (
	"context"

	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository       = (*ItemRepo)(nil)
	_ repository.StockInRepository    = (*StockInRepo)(nil)
	_ repository.DisposalRepository   = (*DisposalRepo)(nil)
	_ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)
)

// ItemRepo ítems en memoria.
type ItemRepo struct {
	with accessFn
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.with(func(st *state) error {
		if _, ok := st.itemIdx[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.itemIdx[item.ID] = len(st.items)
		st.items = append(st.items, *item)
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.with(func(st *state) error {
		if i, ok := st.itemIdx[id]; ok {
			it := st.items[i]
			out = &it
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate igual que GetByID: Store.Run ya serializa las transacciones.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	return r.with(func(st *state) error {
		i, ok := st.itemIdx[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		st.items[i].Product = item.Product
		st.items[i].Description = item.Description
		st.items[i].UpdatedAt = item.UpdatedAt
		return nil
	})
}

func (r *ItemRepo) UpdateQuantity(_ context.Context, id string, quantity int64, level string) error {
	return r.with(func(st *state) error {
		i, ok := st.itemIdx[id]
		if !ok {
			return domain.ErrNotFound
		}
		st.items[i].OverallQuantity = quantity
		st.items[i].QuantityLevel = level
		return nil
	})
}

func (r *ItemRepo) List(_ context.Context, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.with(func(st *state) error {
		out = newestFirst(st.items, limit, offset)
		return nil
	})
	return out, err
}

// StockInRepo entradas de lote en memoria; batch_id es único.
type StockInRepo struct {
	with accessFn
}

func (r *StockInRepo) Create(_ context.Context, in *entity.StockIn) error {
	return r.with(func(st *state) error {
		if _, ok := st.batchIdx[in.BatchID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.stockInIdx[in.ID]; ok {
			return domain.ErrDuplicate
		}
		pos := len(st.stockIns)
		st.stockIns = append(st.stockIns, *in)
		st.stockInIdx[in.ID] = pos
		st.batchIdx[in.BatchID] = pos
		return nil
	})
}

func (r *StockInRepo) GetByID(_ context.Context, id string) (*entity.StockIn, error) {
	return r.find(func(st *state) (int, bool) {
		i, ok := st.stockInIdx[id]
		return i, ok
	})
}

func (r *StockInRepo) GetByBatchID(_ context.Context, batchID string) (*entity.StockIn, error) {
	return r.find(func(st *state) (int, bool) {
		i, ok := st.batchIdx[batchID]
		return i, ok
	})
}

// GetByBatchIDForUpdate equivale a GetByBatchID: dentro de Run el estado ya es exclusivo.
func (r *StockInRepo) GetByBatchIDForUpdate(ctx context.Context, batchID string) (*entity.StockIn, error) {
	return r.GetByBatchID(ctx, batchID)
}

func (r *StockInRepo) List(_ context.Context, limit, offset int) ([]*entity.StockIn, error) {
	var out []*entity.StockIn
	err := r.with(func(st *state) error {
		out = newestFirst(st.stockIns, limit, offset)
		return nil
	})
	return out, err
}

func (r *StockInRepo) find(lookup func(st *state) (int, bool)) (*entity.StockIn, error) {
	var out *entity.StockIn
	err := r.with(func(st *state) error {
		if i, ok := lookup(st); ok {
			in := st.stockIns[i]
			out = &in
		}
		return nil
	})
	return out, err
}

// DisposalRepo bajas en memoria (solo inserción).
type DisposalRepo struct {
	with accessFn
}

func (r *DisposalRepo) Create(_ context.Context, d *entity.Disposal) error {
	return r.with(func(st *state) error {
		if _, ok := st.disposalIdx[d.ID]; ok {
			return domain.ErrDuplicate
		}
		st.disposalIdx[d.ID] = len(st.disposals)
		st.disposals = append(st.disposals, *d)
		return nil
	})
}

func (r *DisposalRepo) GetByID(_ context.Context, id string) (*entity.Disposal, error) {
	var out *entity.Disposal
	err := r.with(func(st *state) error {
		if i, ok := st.disposalIdx[id]; ok {
			d := st.disposals[i]
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *DisposalRepo) List(_ context.Context, limit, offset int) ([]*entity.Disposal, error) {
	var out []*entity.Disposal
	err := r.with(func(st *state) error {
		out = newestFirst(st.disposals, limit, offset)
		return nil
	})
	return out, err
}

func (r *DisposalRepo) ListByBatchID(_ context.Context, batchID string) ([]*entity.Disposal, error) {
	out := make([]*entity.Disposal, 0)
	err := r.with(func(st *state) error {
		for _, d := range st.disposals {
			if d.BatchID == batchID {
				d := d
				out = append(out, &d)
			}
		}
		return nil
	})
	return out, err
}

func (r *DisposalRepo) SumByBatchID(_ context.Context, batchID string) (int64, error) {
	var total int64
	err := r.with(func(st *state) error {
		for _, d := range st.disposals {
			if d.BatchID == batchID {
				total += d.Quantity
			}
		}
		return nil
	})
	return total, err
}

// AdjustmentRepo ajustes en memoria (solo inserción).
type AdjustmentRepo struct {
	with accessFn
}

func (r *AdjustmentRepo) Create(_ context.Context, a *entity.Adjustment) error {
	return r.with(func(st *state) error {
		if _, ok := st.adjustmentIdx[a.ID]; ok {
			return domain.ErrDuplicate
		}
		st.adjustmentIdx[a.ID] = len(st.adjustments)
		st.adjustments = append(st.adjustments, *a)
		return nil
	})
}

func (r *AdjustmentRepo) GetByID(_ context.Context, id string) (*entity.Adjustment, error) {
	var out *entity.Adjustment
	err := r.with(func(st *state) error {
		if i, ok := st.adjustmentIdx[id]; ok {
			a := st.adjustments[i]
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *AdjustmentRepo) List(_ context.Context, limit, offset int) ([]*entity.Adjustment, error) {
	var out []*entity.Adjustment
	err := r.with(func(st *state) error {
		out = newestFirst(st.adjustments, limit, offset)
		return nil
	})
	return out, err
}

func (r *AdjustmentRepo) ListByBatchID(_ context.Context, batchID string) ([]*entity.Adjustment, error) {
	out := make([]*entity.Adjustment, 0)
	err := r.with(func(st *state) error {
		for _, a := range st.adjustments {
			if a.BatchID == batchID {
				a := a
				out = append(out, &a)
			}
		}
		return nil
	})
	return out, err
}

func (r *AdjustmentRepo) SumByBatchID(_ context.Context, batchID string) (entity.AdjustmentTotals, error) {
	var totals entity.AdjustmentTotals
	err := r.with(func(st *state) error {
		for _, a := range st.adjustments {
			if a.BatchID != batchID {
				continue
			}
			switch a.Type {
			case entity.AdjustmentTypeAddition:
				totals.AdditionTotal += a.Quantity
			case entity.AdjustmentTypeSubtraction:
				totals.SubtractionTotal += a.Quantity
			}
		}
		return nil
	})
	return totals, err
}
