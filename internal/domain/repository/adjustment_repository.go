package repository

import (
	"context"

	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
)

// AdjustmentRepository define el puerto de persistencia para ajustes (solo inserción y lectura).
type AdjustmentRepository interface {
	Create(ctx context.Context, a *entity.Adjustment) error
	GetByID(ctx context.Context, id string) (*entity.Adjustment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Adjustment, error)
	ListByBatchID(ctx context.Context, batchID string) ([]*entity.Adjustment, error)
	// SumByBatchID sumas por tipo en una sola pasada; 0 en cada total si no hay registros.
	SumByBatchID(ctx context.Context, batchID string) (entity.AdjustmentTotals, error)
}
