package repository

import (
	"context"

	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
)

// DisposalRepository define el puerto de persistencia para bajas (solo inserción y lectura).
type DisposalRepository interface {
	Create(ctx context.Context, d *entity.Disposal) error
	GetByID(ctx context.Context, id string) (*entity.Disposal, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Disposal, error)
	ListByBatchID(ctx context.Context, batchID string) ([]*entity.Disposal, error)
	// SumByBatchID total dado de baja del lote; 0 si no hay registros.
	SumByBatchID(ctx context.Context, batchID string) (int64, error)
}
