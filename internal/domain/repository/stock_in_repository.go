package repository

import (
	"context"

	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
)

// StockInRepository define el puerto de persistencia para entradas de lote.
// Las lecturas devuelven (nil, nil) si el registro no existe.
type StockInRepository interface {
	// Create devuelve domain.ErrDuplicate si el batch_id ya existe.
	Create(ctx context.Context, in *entity.StockIn) error
	GetByID(ctx context.Context, id string) (*entity.StockIn, error)
	GetByBatchID(ctx context.Context, batchID string) (*entity.StockIn, error)
	// GetByBatchIDForUpdate bloquea el lote hasta el fin de la transacción.
	GetByBatchIDForUpdate(ctx context.Context, batchID string) (*entity.StockIn, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockIn, error)
}
