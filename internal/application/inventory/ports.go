package inventory

import (
	"context"

	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Items       repository.ItemRepository
	StockIns    repository.StockInRepository
	Disposals   repository.DisposalRepository
	Adjustments repository.AdjustmentRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El ctx recibido por fn debe usarse en todas las llamadas (Mongo lleva la sesión en el contexto).
// Garantiza atomicidad de la baja: inserción + actualización del ítem se confirman juntas o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// BatchLocker exclusión mutua por lote entre peticiones (y entre instancias si es distribuido).
// unlock debe llamarse siempre que err sea nil.
type BatchLocker interface {
	Lock(ctx context.Context, batchID string) (unlock func(), err error)
}
