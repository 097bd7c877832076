package repository

import (
	"context"

	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetByID devuelve (nil, nil) si el ítem no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByIDForUpdate bloquea el ítem hasta el fin de la transacción; (nil, nil) si no existe.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// Update escribe producto y descripción. La cantidad solo cambia con UpdateQuantity.
	Update(ctx context.Context, item *entity.Item) error
	// UpdateQuantity actualiza solo cantidad y nivel; devuelve domain.ErrNotFound si no existe.
	UpdateQuantity(ctx context.Context, id string, quantity int64, level string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
}
