package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción multi-documento.
type TxRunner struct {
	client *mongo.Client
	repos  inventory.TxRepos
}

// NewTxRunner construye el runner. Los repositorios son los mismos fuera y dentro de la tx:
// la sesión viaja en el ctx que recibe fn.
func NewTxRunner(client *mongo.Client, db *mongo.Database) *TxRunner {
	return &TxRunner{
		client: client,
		repos: inventory.TxRepos{
			Items:       NewItemRepository(db),
			StockIns:    NewStockInRepository(db),
			Disposals:   NewDisposalRepository(db),
			Adjustments: NewAdjustmentRepository(db),
		},
	}
}

// Run abre una sesión y ejecuta fn con WithTransaction (reintenta ante errores transitorios).
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, r.repos)
	})
	return err
}
