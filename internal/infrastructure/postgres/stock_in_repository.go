package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

const stockInColumns = `id, item_id, batch_id, receipt_id, quantity, expiration_date, note, created_at`

// StockInRepo entradas de lote sobre PostgreSQL.
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

// Create persiste la entrada. batch_id repetido -> domain.ErrDuplicate; ítem inexistente -> domain.ErrNotFound.
func (r *StockInRepo) Create(ctx context.Context, in *entity.StockIn) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_ins (`+stockInColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		in.ID, in.ItemID, in.BatchID, in.ReceiptID, in.Quantity, in.ExpirationDate, in.Note, in.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock-in: %w", err)
	}
	return nil
}

func (r *StockInRepo) GetByID(ctx context.Context, id string) (*entity.StockIn, error) {
	return r.getOne(ctx, `SELECT `+stockInColumns+` FROM stock_ins WHERE id = $1`, id)
}

func (r *StockInRepo) GetByBatchID(ctx context.Context, batchID string) (*entity.StockIn, error) {
	return r.getOne(ctx, `SELECT `+stockInColumns+` FROM stock_ins WHERE batch_id = $1`, batchID)
}

// GetByBatchIDForUpdate bloquea la fila del lote hasta el fin de la transacción; serializa bajas y ajustes.
func (r *StockInRepo) GetByBatchIDForUpdate(ctx context.Context, batchID string) (*entity.StockIn, error) {
	return r.getOne(ctx, `SELECT `+stockInColumns+` FROM stock_ins WHERE batch_id = $1 FOR UPDATE`, batchID)
}

func (r *StockInRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockIn, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+stockInColumns+` FROM stock_ins ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock-ins: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockIn, 0)
	for rows.Next() {
		in, err := scanStockIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock-in: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

func (r *StockInRepo) getOne(ctx context.Context, query, arg string) (*entity.StockIn, error) {
	in, err := scanStockIn(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock-in: %w", err)
	}
	return in, nil
}

func scanStockIn(row pgx.Row) (*entity.StockIn, error) {
	var in entity.StockIn
	if err := row.Scan(&in.ID, &in.ItemID, &in.BatchID, &in.ReceiptID, &in.Quantity, &in.ExpirationDate, &in.Note, &in.CreatedAt); err != nil {
		return nil, err
	}
	return &in, nil
}
