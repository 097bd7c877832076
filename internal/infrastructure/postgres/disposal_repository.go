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

var _ repository.DisposalRepository = (*DisposalRepo)(nil)

const disposalColumns = `id, item_id, batch_id, quantity, reason, created_at`

// DisposalRepo bajas sobre PostgreSQL (solo inserción).
type DisposalRepo struct {
	q Querier
}

// NewDisposalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDisposalRepository(q Querier) *DisposalRepo {
	return &DisposalRepo{q: q}
}

func (r *DisposalRepo) Create(ctx context.Context, d *entity.Disposal) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO disposals (`+disposalColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.ItemID, d.BatchID, d.Quantity, d.Reason, d.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert disposal: %w", err)
	}
	return nil
}

func (r *DisposalRepo) GetByID(ctx context.Context, id string) (*entity.Disposal, error) {
	d, err := scanDisposal(r.q.QueryRow(ctx, `SELECT `+disposalColumns+` FROM disposals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disposal: %w", err)
	}
	return d, nil
}

func (r *DisposalRepo) List(ctx context.Context, limit, offset int) ([]*entity.Disposal, error) {
	return r.query(ctx, `SELECT `+disposalColumns+` FROM disposals ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *DisposalRepo) ListByBatchID(ctx context.Context, batchID string) ([]*entity.Disposal, error) {
	return r.query(ctx, `SELECT `+disposalColumns+` FROM disposals WHERE batch_id = $1 ORDER BY created_at`, batchID)
}

// SumByBatchID total dado de baja; COALESCE deja 0 cuando el lote no tiene bajas.
func (r *DisposalRepo) SumByBatchID(ctx context.Context, batchID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)::BIGINT FROM disposals WHERE batch_id = $1`, batchID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum disposals: %w", err)
	}
	return total, nil
}

func (r *DisposalRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Disposal, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list disposals: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Disposal, 0)
	for rows.Next() {
		d, err := scanDisposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan disposal: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDisposal(row pgx.Row) (*entity.Disposal, error) {
	var d entity.Disposal
	if err := row.Scan(&d.ID, &d.ItemID, &d.BatchID, &d.Quantity, &d.Reason, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
