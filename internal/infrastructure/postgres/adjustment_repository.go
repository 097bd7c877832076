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

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

const adjustmentColumns = `id, item_id, batch_id, quantity, type, reason, created_at`

// AdjustmentRepo ajustes sobre PostgreSQL (solo inserción).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO adjustments (`+adjustmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ItemID, a.BatchID, a.Quantity, a.Type, a.Reason, a.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	a, err := scanAdjustment(r.q.QueryRow(ctx, `SELECT `+adjustmentColumns+` FROM adjustments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return a, nil
}

func (r *AdjustmentRepo) List(ctx context.Context, limit, offset int) ([]*entity.Adjustment, error) {
	return r.query(ctx, `SELECT `+adjustmentColumns+` FROM adjustments ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *AdjustmentRepo) ListByBatchID(ctx context.Context, batchID string) ([]*entity.Adjustment, error) {
	return r.query(ctx, `SELECT `+adjustmentColumns+` FROM adjustments WHERE batch_id = $1 ORDER BY created_at`, batchID)
}

// SumByBatchID ambos totales en una sola consulta.
func (r *AdjustmentRepo) SumByBatchID(ctx context.Context, batchID string) (entity.AdjustmentTotals, error) {
	var t entity.AdjustmentTotals
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE type = 'Addition'), 0)::BIGINT,
			COALESCE(SUM(quantity) FILTER (WHERE type = 'Subtraction'), 0)::BIGINT
		FROM adjustments WHERE batch_id = $1`, batchID,
	).Scan(&t.AdditionTotal, &t.SubtractionTotal)
	if err != nil {
		return entity.AdjustmentTotals{}, fmt.Errorf("sum adjustments: %w", err)
	}
	return t, nil
}

func (r *AdjustmentRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Adjustment, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Adjustment, 0)
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAdjustment(row pgx.Row) (*entity.Adjustment, error) {
	var a entity.Adjustment
	if err := row.Scan(&a.ID, &a.ItemID, &a.BatchID, &a.Quantity, &a.Type, &a.Reason, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
