package postgres

import (
	"context"
	"fmt"
)

// schema tablas del inventario. Idempotente: se ejecuta en cada arranque.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id               TEXT PRIMARY KEY,
		product          TEXT NOT NULL,
		overall_quantity BIGINT NOT NULL DEFAULT 0,
		quantity_level   TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stock_ins (
		id              TEXT PRIMARY KEY,
		item_id         TEXT NOT NULL REFERENCES items(id),
		batch_id        TEXT NOT NULL UNIQUE,
		receipt_id      TEXT NOT NULL,
		quantity        BIGINT NOT NULL CHECK (quantity > 0),
		expiration_date DATE NOT NULL,
		note            TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS disposals (
		id         TEXT PRIMARY KEY,
		item_id    TEXT NOT NULL REFERENCES items(id),
		batch_id   TEXT NOT NULL REFERENCES stock_ins(batch_id),
		quantity   BIGINT NOT NULL CHECK (quantity > 0),
		reason     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_disposals_batch_id ON disposals(batch_id)`,
	`CREATE TABLE IF NOT EXISTS adjustments (
		id         TEXT PRIMARY KEY,
		item_id    TEXT NOT NULL,
		batch_id   TEXT NOT NULL REFERENCES stock_ins(batch_id),
		quantity   BIGINT NOT NULL CHECK (quantity > 0),
		type       TEXT NOT NULL CHECK (type IN ('Addition', 'Subtraction')),
		reason     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_adjustments_batch_id ON adjustments(batch_id)`,
}

// Migrate crea el esquema si no existe.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
