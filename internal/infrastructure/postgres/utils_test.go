package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert stock-in: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}
	other := errors.New("connection reset")

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(fk))
	assert.False(t, isUniqueViolation(other))
	assert.False(t, isForeignKeyViolation(other))
}

func TestSchemaDeclaresBatchConstraints(t *testing.T) {
	joined := fmt.Sprint(schema)
	assert.Contains(t, joined, "batch_id        TEXT NOT NULL UNIQUE")
	assert.Contains(t, joined, "REFERENCES stock_ins(batch_id)")
}
