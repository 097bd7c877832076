// Package memory implementa los repositorios sobre un estado en proceso (DB_DRIVER=memory).
// Útil en desarrollo y en pruebas de los casos de uso; no persiste entre reinicios.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	items         []entity.Item
	itemIdx       map[string]int
	stockIns      []entity.StockIn
	stockInIdx    map[string]int
	batchIdx      map[string]int
	disposals     []entity.Disposal
	disposalIdx   map[string]int
	adjustments   []entity.Adjustment
	adjustmentIdx map[string]int
}

func newState() *state {
	return &state{
		itemIdx:       map[string]int{},
		stockInIdx:    map[string]int{},
		batchIdx:      map[string]int{},
		disposalIdx:   map[string]int{},
		adjustmentIdx: map[string]int{},
	}
}

func (s *state) clone() *state {
	return &state{
		items:         append([]entity.Item(nil), s.items...),
		itemIdx:       cloneIndex(s.itemIdx),
		stockIns:      append([]entity.StockIn(nil), s.stockIns...),
		stockInIdx:    cloneIndex(s.stockInIdx),
		batchIdx:      cloneIndex(s.batchIdx),
		disposals:     append([]entity.Disposal(nil), s.disposals...),
		disposalIdx:   cloneIndex(s.disposalIdx),
		adjustments:   append([]entity.Adjustment(nil), s.adjustments...),
		adjustmentIdx: cloneIndex(s.adjustmentIdx),
	}
}

func cloneIndex(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// accessFn da acceso exclusivo al estado durante fn.
type accessFn func(fn func(st *state) error) error

// Store estado compartido por los repositorios. Las transacciones se serializan con un único mutex
// y trabajan sobre una copia que solo se publica si fn termina sin error.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) access(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Run ejecuta fn con repositorios atados a una copia del estado; commit solo si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.st.clone()
	direct := func(f func(st *state) error) error { return f(work) }
	repos := inventory.TxRepos{
		Items:       &ItemRepo{with: direct},
		StockIns:    &StockInRepo{with: direct},
		Disposals:   &DisposalRepo{with: direct},
		Adjustments: &AdjustmentRepo{with: direct},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Items repositorio de ítems fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{with: s.access} }

// StockIns repositorio de entradas fuera de transacción.
func (s *Store) StockIns() *StockInRepo { return &StockInRepo{with: s.access} }

// Disposals repositorio de bajas fuera de transacción.
func (s *Store) Disposals() *DisposalRepo { return &DisposalRepo{with: s.access} }

// Adjustments repositorio de ajustes fuera de transacción.
func (s *Store) Adjustments() *AdjustmentRepo { return &AdjustmentRepo{with: s.access} }

// newestFirst pagina una lista en orden de inserción inverso (equivalente a ORDER BY created_at DESC).
func newestFirst[T any](list []T, limit, offset int) []*T {
	out := make([]*T, 0)
	for i := len(list) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		v := list[i]
		out = append(out, &v)
	}
	return out
}
