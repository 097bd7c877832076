// Package batchlock exclusión mutua por lote para las admisiones de inventario.
package batchlock

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
)

var _ inventory.BatchLocker = (*Local)(nil)

// Local lock por lote dentro del proceso. Suficiente con una sola instancia de la API.
type Local struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

// NewLocal crea el lock en proceso.
func NewLocal() *Local {
	return &Local{locks: map[string]*localEntry{}}
}

// Lock espera el lote o hasta que ctx termine.
func (l *Local) Lock(ctx context.Context, batchID string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[batchID]
	if !ok {
		e = &localEntry{ch: make(chan struct{}, 1)}
		l.locks[batchID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(batchID, e)
		return nil, fmt.Errorf("%w: %v", domain.ErrLockNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(batchID, e)
		})
	}, nil
}

func (l *Local) release(batchID string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, batchID)
	}
}
