package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/medicine-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
	"github.com/jhoicas/medicine-inventory-api/internal/infrastructure/batchlock"
	"github.com/jhoicas/medicine-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/medicine-inventory-api/pkg/logger"
)

type fixture struct {
	store       *memory.Store
	stockIns    *inventory.StockInUseCase
	disposals   *inventory.DisposalUseCase
	adjustments *inventory.AdjustmentUseCase
	batches     *inventory.BatchQueryUseCase
}

func newFixture(t *testing.T, policy string) *fixture {
	t.Helper()
	store := memory.NewStore()
	locker := batchlock.NewLocal()
	log := logger.Nop()
	return &fixture{
		store:       store,
		stockIns:    inventory.NewStockInUseCase(store, locker, store.StockIns(), log),
		disposals:   inventory.NewDisposalUseCase(store, locker, store.Disposals(), policy, log),
		adjustments: inventory.NewAdjustmentUseCase(store, locker, store.Adjustments(), log),
		batches:     inventory.NewBatchQueryUseCase(store.StockIns(), store.Disposals(), store.Adjustments()),
	}
}

func (f *fixture) seedItem(t *testing.T, id string, qty int64) {
	t.Helper()
	require.NoError(t, f.store.Items().Create(context.Background(), &entity.Item{
		ID:              id,
		Product:         "Paracetamol 500mg",
		OverallQuantity: qty,
		QuantityLevel:   domaininv.QuantityLevel(qty),
		Description:     "Tabletas",
	}))
}

func (f *fixture) receive(t *testing.T, itemID, batchID string, qty int64) {
	t.Helper()
	_, err := f.stockIns.Create(context.Background(), dto.CreateStockInRequest{
		ItemID:         itemID,
		BatchID:        batchID,
		ReceiptID:      "R-" + batchID,
		Quantity:       qty,
		ExpirationDate: "2027-01-31",
	})
	require.NoError(t, err)
}

func (f *fixture) adjust(t *testing.T, itemID, batchID, typ string, qty int64) {
	t.Helper()
	_, err := f.adjustments.Register(context.Background(), dto.RegisterAdjustmentRequest{
		ItemID: itemID, BatchID: batchID, Quantity: qty, Type: typ, Reason: "conteo físico",
	})
	require.NoError(t, err)
}

func dispose(itemID, batchID string, qty int64) dto.RegisterDisposalRequest {
	return dto.RegisterDisposalRequest{ItemID: itemID, BatchID: batchID, Quantity: qty, Reason: "vencido"}
}

func TestDisposal_AcceptedThenRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 100)
	f.receive(t, "it-1", "B1", 100)

	remaining, err := f.batches.Remaining(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), remaining)

	res, err := f.disposals.Register(ctx, dispose("it-1", "B1", 50))
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.RemainingStock)
	assert.Equal(t, int64(50), res.Item.OverallQuantity)
	assert.Equal(t, entity.QuantityLevelModerate, res.Item.QuantityLevel)

	remaining, err = f.batches.Remaining(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), remaining)

	_, err = f.disposals.Register(ctx, dispose("it-1", "B1", 60))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, int64(60), ise.Requested)
	assert.Equal(t, int64(50), ise.Remaining)

	// La baja rechazada no deja rastro.
	total, err := f.store.Disposals().SumByBatchID(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
	item, err := f.store.Items().GetByID(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), item.OverallQuantity)
}

func TestDisposal_ExactRemainingIsAccepted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 10)
	f.receive(t, "it-1", "B1", 10)

	res, err := f.disposals.Register(ctx, dispose("it-1", "B1", 10))
	require.NoError(t, err)
	assert.Zero(t, res.RemainingStock)
	assert.Equal(t, entity.QuantityLevelLow, res.Item.QuantityLevel)
}

func TestRemaining_WithAdjustments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-2", 30)
	f.receive(t, "it-2", "B2", 30)
	f.adjust(t, "it-2", "B2", entity.AdjustmentTypeAddition, 20)
	f.adjust(t, "it-2", "B2", entity.AdjustmentTypeSubtraction, 5)

	first, err := f.batches.Remaining(ctx, "B2")
	require.NoError(t, err)
	assert.Equal(t, int64(45), first)

	second, err := f.batches.Remaining(ctx, "B2")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	summary, err := f.batches.Summary(ctx, "B2")
	require.NoError(t, err)
	assert.Equal(t, &dto.BatchSummaryResponse{
		BatchID:          "B2",
		ItemID:           "it-2",
		StockInQuantity:  30,
		DisposalTotal:    0,
		AdditionTotal:    20,
		SubtractionTotal: 5,
		RemainingStock:   45,
	}, summary)
}

func TestAdjustment_SubtractionBeyondStockIsAcceptedAndBlocksDisposals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 10)
	f.receive(t, "it-1", "B1", 10)
	f.adjust(t, "it-1", "B1", entity.AdjustmentTypeSubtraction, 15)

	remaining, err := f.batches.Remaining(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, int64(-5), remaining)

	_, err = f.disposals.Register(ctx, dispose("it-1", "B1", 1))
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, int64(-5), ise.Remaining)

	// El ajuste no toca la cantidad total del ítem.
	item, err := f.store.Items().GetByID(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.OverallQuantity)
}

func TestDisposal_UnknownBatch(t *testing.T) {
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 10)

	_, err := f.disposals.Register(context.Background(), dispose("it-1", "NOPE", 1))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Batch ID mismatch")
}

func TestDisposal_UnknownItem(t *testing.T) {
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 10)
	f.receive(t, "it-1", "B1", 10)

	_, err := f.disposals.Register(context.Background(), dispose("NOPE", "B1", 1))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Item ID mismatch")
}

func TestDisposal_Validation(t *testing.T) {
	f := newFixture(t, domaininv.QuantityPolicyClamp)

	cases := map[string]dto.RegisterDisposalRequest{
		"item_id":  {BatchID: "B1", Quantity: 1, Reason: "x"},
		"batch_id": {ItemID: "it-1", Quantity: 1, Reason: "x"},
		"quantity": {ItemID: "it-1", BatchID: "B1", Quantity: 0, Reason: "x"},
		"reason":   {ItemID: "it-1", BatchID: "B1", Quantity: 1, Reason: "   "},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := f.disposals.Register(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, field, ve.Field)
		})
	}
}

func TestDisposal_QuantityPolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("clamp", func(t *testing.T) {
		f := newFixture(t, domaininv.QuantityPolicyClamp)
		f.seedItem(t, "it-1", 5)
		f.receive(t, "it-1", "B1", 40)

		res, err := f.disposals.Register(ctx, dispose("it-1", "B1", 30))
		require.NoError(t, err)
		assert.Zero(t, res.Item.OverallQuantity)
		assert.Equal(t, entity.QuantityLevelLow, res.Item.QuantityLevel)
	})

	t.Run("absolute", func(t *testing.T) {
		f := newFixture(t, domaininv.QuantityPolicyAbsolute)
		f.seedItem(t, "it-1", 5)
		f.receive(t, "it-1", "B1", 40)

		res, err := f.disposals.Register(ctx, dispose("it-1", "B1", 30))
		require.NoError(t, err)
		assert.Equal(t, int64(25), res.Item.OverallQuantity)
		assert.Equal(t, entity.QuantityLevelModerate, res.Item.QuantityLevel)
	})

	t.Run("invalid policy falls back to clamp", func(t *testing.T) {
		f := newFixture(t, "whatever")
		f.seedItem(t, "it-1", 5)
		f.receive(t, "it-1", "B1", 40)

		res, err := f.disposals.Register(ctx, dispose("it-1", "B1", 30))
		require.NoError(t, err)
		assert.Zero(t, res.Item.OverallQuantity)
	})
}

func TestDisposal_ConcurrentNeverOverDisposes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 100)
	f.receive(t, "it-1", "B1", 100)

	const workers = 25
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.disposals.Register(ctx, dispose("it-1", "B1", 7))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 100 / 7 = 14 bajas caben.
	assert.Equal(t, 14, accepted)
	assert.Equal(t, workers-14, rejected)

	remaining, err := f.batches.Remaining(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), remaining)

	item, err := f.store.Items().GetByID(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.OverallQuantity)
}

// rowLockingTx corre las transacciones sin exclusión global, como Postgres en READ COMMITTED:
// solo GetByIDForUpdate toma un candado por ítem, que se libera al terminar fn.
type rowLockingTx struct {
	store *memory.Store
	mu    sync.Mutex
	rows  map[string]*sync.Mutex
}

func newRowLockingTx(store *memory.Store) *rowLockingTx {
	return &rowLockingTx{store: store, rows: make(map[string]*sync.Mutex)}
}

func (tx *rowLockingTx) row(id string) *sync.Mutex {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	m, ok := tx.rows[id]
	if !ok {
		m = &sync.Mutex{}
		tx.rows[id] = m
	}
	return m
}

func (tx *rowLockingTx) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	items := &rowLockedItems{ItemRepository: tx.store.Items(), tx: tx}
	defer items.release()
	return fn(ctx, inventory.TxRepos{
		Items:       items,
		StockIns:    tx.store.StockIns(),
		Disposals:   tx.store.Disposals(),
		Adjustments: tx.store.Adjustments(),
	})
}

type rowLockedItems struct {
	repository.ItemRepository
	tx   *rowLockingTx
	held []*sync.Mutex
}

// GetByID lee sin candado y deja una ventana antes de devolver, para que las lecturas se crucen.
func (r *rowLockedItems) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := r.ItemRepository.GetByID(ctx, id)
	time.Sleep(time.Millisecond)
	return it, err
}

func (r *rowLockedItems) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	m := r.tx.row(id)
	m.Lock()
	r.held = append(r.held, m)
	return r.GetByID(ctx, id)
}

func (r *rowLockedItems) release() {
	for _, m := range r.held {
		m.Unlock()
	}
}

func TestDisposal_ConcurrentBatchesOfSameItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 100)

	const batches = 10
	for i := 0; i < batches; i++ {
		f.receive(t, "it-1", fmt.Sprintf("B%d", i), 20)
	}
	disposals := inventory.NewDisposalUseCase(newRowLockingTx(f.store), batchlock.NewLocal(),
		f.store.Disposals(), domaininv.QuantityPolicyClamp, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < batches; i++ {
		wg.Add(1)
		go func(batchID string) {
			defer wg.Done()
			_, err := disposals.Register(ctx, dispose("it-1", batchID, 3))
			assert.NoError(t, err)
		}(fmt.Sprintf("B%d", i))
	}
	wg.Wait()

	// Cada baja descuenta del total aunque los lotes sean distintos: 100 - 10*3.
	item, err := f.store.Items().GetByID(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, int64(70), item.OverallQuantity)
	assert.Equal(t, entity.QuantityLevelHigh, item.QuantityLevel)

	for i := 0; i < batches; i++ {
		remaining, err := f.batches.Remaining(ctx, fmt.Sprintf("B%d", i))
		require.NoError(t, err)
		assert.Equal(t, int64(17), remaining)
	}
}

func TestStockIn_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 0)

	out, err := f.stockIns.Create(ctx, dto.CreateStockInRequest{
		ItemID: "it-1", BatchID: " B1 ", ReceiptID: "R-1", Quantity: 12, ExpirationDate: "2027-03-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "B1", out.BatchID)
	assert.Equal(t, 2027, out.ExpirationDate.Year())

	// La entrada no altera la cantidad total del ítem.
	item, err := f.store.Items().GetByID(ctx, "it-1")
	require.NoError(t, err)
	assert.Zero(t, item.OverallQuantity)

	got, err := f.batches.StockInByBatch(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

func TestStockIn_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 0)
	f.receive(t, "it-1", "B1", 10)

	_, err := f.stockIns.Create(ctx, dto.CreateStockInRequest{
		ItemID: "it-1", BatchID: "B1", ReceiptID: "R-2", Quantity: 5, ExpirationDate: "2027-01-01",
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "Batch ID already exists")

	_, err = f.stockIns.Create(ctx, dto.CreateStockInRequest{
		ItemID: "NOPE", BatchID: "B2", ReceiptID: "R-3", Quantity: 5, ExpirationDate: "2027-01-01",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Item ID does not exist")

	_, err = f.stockIns.Create(ctx, dto.CreateStockInRequest{
		ItemID: "it-1", BatchID: "B3", ReceiptID: "R-4", Quantity: 5, ExpirationDate: "31/01/2027",
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "expiration_date", ve.Field)
}

func TestAdjustment_UnknownBatch(t *testing.T) {
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	_, err := f.adjustments.Register(context.Background(), dto.RegisterAdjustmentRequest{
		ItemID: "it-1", BatchID: "NOPE", Quantity: 3, Type: entity.AdjustmentTypeAddition, Reason: "x",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Batch ID does not exist")
}

func TestAdjustment_InvalidType(t *testing.T) {
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	_, err := f.adjustments.Register(context.Background(), dto.RegisterAdjustmentRequest{
		ItemID: "it-1", BatchID: "B1", Quantity: 3, Type: "Gift", Reason: "x",
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "type", ve.Field)
}

func TestBatchQueries_ListsAndTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 100)
	f.receive(t, "it-1", "B1", 100)
	f.adjust(t, "it-1", "B1", entity.AdjustmentTypeAddition, 4)
	f.adjust(t, "it-1", "B1", entity.AdjustmentTypeAddition, 6)
	f.adjust(t, "it-1", "B1", entity.AdjustmentTypeSubtraction, 3)
	_, err := f.disposals.Register(ctx, dispose("it-1", "B1", 8))
	require.NoError(t, err)
	_, err = f.disposals.Register(ctx, dispose("it-1", "B1", 2))
	require.NoError(t, err)

	ds, err := f.batches.Disposals(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), ds.DisposalTotal)
	assert.Len(t, ds.Documents, 2)

	as, err := f.batches.Adjustments(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), as.AdditionTotal)
	assert.Equal(t, int64(3), as.SubtractionTotal)
	assert.Len(t, as.Documents, 3)

	empty, err := f.batches.Disposals(ctx, "B9")
	require.NoError(t, err)
	assert.Zero(t, empty.DisposalTotal)
	assert.Empty(t, empty.Documents)

	_, err = f.batches.Summary(ctx, "B9")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)

	_, err := f.disposals.GetByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.adjustments.GetByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.stockIns.GetByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.batches.StockInByBatch(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Paginates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domaininv.QuantityPolicyClamp)
	f.seedItem(t, "it-1", 100)
	f.receive(t, "it-1", "B1", 100)
	for i := 0; i < 3; i++ {
		_, err := f.disposals.Register(ctx, dispose("it-1", "B1", 1))
		require.NoError(t, err)
	}

	page, err := f.disposals.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Page.Limit)

	all, err := f.disposals.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, 20, all.Page.Limit)
}
