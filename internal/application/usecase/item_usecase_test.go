package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/application/usecase"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
	"github.com/jhoicas/medicine-inventory-api/internal/infrastructure/memory"
)

func newItemUseCase() *usecase.ItemUseCase {
	store := memory.NewStore()
	return usecase.NewItemUseCase(store, store.Items())
}

// directTx ejecuta fn sin transacción real con los repositorios dados.
type directTx struct {
	items repository.ItemRepository
}

func (tx directTx) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	return fn(ctx, inventory.TxRepos{Items: tx.items})
}

// quantityChangedAfterRead simula una baja confirmada justo después de leer el ítem.
type quantityChangedAfterRead struct {
	repository.ItemRepository
	afterRead func()
}

func (r *quantityChangedAfterRead) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	it, err := r.ItemRepository.GetByID(ctx, id)
	if r.afterRead != nil {
		r.afterRead()
		r.afterRead = nil
	}
	return it, err
}

func TestItemUseCase_CreateDerivesLevel(t *testing.T) {
	uc := newItemUseCase()
	ctx := context.Background()

	cases := []struct {
		qty   int64
		level string
	}{
		{0, entity.QuantityLevelLow},
		{19, entity.QuantityLevelLow},
		{20, entity.QuantityLevelModerate},
		{21, entity.QuantityLevelModerate},
		{50, entity.QuantityLevelModerate},
		{51, entity.QuantityLevelHigh},
	}
	for _, c := range cases {
		out, err := uc.Create(ctx, dto.CreateItemRequest{Product: " Amoxicilina ", OverallQuantity: c.qty, Description: "Cápsulas 500mg"})
		require.NoError(t, err)
		assert.Equal(t, c.level, out.QuantityLevel, "qty=%d", c.qty)
		assert.Equal(t, "Amoxicilina", out.Product)
		assert.NotEmpty(t, out.ID)
	}
}

func TestItemUseCase_CreateValidation(t *testing.T) {
	uc := newItemUseCase()

	_, err := uc.Create(context.Background(), dto.CreateItemRequest{Description: "x"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "product", ve.Field)

	_, err = uc.Create(context.Background(), dto.CreateItemRequest{Product: "x", OverallQuantity: -1, Description: "x"})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "overall_quantity", ve.Field)
}

func TestItemUseCase_UpdateRecomputesLevel(t *testing.T) {
	uc := newItemUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateItemRequest{Product: "Ibuprofeno", OverallQuantity: 10, Description: "Tabletas"})
	require.NoError(t, err)
	assert.Equal(t, entity.QuantityLevelLow, created.QuantityLevel)

	qty := int64(80)
	updated, err := uc.Update(ctx, created.ID, dto.UpdateItemRequest{OverallQuantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(80), updated.OverallQuantity)
	assert.Equal(t, entity.QuantityLevelHigh, updated.QuantityLevel)
	assert.Equal(t, "Ibuprofeno", updated.Product)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuantityLevelHigh, got.QuantityLevel)

	blank := "  "
	_, err = uc.Update(ctx, created.ID, dto.UpdateItemRequest{Product: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUseCase_NotFound(t *testing.T) {
	uc := newItemUseCase()
	ctx := context.Background()

	_, err := uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, "nope", dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_List(t *testing.T) {
	uc := newItemUseCase()
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, dto.CreateItemRequest{Product: name, Description: "x"})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "B", out.Items[0].Product)
	assert.Equal(t, "A", out.Items[1].Product)
}

func TestItemUseCase_UpdateDescriptionKeepsQuantity(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()
	created, err := usecase.NewItemUseCase(directTx{items: items}, items).
		Create(ctx, dto.CreateItemRequest{Product: "Paracetamol", OverallQuantity: 100, Description: "500mg"})
	require.NoError(t, err)

	racing := &quantityChangedAfterRead{
		ItemRepository: items,
		afterRead: func() {
			require.NoError(t, items.UpdateQuantity(ctx, created.ID, 60, entity.QuantityLevelHigh))
		},
	}
	uc := usecase.NewItemUseCase(directTx{items: racing}, items)

	desc := "500mg caja x 100"
	_, err = uc.Update(ctx, created.ID, dto.UpdateItemRequest{Description: &desc})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.OverallQuantity)
	assert.Equal(t, entity.QuantityLevelHigh, got.QuantityLevel)
	assert.Equal(t, "500mg caja x 100", got.Description)
	assert.Equal(t, "Paracetamol", got.Product)
}

func TestItemUseCase_UpdateRejectsEmptyDescription(t *testing.T) {
	uc := newItemUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateItemRequest{Product: "Loratadina", OverallQuantity: 5, Description: "10mg"})
	require.NoError(t, err)

	for _, d := range []string{"", "   "} {
		desc := d
		_, err = uc.Update(ctx, created.ID, dto.UpdateItemRequest{Description: &desc})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve), "description=%q", d)
		assert.Equal(t, "description", ve.Field)
	}

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "10mg", got.Description)
}
