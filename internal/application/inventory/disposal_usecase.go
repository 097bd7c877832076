package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/medicine-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
	"github.com/jhoicas/medicine-inventory-api/pkg/logger"
)

// DisposalUseCase admite bajas de un lote validando contra el stock restante calculado al momento.
// Lectura, validación, inserción y actualización del ítem ocurren en una sola transacción
// con el lote bloqueado, de modo que dos bajas concurrentes no pueden sobre-descontar.
type DisposalUseCase struct {
	txRunner  TxRunner
	locker    BatchLocker
	disposals repository.DisposalRepository
	policy    string
	log       *logger.Logger
	now       func() time.Time
}

// NewDisposalUseCase construye el caso de uso. policy: clamp o absolute (ver domain/inventory).
func NewDisposalUseCase(
	txRunner TxRunner,
	locker BatchLocker,
	disposals repository.DisposalRepository,
	policy string,
	log *logger.Logger,
) *DisposalUseCase {
	if !domaininv.IsValidQuantityPolicy(policy) {
		policy = domaininv.QuantityPolicyClamp
	}
	return &DisposalUseCase{
		txRunner:  txRunner,
		locker:    locker,
		disposals: disposals,
		policy:    policy,
		log:       log.Component("disposal"),
		now:       time.Now,
	}
}

// Register valida y registra una baja:
//  1. el ítem debe existir ("Item ID mismatch")
//  2. el lote debe existir ("Batch ID mismatch")
//  3. restante = entrada + sumas - restas - bajas previas (sin contar esta)
//  4. cantidad > restante -> InsufficientStockError{Requested, Remaining}
//  5. inserta la baja y actualiza cantidad y nivel del ítem
func (uc *DisposalUseCase) Register(ctx context.Context, in dto.RegisterDisposalRequest) (*dto.DisposalResultResponse, error) {
	in.ItemID = strings.TrimSpace(in.ItemID)
	in.BatchID = strings.TrimSpace(in.BatchID)
	in.Reason = strings.TrimSpace(in.Reason)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var out *dto.DisposalResultResponse
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		// Se bloquea el ítem antes que el lote: bajas de lotes distintos del mismo ítem se serializan aquí.
		item, err := repos.Items.GetByIDForUpdate(ctx, in.ItemID)
		if err != nil {
			return domain.WrapStorage("get item", err)
		}
		if item == nil {
			return domain.NewNotFound("item", msgItemMismatch)
		}

		stock, err := loadBatchStock(ctx, repos, in.BatchID, true)
		if err != nil {
			return err
		}
		if in.Quantity > stock.Remaining {
			return &domain.InsufficientStockError{Requested: in.Quantity, Remaining: stock.Remaining}
		}

		now := uc.now()
		disposal := &entity.Disposal{
			ID:        uuid.New().String(),
			ItemID:    in.ItemID,
			BatchID:   in.BatchID,
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			CreatedAt: now,
		}
		if err := repos.Disposals.Create(ctx, disposal); err != nil {
			return domain.WrapStorage("create disposal", err)
		}

		item.OverallQuantity = domaininv.QuantityAfterDisposal(uc.policy, item.OverallQuantity, in.Quantity)
		item.QuantityLevel = domaininv.QuantityLevel(item.OverallQuantity)
		item.UpdatedAt = now
		if err := repos.Items.UpdateQuantity(ctx, item.ID, item.OverallQuantity, item.QuantityLevel); err != nil {
			return domain.WrapStorage("update item quantity", err)
		}

		out = &dto.DisposalResultResponse{
			Disposal:       dto.NewDisposalResponse(disposal),
			Item:           dto.NewItemResponse(item),
			RemainingStock: stock.Remaining - in.Quantity,
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("item_id", in.ItemID).
			Str("batch_id", in.BatchID).
			Int64("quantity", in.Quantity).
			Msg("baja rechazada")
		return nil, err
	}

	uc.log.Info().
		Str("disposal_id", out.Disposal.ID).
		Str("batch_id", in.BatchID).
		Int64("quantity", in.Quantity).
		Int64("remaining", out.RemainingStock).
		Int64("overall_quantity", out.Item.OverallQuantity).
		Msg("baja registrada")
	return out, nil
}

// GetByID obtiene una baja por ID o NotFound.
func (uc *DisposalUseCase) GetByID(ctx context.Context, id string) (*dto.DisposalResponse, error) {
	d, err := uc.disposals.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get disposal", err)
	}
	if d == nil {
		return nil, domain.NewNotFound("disposal", "Record not found")
	}
	out := dto.NewDisposalResponse(d)
	return &out, nil
}

// List lista bajas con paginación.
func (uc *DisposalUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.DisposalListResponse, error) {
	page.DefaultPage()
	list, err := uc.disposals.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.WrapStorage("list disposals", err)
	}
	items := make([]dto.DisposalResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.NewDisposalResponse(d))
	}
	return &dto.DisposalListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
