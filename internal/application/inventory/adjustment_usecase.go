package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
	"github.com/jhoicas/medicine-inventory-api/pkg/logger"
)

// AdjustmentUseCase registra ajustes manuales (Addition/Subtraction) sobre un lote existente.
// No valida contra el stock restante ni actualiza el ítem: el efecto se ve en la siguiente baja.
type AdjustmentUseCase struct {
	txRunner    TxRunner
	locker      BatchLocker
	adjustments repository.AdjustmentRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, locker BatchLocker, adjustments repository.AdjustmentRepository, log *logger.Logger) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:    txRunner,
		locker:      locker,
		adjustments: adjustments,
		log:         log.Component("adjustment"),
		now:         time.Now,
	}
}

// Register valida campos, exige que el lote exista ("Batch ID does not exist") y persiste el ajuste.
// Corre bajo el lock del lote para que una baja concurrente no lea agregados a medias.
func (uc *AdjustmentUseCase) Register(ctx context.Context, in dto.RegisterAdjustmentRequest) (*dto.AdjustmentResponse, error) {
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

	var adj *entity.Adjustment
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		stockIn, err := repos.StockIns.GetByBatchIDForUpdate(ctx, in.BatchID)
		if err != nil {
			return domain.WrapStorage("get stock-in", err)
		}
		if stockIn == nil {
			return domain.NewNotFound("batch", msgBatchDoesNotExist)
		}
		adj = &entity.Adjustment{
			ID:        uuid.New().String(),
			ItemID:    in.ItemID,
			BatchID:   in.BatchID,
			Quantity:  in.Quantity,
			Type:      in.Type,
			Reason:    in.Reason,
			CreatedAt: uc.now(),
		}
		return domain.WrapStorage("create adjustment", repos.Adjustments.Create(ctx, adj))
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", in.BatchID).Str("type", in.Type).Msg("ajuste rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("adjustment_id", adj.ID).
		Str("batch_id", adj.BatchID).
		Str("type", adj.Type).
		Int64("quantity", adj.Quantity).
		Msg("ajuste registrado")
	out := dto.NewAdjustmentResponse(adj)
	return &out, nil
}

// GetByID obtiene un ajuste por ID o NotFound.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	a, err := uc.adjustments.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get adjustment", err)
	}
	if a == nil {
		return nil, domain.NewNotFound("adjustment", "Record not found")
	}
	out := dto.NewAdjustmentResponse(a)
	return &out, nil
}

// List lista ajustes con paginación.
func (uc *AdjustmentUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.AdjustmentListResponse, error) {
	page.DefaultPage()
	list, err := uc.adjustments.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.WrapStorage("list adjustments", err)
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.NewAdjustmentResponse(a))
	}
	return &dto.AdjustmentListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
