package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
	"github.com/jhoicas/medicine-inventory-api/pkg/logger"
)

// StockInUseCase registra la recepción de lotes. Un batch_id solo puede recibirse una vez.
type StockInUseCase struct {
	txRunner TxRunner
	locker   BatchLocker
	stockIns repository.StockInRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewStockInUseCase construye el caso de uso.
func NewStockInUseCase(txRunner TxRunner, locker BatchLocker, stockIns repository.StockInRepository, log *logger.Logger) *StockInUseCase {
	return &StockInUseCase{
		txRunner: txRunner,
		locker:   locker,
		stockIns: stockIns,
		log:      log.Component("stock_in"),
		now:      time.Now,
	}
}

// Create valida campos, exige que el ítem exista ("Item ID does not exist") y que el lote sea nuevo
// ("Batch ID already exists"). No modifica la cantidad total del ítem.
func (uc *StockInUseCase) Create(ctx context.Context, in dto.CreateStockInRequest) (*dto.StockInResponse, error) {
	in.ItemID = strings.TrimSpace(in.ItemID)
	in.BatchID = strings.TrimSpace(in.BatchID)
	in.ReceiptID = strings.TrimSpace(in.ReceiptID)
	in.Note = strings.TrimSpace(in.Note)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	expiration, err := parseDate(in.ExpirationDate)
	if err != nil {
		return nil, domain.NewValidationError("expiration_date", "formato esperado YYYY-MM-DD o RFC3339")
	}

	unlock, err := uc.locker.Lock(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var created *entity.StockIn
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		item, err := repos.Items.GetByID(ctx, in.ItemID)
		if err != nil {
			return domain.WrapStorage("get item", err)
		}
		if item == nil {
			return domain.NewNotFound("item", msgItemDoesNotExist)
		}
		existing, err := repos.StockIns.GetByBatchID(ctx, in.BatchID)
		if err != nil {
			return domain.WrapStorage("get stock-in", err)
		}
		if existing != nil {
			return &domain.DuplicateError{Resource: "batch", Message: msgBatchAlreadyExists}
		}
		created = &entity.StockIn{
			ID:             uuid.New().String(),
			ItemID:         in.ItemID,
			BatchID:        in.BatchID,
			ReceiptID:      in.ReceiptID,
			Quantity:       in.Quantity,
			ExpirationDate: expiration,
			Note:           in.Note,
			CreatedAt:      uc.now(),
		}
		if err := repos.StockIns.Create(ctx, created); err != nil {
			// La restricción única puede dispararse si otra instancia sin lock compartido ganó la carrera.
			if errors.Is(err, domain.ErrDuplicate) {
				return &domain.DuplicateError{Resource: "batch", Message: msgBatchAlreadyExists}
			}
			return domain.WrapStorage("create stock-in", err)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", in.ItemID).Str("batch_id", in.BatchID).Msg("entrada rechazada")
		return nil, err
	}

	uc.log.Info().Str("batch_id", created.BatchID).Int64("quantity", created.Quantity).Msg("lote recibido")
	out := dto.NewStockInResponse(created)
	return &out, nil
}

// GetByID obtiene una entrada por ID o NotFound.
func (uc *StockInUseCase) GetByID(ctx context.Context, id string) (*dto.StockInResponse, error) {
	in, err := uc.stockIns.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get stock-in", err)
	}
	if in == nil {
		return nil, domain.NewNotFound("stock_in", "Record not found")
	}
	out := dto.NewStockInResponse(in)
	return &out, nil
}

// List lista entradas con paginación.
func (uc *StockInUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.StockInListResponse, error) {
	page.DefaultPage()
	list, err := uc.stockIns.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.WrapStorage("list stock-ins", err)
	}
	items := make([]dto.StockInResponse, 0, len(list))
	for _, in := range list {
		items = append(items, dto.NewStockInResponse(in))
	}
	return &dto.StockInListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
