package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/medicine-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para medicamentos. El nivel de cantidad nunca viene del cliente.
type ItemUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ItemRepository
	now      func() time.Time
}

// NewItemUseCase construye el caso de uso. Update corre en una transacción de txRunner.
func NewItemUseCase(txRunner inventory.TxRunner, repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

// Create crea un medicamento y deriva su nivel de la cantidad inicial.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.Product = strings.TrimSpace(in.Product)
	in.Description = strings.TrimSpace(in.Description)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	item := &entity.Item{
		ID:              uuid.New().String(),
		Product:         in.Product,
		OverallQuantity: in.OverallQuantity,
		QuantityLevel:   domaininv.QuantityLevel(in.OverallQuantity),
		Description:     in.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, domain.WrapStorage("create item", err)
	}
	out := dto.NewItemResponse(item)
	return &out, nil
}

// GetByID obtiene un medicamento por ID o NotFound.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("get item", err)
	}
	if item == nil {
		return nil, domain.NewNotFound("item", "Record not found")
	}
	out := dto.NewItemResponse(item)
	return &out, nil
}

// Update actualiza los campos enviados con el ítem bloqueado.
// La cantidad solo se escribe si viene en la petición, así una edición de descripción
// no pisa el descuento de una baja concurrente.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.Product != nil {
		p := strings.TrimSpace(*in.Product)
		if p == "" {
			return nil, domain.NewValidationError("product", "no puede estar vacío")
		}
		in.Product = &p
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return nil, domain.NewValidationError("description", "no puede estar vacío")
		}
		in.Description = &d
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var out *dto.ItemResponse
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		item, err := repos.Items.GetByIDForUpdate(ctx, id)
		if err != nil {
			return domain.WrapStorage("get item", err)
		}
		if item == nil {
			return domain.NewNotFound("item", "Medicine item not found")
		}
		now := uc.now()
		if in.Product != nil || in.Description != nil {
			if in.Product != nil {
				item.Product = *in.Product
			}
			if in.Description != nil {
				item.Description = *in.Description
			}
			item.UpdatedAt = now
			if err := repos.Items.Update(ctx, item); err != nil {
				return domain.WrapStorage("update item", err)
			}
		}
		if in.OverallQuantity != nil {
			item.OverallQuantity = *in.OverallQuantity
			item.UpdatedAt = now
			if err := repos.Items.UpdateQuantity(ctx, item.ID, item.OverallQuantity, domaininv.QuantityLevel(item.OverallQuantity)); err != nil {
				return domain.WrapStorage("update item quantity", err)
			}
		}
		item.QuantityLevel = domaininv.QuantityLevel(item.OverallQuantity)
		resp := dto.NewItemResponse(item)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista medicamentos con paginación.
func (uc *ItemUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.WrapStorage("list items", err)
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, dto.NewItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
