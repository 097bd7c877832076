package dto

import "time"

// CreateItemRequest entrada para crear un medicamento.
type CreateItemRequest struct {
	Product         string `json:"product" validate:"required,max=200"`
	OverallQuantity int64  `json:"overall_quantity" validate:"gte=0"`
	Description     string `json:"description" validate:"required,max=1000"`
}

// UpdateItemRequest entrada para actualizar un medicamento. El nivel se recalcula siempre.
type UpdateItemRequest struct {
	Product         *string `json:"product" validate:"omitempty,min=1,max=200"`
	OverallQuantity *int64  `json:"overall_quantity" validate:"omitempty,gte=0"`
	Description     *string `json:"description" validate:"omitempty,min=1,max=1000"`
}

// ItemResponse salida de un medicamento.
type ItemResponse struct {
	ID              string    `json:"id"`
	Product         string    `json:"product"`
	OverallQuantity int64     `json:"overall_quantity"`
	QuantityLevel   string    `json:"quantity_level"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ItemListResponse listado paginado.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
