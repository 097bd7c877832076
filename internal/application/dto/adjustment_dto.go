package dto

import "time"

// RegisterAdjustmentRequest body para POST /adjustments.
type RegisterAdjustmentRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	BatchID  string `json:"batch_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
	Type     string `json:"type" validate:"required,oneof=Addition Subtraction"`
	Reason   string `json:"reason" validate:"required,max=1000"`
}

// AdjustmentResponse salida de un ajuste.
type AdjustmentResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	BatchID   string    `json:"batch_id"`
	Quantity  int64     `json:"quantity"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// AdjustmentListResponse listado paginado.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// BatchAdjustmentsResponse ajustes de un lote con totales por tipo (0 si no hay).
type BatchAdjustmentsResponse struct {
	BatchID          string               `json:"batch_id"`
	AdditionTotal    int64                `json:"addition_total"`
	SubtractionTotal int64                `json:"subtraction_total"`
	Documents        []AdjustmentResponse `json:"documents"`
}
