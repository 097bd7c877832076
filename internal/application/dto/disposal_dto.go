package dto

import "time"

// RegisterDisposalRequest body para POST /disposals.
type RegisterDisposalRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	BatchID  string `json:"batch_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
	Reason   string `json:"reason" validate:"required,max=1000"`
}

// DisposalResponse salida de una baja.
type DisposalResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	BatchID   string    `json:"batch_id"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// DisposalResultResponse resultado de una baja admitida: el registro y el ítem actualizado.
type DisposalResultResponse struct {
	Disposal       DisposalResponse `json:"disposal"`
	Item           ItemResponse     `json:"item"`
	RemainingStock int64            `json:"remaining_stock"`
}

// DisposalListResponse listado paginado.
type DisposalListResponse struct {
	Items []DisposalResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// BatchDisposalsResponse bajas de un lote con su total (0 si no hay).
type BatchDisposalsResponse struct {
	BatchID       string             `json:"batch_id"`
	DisposalTotal int64              `json:"disposal_total"`
	Documents     []DisposalResponse `json:"documents"`
}
