package dto

import "time"

// CreateStockInRequest entrada para registrar la recepción de un lote.
// ExpirationDate acepta RFC3339 o YYYY-MM-DD.
type CreateStockInRequest struct {
	ItemID         string `json:"item_id" validate:"required"`
	BatchID        string `json:"batch_id" validate:"required,max=100"`
	ReceiptID      string `json:"receipt_id" validate:"required,max=100"`
	Quantity       int64  `json:"quantity" validate:"gt=0"`
	ExpirationDate string `json:"expiration_date" validate:"required"`
	Note           string `json:"note" validate:"max=1000"`
}

// StockInResponse salida de una entrada de lote.
type StockInResponse struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item_id"`
	BatchID        string    `json:"batch_id"`
	ReceiptID      string    `json:"receipt_id"`
	Quantity       int64     `json:"quantity"`
	ExpirationDate time.Time `json:"expiration_date"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// StockInListResponse listado paginado.
type StockInListResponse struct {
	Items []StockInResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
