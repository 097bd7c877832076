package entity

import "time"

// StockIn representa la recepción de un lote (batch) de un ítem.
// BatchID es único entre todos los registros de entrada.
type StockIn struct {
	ID             string
	ItemID         string
	BatchID        string
	ReceiptID      string
	Quantity       int64
	ExpirationDate time.Time
	Note           string
	CreatedAt      time.Time
}
