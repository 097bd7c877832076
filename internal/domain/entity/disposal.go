package entity

import "time"

// Disposal representa una baja de unidades de un lote (vencimiento, daño, etc.).
type Disposal struct {
	ID        string
	ItemID    string
	BatchID   string
	Quantity  int64
	Reason    string
	CreatedAt time.Time
}
