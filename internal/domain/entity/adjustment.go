package entity

import "time"

// Tipos de ajuste manual sobre un lote.
const (
	AdjustmentTypeAddition    = "Addition"
	AdjustmentTypeSubtraction = "Subtraction"
)

// Adjustment corrección manual (suma o resta) de la cantidad efectiva de un lote.
// Quantity siempre es positiva; el signo lo da Type.
type Adjustment struct {
	ID        string
	ItemID    string
	BatchID   string
	Quantity  int64
	Type      string
	Reason    string
	CreatedAt time.Time
}

// IsValidAdjustmentType indica si t es Addition o Subtraction.
func IsValidAdjustmentType(t string) bool {
	return t == AdjustmentTypeAddition || t == AdjustmentTypeSubtraction
}
