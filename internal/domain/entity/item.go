package entity

import "time"

// Niveles de cantidad de un ítem (derivados de OverallQuantity).
const (
	QuantityLevelLow      = "Low"
	QuantityLevelModerate = "Moderate"
	QuantityLevelHigh     = "High"
)

// Item representa un medicamento del inventario de la clínica.
// QuantityLevel nunca se asigna a mano: se recalcula con cada cambio de OverallQuantity.
type Item struct {
	ID              string
	Product         string
	OverallQuantity int64
	QuantityLevel   string
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
