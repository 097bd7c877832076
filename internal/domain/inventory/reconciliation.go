package inventory

import "github.com/jhoicas/medicine-inventory-api/internal/domain/entity"

// Umbrales de nivel: Low < 20, Moderate 20–50, High > 50.
const (
	ModerateThreshold = 20
	HighThreshold     = 50
)

// Políticas para recalcular OverallQuantity de un ítem tras una baja.
const (
	// QuantityPolicyClamp resta y deja el resultado en 0 si queda negativo.
	QuantityPolicyClamp = "clamp"
	// QuantityPolicyAbsolute |overall - disposed|, compatible con los datos históricos.
	QuantityPolicyAbsolute = "absolute"
)

// RemainingStock calcula el stock disponible de un lote (servicio de dominio, sin estado).
// Restante = Entrada + Sumas - Restas - Bajas
func RemainingStock(stockInQty int64, totals entity.BatchTotals) int64 {
	return stockInQty + totals.AdditionTotal - totals.SubtractionTotal - totals.DisposalTotal
}

// QuantityLevel devuelve el nivel (Low/Moderate/High) para una cantidad total.
func QuantityLevel(overallQuantity int64) string {
	switch {
	case overallQuantity > HighThreshold:
		return entity.QuantityLevelHigh
	case overallQuantity >= ModerateThreshold:
		return entity.QuantityLevelModerate
	default:
		return entity.QuantityLevelLow
	}
}

// QuantityAfterDisposal aplica la política configurada a la cantidad total del ítem.
// Una política desconocida se trata como clamp.
func QuantityAfterDisposal(policy string, overallQuantity, disposed int64) int64 {
	diff := overallQuantity - disposed
	if policy == QuantityPolicyAbsolute {
		if diff < 0 {
			return -diff
		}
		return diff
	}
	if diff < 0 {
		return 0
	}
	return diff
}

// IsValidQuantityPolicy indica si p es una política soportada.
func IsValidQuantityPolicy(p string) bool {
	return p == QuantityPolicyClamp || p == QuantityPolicyAbsolute
}
