package entity

// BatchTotals agregados de movimientos de un lote. Un agregado ausente vale 0.
type BatchTotals struct {
	DisposalTotal    int64
	AdditionTotal    int64
	SubtractionTotal int64
}

// AdjustmentTotals sumas de ajustes de un lote por tipo.
type AdjustmentTotals struct {
	AdditionTotal    int64
	SubtractionTotal int64
}
