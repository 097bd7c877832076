package dto

// BatchSummaryResponse stock de un lote calculado al momento de la consulta.
type BatchSummaryResponse struct {
	BatchID          string `json:"batch_id"`
	ItemID           string `json:"item_id"`
	StockInQuantity  int64  `json:"stock_in_quantity"`
	DisposalTotal    int64  `json:"disposal_total"`
	AdditionTotal    int64  `json:"addition_total"`
	SubtractionTotal int64  `json:"subtraction_total"`
	RemainingStock   int64  `json:"remaining_stock"`
}
