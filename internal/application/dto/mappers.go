package dto

import "github.com/jhoicas/medicine-inventory-api/internal/domain/entity"

// NewItemResponse convierte la entidad en su representación HTTP.
func NewItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:              it.ID,
		Product:         it.Product,
		OverallQuantity: it.OverallQuantity,
		QuantityLevel:   it.QuantityLevel,
		Description:     it.Description,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}

func NewStockInResponse(in *entity.StockIn) StockInResponse {
	return StockInResponse{
		ID:             in.ID,
		ItemID:         in.ItemID,
		BatchID:        in.BatchID,
		ReceiptID:      in.ReceiptID,
		Quantity:       in.Quantity,
		ExpirationDate: in.ExpirationDate,
		Note:           in.Note,
		CreatedAt:      in.CreatedAt,
	}
}

func NewDisposalResponse(d *entity.Disposal) DisposalResponse {
	return DisposalResponse{
		ID:        d.ID,
		ItemID:    d.ItemID,
		BatchID:   d.BatchID,
		Quantity:  d.Quantity,
		Reason:    d.Reason,
		CreatedAt: d.CreatedAt,
	}
}

func NewAdjustmentResponse(a *entity.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:        a.ID,
		ItemID:    a.ItemID,
		BatchID:   a.BatchID,
		Quantity:  a.Quantity,
		Type:      a.Type,
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}
