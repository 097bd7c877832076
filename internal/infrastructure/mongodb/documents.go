package mongodb

import (
	"time"

	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
)

type itemDoc struct {
	ID              string    `bson:"_id"`
	Product         string    `bson:"product"`
	OverallQuantity int64     `bson:"overall_quantity"`
	QuantityLevel   string    `bson:"quantity_level"`
	Description     string    `bson:"description"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
	LockSeq         int64     `bson:"lock_seq"`
}

func newItemDoc(it *entity.Item) itemDoc {
	return itemDoc{
		ID:              it.ID,
		Product:         it.Product,
		OverallQuantity: it.OverallQuantity,
		QuantityLevel:   it.QuantityLevel,
		Description:     it.Description,
		CreatedAt:       it.CreatedAt.UTC(),
		UpdatedAt:       it.UpdatedAt.UTC(),
	}
}

func (d itemDoc) entity() *entity.Item {
	return &entity.Item{
		ID:              d.ID,
		Product:         d.Product,
		OverallQuantity: d.OverallQuantity,
		QuantityLevel:   d.QuantityLevel,
		Description:     d.Description,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// stockInDoc lleva lock_seq: cada lectura FOR UPDATE lo incrementa para forzar conflicto de escritura
// entre transacciones concurrentes sobre el mismo lote.
type stockInDoc struct {
	ID             string    `bson:"_id"`
	ItemID         string    `bson:"item_id"`
	BatchID        string    `bson:"batch_id"`
	ReceiptID      string    `bson:"receipt_id"`
	Quantity       int64     `bson:"quantity"`
	ExpirationDate time.Time `bson:"expiration_date"`
	Note           string    `bson:"note"`
	CreatedAt      time.Time `bson:"created_at"`
	LockSeq        int64     `bson:"lock_seq"`
}

func newStockInDoc(in *entity.StockIn) stockInDoc {
	return stockInDoc{
		ID:             in.ID,
		ItemID:         in.ItemID,
		BatchID:        in.BatchID,
		ReceiptID:      in.ReceiptID,
		Quantity:       in.Quantity,
		ExpirationDate: in.ExpirationDate.UTC(),
		Note:           in.Note,
		CreatedAt:      in.CreatedAt.UTC(),
	}
}

func (d stockInDoc) entity() *entity.StockIn {
	return &entity.StockIn{
		ID:             d.ID,
		ItemID:         d.ItemID,
		BatchID:        d.BatchID,
		ReceiptID:      d.ReceiptID,
		Quantity:       d.Quantity,
		ExpirationDate: d.ExpirationDate,
		Note:           d.Note,
		CreatedAt:      d.CreatedAt,
	}
}

type disposalDoc struct {
	ID        string    `bson:"_id"`
	ItemID    string    `bson:"item_id"`
	BatchID   string    `bson:"batch_id"`
	Quantity  int64     `bson:"quantity"`
	Reason    string    `bson:"reason"`
	CreatedAt time.Time `bson:"created_at"`
}

func newDisposalDoc(d *entity.Disposal) disposalDoc {
	return disposalDoc{ID: d.ID, ItemID: d.ItemID, BatchID: d.BatchID, Quantity: d.Quantity, Reason: d.Reason, CreatedAt: d.CreatedAt.UTC()}
}

func (d disposalDoc) entity() *entity.Disposal {
	return &entity.Disposal{ID: d.ID, ItemID: d.ItemID, BatchID: d.BatchID, Quantity: d.Quantity, Reason: d.Reason, CreatedAt: d.CreatedAt}
}

type adjustmentDoc struct {
	ID        string    `bson:"_id"`
	ItemID    string    `bson:"item_id"`
	BatchID   string    `bson:"batch_id"`
	Quantity  int64     `bson:"quantity"`
	Type      string    `bson:"type"`
	Reason    string    `bson:"reason"`
	CreatedAt time.Time `bson:"created_at"`
}

func newAdjustmentDoc(a *entity.Adjustment) adjustmentDoc {
	return adjustmentDoc{ID: a.ID, ItemID: a.ItemID, BatchID: a.BatchID, Quantity: a.Quantity, Type: a.Type, Reason: a.Reason, CreatedAt: a.CreatedAt.UTC()}
}

func (d adjustmentDoc) entity() *entity.Adjustment {
	return &entity.Adjustment{ID: d.ID, ItemID: d.ItemID, BatchID: d.BatchID, Quantity: d.Quantity, Type: d.Type, Reason: d.Reason, CreatedAt: d.CreatedAt}
}
