package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/entity"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository       = (*ItemRepo)(nil)
	_ repository.StockInRepository    = (*StockInRepo)(nil)
	_ repository.DisposalRepository   = (*DisposalRepo)(nil)
	_ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)
)

// ItemRepo medicamentos en la colección items. Dentro de una transacción basta con usar el ctx de la sesión.
type ItemRepo struct {
	collection *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepo {
	return &ItemRepo{collection: db.Collection(collItems)}
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	if _, err := r.collection.InsertOne(ctx, newItemDoc(it)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var doc itemDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return doc.entity(), nil
}

// GetByIDForUpdate incrementa lock_seq del ítem dentro de la transacción, igual que con los lotes.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	var doc itemDoc
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"lock_seq": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock item: %w", err)
	}
	return doc.entity(), nil
}

// Update escribe producto y descripción; la cantidad solo cambia con UpdateQuantity.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": it.ID}, bson.M{"$set": bson.M{
		"product":     it.Product,
		"description": it.Description,
		"updated_at":  it.UpdatedAt.UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int64, level string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"overall_quantity": quantity,
		"quantity_level":   level,
		"updated_at":       time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	var docs []itemDoc
	if err := findAll(ctx, r.collection, bson.M{}, pageOptions(limit, offset), &docs); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]*entity.Item, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// StockInRepo entradas de lote; el índice único sobre batch_id lo crea EnsureIndexes.
type StockInRepo struct {
	collection *mongo.Collection
}

func NewStockInRepository(db *mongo.Database) *StockInRepo {
	return &StockInRepo{collection: db.Collection(collStockIns)}
}

func (r *StockInRepo) Create(ctx context.Context, in *entity.StockIn) error {
	if _, err := r.collection.InsertOne(ctx, newStockInDoc(in)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock-in: %w", err)
	}
	return nil
}

func (r *StockInRepo) GetByID(ctx context.Context, id string) (*entity.StockIn, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *StockInRepo) GetByBatchID(ctx context.Context, batchID string) (*entity.StockIn, error) {
	return r.findOne(ctx, bson.M{"batch_id": batchID})
}

// GetByBatchIDForUpdate escribe lock_seq dentro de la transacción: otra transacción que toque el
// mismo lote choca con WriteConflict y WithTransaction la reintenta con los agregados ya confirmados.
func (r *StockInRepo) GetByBatchIDForUpdate(ctx context.Context, batchID string) (*entity.StockIn, error) {
	var doc stockInDoc
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"batch_id": batchID},
		bson.M{"$inc": bson.M{"lock_seq": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock stock-in: %w", err)
	}
	return doc.entity(), nil
}

func (r *StockInRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockIn, error) {
	var docs []stockInDoc
	if err := findAll(ctx, r.collection, bson.M{}, pageOptions(limit, offset), &docs); err != nil {
		return nil, fmt.Errorf("list stock-ins: %w", err)
	}
	out := make([]*entity.StockIn, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *StockInRepo) findOne(ctx context.Context, filter bson.M) (*entity.StockIn, error) {
	var doc stockInDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock-in: %w", err)
	}
	return doc.entity(), nil
}

// DisposalRepo bajas (solo inserción).
type DisposalRepo struct {
	collection *mongo.Collection
}

func NewDisposalRepository(db *mongo.Database) *DisposalRepo {
	return &DisposalRepo{collection: db.Collection(collDisposals)}
}

func (r *DisposalRepo) Create(ctx context.Context, d *entity.Disposal) error {
	if _, err := r.collection.InsertOne(ctx, newDisposalDoc(d)); err != nil {
		return fmt.Errorf("insert disposal: %w", err)
	}
	return nil
}

func (r *DisposalRepo) GetByID(ctx context.Context, id string) (*entity.Disposal, error) {
	var doc disposalDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disposal: %w", err)
	}
	return doc.entity(), nil
}

func (r *DisposalRepo) List(ctx context.Context, limit, offset int) ([]*entity.Disposal, error) {
	return r.find(ctx, bson.M{}, pageOptions(limit, offset))
}

func (r *DisposalRepo) ListByBatchID(ctx context.Context, batchID string) ([]*entity.Disposal, error) {
	return r.find(ctx, bson.M{"batch_id": batchID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

// SumByBatchID $group sobre las bajas del lote; sin documentos el total es 0.
func (r *DisposalRepo) SumByBatchID(ctx context.Context, batchID string) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"batch_id": batchID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$quantity"}}}},
	}
	var out []struct {
		Total int64 `bson:"total"`
	}
	if err := aggregate(ctx, r.collection, pipeline, &out); err != nil {
		return 0, fmt.Errorf("sum disposals: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

func (r *DisposalRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Disposal, error) {
	var docs []disposalDoc
	if err := findAll(ctx, r.collection, filter, opts, &docs); err != nil {
		return nil, fmt.Errorf("list disposals: %w", err)
	}
	out := make([]*entity.Disposal, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// AdjustmentRepo ajustes (solo inserción).
type AdjustmentRepo struct {
	collection *mongo.Collection
}

func NewAdjustmentRepository(db *mongo.Database) *AdjustmentRepo {
	return &AdjustmentRepo{collection: db.Collection(collAdjustments)}
}

func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	if _, err := r.collection.InsertOne(ctx, newAdjustmentDoc(a)); err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	var doc adjustmentDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return doc.entity(), nil
}

func (r *AdjustmentRepo) List(ctx context.Context, limit, offset int) ([]*entity.Adjustment, error) {
	return r.find(ctx, bson.M{}, pageOptions(limit, offset))
}

func (r *AdjustmentRepo) ListByBatchID(ctx context.Context, batchID string) ([]*entity.Adjustment, error) {
	return r.find(ctx, bson.M{"batch_id": batchID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

// SumByBatchID ambos totales por tipo en un único $group.
func (r *AdjustmentRepo) SumByBatchID(ctx context.Context, batchID string) (entity.AdjustmentTotals, error) {
	sumIf := func(typ string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$type", typ}}, "$quantity", 0}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"batch_id": batchID}}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"addition":    sumIf(entity.AdjustmentTypeAddition),
			"subtraction": sumIf(entity.AdjustmentTypeSubtraction),
		}}},
	}
	var out []struct {
		Addition    int64 `bson:"addition"`
		Subtraction int64 `bson:"subtraction"`
	}
	if err := aggregate(ctx, r.collection, pipeline, &out); err != nil {
		return entity.AdjustmentTotals{}, fmt.Errorf("sum adjustments: %w", err)
	}
	if len(out) == 0 {
		return entity.AdjustmentTotals{}, nil
	}
	return entity.AdjustmentTotals{AdditionTotal: out[0].Addition, SubtractionTotal: out[0].Subtraction}, nil
}

func (r *AdjustmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Adjustment, error) {
	var docs []adjustmentDoc
	if err := findAll(ctx, r.collection, filter, opts, &docs); err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	out := make([]*entity.Adjustment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions, out any) error {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out any) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
