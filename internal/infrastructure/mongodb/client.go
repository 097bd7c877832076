// Package mongodb implementa los repositorios sobre MongoDB (DB_DRIVER=mongo).
// Las transacciones requieren un replica set.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/medicine-inventory-api/pkg/config"
)

// Nombres de colecciones.
const (
	collItems       = "items"
	collStockIns    = "stock_ins"
	collDisposals   = "disposals"
	collAdjustments = "adjustments"
)

// Connect abre el cliente, verifica la conexión y devuelve la base configurada.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(timeoutCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// Disconnect cierra el cliente con un timeout acotado.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}

// EnsureIndexes crea los índices que sostienen la unicidad del lote y las agregaciones por lote.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(collStockIns).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "batch_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("index stock_ins.batch_id: %w", err)
	}
	for _, coll := range []string{collDisposals, collAdjustments} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "batch_id", Value: 1}},
		}); err != nil {
			return fmt.Errorf("index %s.batch_id: %w", coll, err)
		}
	}
	for _, coll := range []string{collItems, collStockIns, collDisposals, collAdjustments} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		}); err != nil {
			return fmt.Errorf("index %s.created_at: %w", coll, err)
		}
	}
	return nil
}

func pageOptions(limit, offset int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
}
