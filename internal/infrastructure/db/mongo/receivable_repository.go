package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/midas-hq/midas/internal/core/domain"
)

const receivablesCollection = "receivables"

// ReceivableRepository persists accounts-receivable entries in MongoDB.
type ReceivableRepository struct {
	coll *mongo.Collection
}

func NewReceivableRepository(db *mongo.Database) *ReceivableRepository {
	return &ReceivableRepository{coll: db.Collection(receivablesCollection)}
}

func (r *ReceivableRepository) Create(ctx context.Context, rcv *domain.Receivable) (*domain.Receivable, error) {
	if _, err := r.coll.InsertOne(ctx, rcv); err != nil {
		return nil, fmt.Errorf("insert receivable: %w", err)
	}
	return rcv, nil
}

// FindAll lists receivables, newest first, optionally filtered by
// condominium.
func (r *ReceivableRepository) FindAll(ctx context.Context, condominiumID string) ([]domain.Receivable, error) {
	filter := bson.M{}
	if condominiumID != "" {
		filter["condominium_id"] = condominiumID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Receivable
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode receivables: %w", err)
	}
	return out, nil
}
