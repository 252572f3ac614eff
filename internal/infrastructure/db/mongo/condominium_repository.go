package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/midas-hq/midas/internal/core/domain"
)

const condominiumsCollection = "condominiums"

// CondominiumRepository persists registry records in MongoDB. The domain
// struct carries bson tags, so documents map directly.
type CondominiumRepository struct {
	coll *mongo.Collection
}

func NewCondominiumRepository(db *mongo.Database) *CondominiumRepository {
	return &CondominiumRepository{coll: db.Collection(condominiumsCollection)}
}

func (r *CondominiumRepository) Create(ctx context.Context, condo *domain.Condominium) (*domain.Condominium, error) {
	if _, err := r.coll.InsertOne(ctx, condo); err != nil {
		return nil, fmt.Errorf("insert condominium: %w", err)
	}
	return condo, nil
}

func (r *CondominiumRepository) FindByID(ctx context.Context, id string) (*domain.Condominium, error) {
	var condo domain.Condominium
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&condo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCondominiumNotFound
		}
		return nil, fmt.Errorf("find condominium: %w", err)
	}
	return &condo, nil
}

func (r *CondominiumRepository) FindAll(ctx context.Context) ([]domain.Condominium, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list condominiums: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Condominium
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode condominiums: %w", err)
	}
	return out, nil
}

func (r *CondominiumRepository) Update(ctx context.Context, condo *domain.Condominium) (*domain.Condominium, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": condo.ID}, condo)
	if err != nil {
		return nil, fmt.Errorf("update condominium: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCondominiumNotFound
	}
	return condo, nil
}

func (r *CondominiumRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete condominium: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCondominiumNotFound
	}
	return nil
}
