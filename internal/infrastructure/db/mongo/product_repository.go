package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns catalog products matching filter. The city filter keeps
// products whose allow-list is unset, empty, or contains the city.
func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.City != "" {
		query["$or"] = bson.A{
			bson.M{"available_cities": nil},
			bson.M{"available_cities": bson.M{"$size": 0}},
			bson.M{"available_cities": bson.M{"$regex": "^" + escapeRegex(filter.City) + "$", "$options": "i"}},
		}
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SetInventory replaces the tracked inventory count, flipping the out-of-stock
// flag when it reaches zero.
func (r *ProductRepository) SetInventory(ctx context.Context, id string, count int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"inventory_count": count,
		"out_of_stock":    count == 0,
		"updated_at":      time.Now().UTC(),
	}}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementInventory atomically subtracts qty when at least qty units remain.
// The sufficiency condition lives in the filter, so concurrent checkouts for
// the same product cannot oversell.
func (r *ProductRepository) DecrementInventory(ctx context.Context, id string, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Untracked inventory never decrements.
	filter := bson.M{"_id": id, "inventory_count": nil}
	if n, err := r.col.CountDocuments(ctx, filter); err == nil && n > 0 {
		return nil
	}

	result := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "inventory_count": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"inventory_count": -qty},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrInsufficientInventory
		}
		return err
	}

	// Flip the out-of-stock flag when the decrement exhausted the stock.
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "inventory_count": bson.M{"$lte": 0}},
		bson.M{"$set": bson.M{"out_of_stock": true}},
	)
	return err
}
