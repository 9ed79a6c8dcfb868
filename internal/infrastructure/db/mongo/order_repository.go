package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

// Create inserts a new order document.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *OrderRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	err := r.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// UpdateStatus atomically sets the new status and appends a history entry.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, ts time.Time, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	historyEntry := bson.M{
		"status":    string(status),
		"timestamp": ts.UTC(),
	}
	if notes != "" {
		historyEntry["notes"] = notes
	}

	update := bson.M{
		"$set":  bson.M{"status": string(status), "updated_at": ts.UTC()},
		"$push": bson.M{"status_history": historyEntry},
	}

	result, err := r.col.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"payment_status": string(status),
		"updated_at":     time.Now().UTC(),
	}}

	result, err := r.col.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ListCustomDestinations returns orders whose destination needs admin
// attention: explicit custom locations and unregistered-city requests.
func (r *OrderRepository) ListCustomDestinations(ctx context.Context) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"is_custom_location": true},
		bson.M{"custom_city_request": true},
	}}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// EnsureIndexes creates the order lookup indexes.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_id", Value: 1}}},
		{Keys: bson.D{{Key: "tracking_code", Value: 1}}},
		{Keys: bson.D{{Key: "custom_city_request", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
