package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

const collectionLocations = "locations"

// CityRepository is the Mongo-backed delivery-city registry. Matching is
// case-insensitive on the (name, state) pair via anchored regex filters, and
// Upsert keys on the same filter so at most one record exists per normalized
// pair.
type CityRepository struct {
	col *mongo.Collection
}

func NewCityRepository(db *mongo.Database) *CityRepository {
	return &CityRepository{col: db.Collection(collectionLocations)}
}

// escapeRegex quotes user input before it is embedded in a Mongo $regex.
func escapeRegex(s string) string {
	return regexp.QuoteMeta(s)
}

// cityFilter builds the case-insensitive exact-match filter for a pair.
func cityFilter(city, state string) bson.M {
	return bson.M{
		"name":  bson.M{"$regex": "^" + escapeRegex(city) + "$", "$options": "i"},
		"state": bson.M{"$regex": "^" + escapeRegex(state) + "$", "$options": "i"},
	}
}

func (r *CityRepository) FindCharge(ctx context.Context, city, state string) (*domain.CityCharge, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var record domain.CityCharge
	err := r.col.FindOne(ctx, cityFilter(city, state)).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCityNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *CityRepository) List(ctx context.Context) ([]*domain.CityCharge, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*domain.CityCharge
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *CityRepository) Upsert(ctx context.Context, record *domain.CityCharge) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":                    record.Name,
		"state":                   record.State,
		"charge":                  record.Charge,
		"free_delivery_threshold": record.FreeDeliveryThreshold,
	}, "$setOnInsert": bson.M{
		"created_at": record.CreatedAt,
	}}

	_, err := r.col.UpdateOne(ctx, cityFilter(record.Name, record.State), update, options.Update().SetUpsert(true))
	return err
}

func (r *CityRepository) Delete(ctx context.Context, city, state string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, cityFilter(city, state))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}

// EnsureIndexes creates the registry indexes.
func (r *CityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}, {Key: "state", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
