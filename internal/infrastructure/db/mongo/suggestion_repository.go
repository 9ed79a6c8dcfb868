package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

const collectionSuggestions = "city_suggestions"

type SuggestionRepository struct {
	col *mongo.Collection
}

func NewSuggestionRepository(db *mongo.Database) *SuggestionRepository {
	return &SuggestionRepository{col: db.Collection(collectionSuggestions)}
}

func (r *SuggestionRepository) Create(ctx context.Context, s *domain.CitySuggestion) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	return err
}

// FindPending returns the pending suggestion for the (city, state) pair,
// matched case-insensitively.
func (r *SuggestionRepository) FindPending(ctx context.Context, city, state string) (*domain.CitySuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"city":   bson.M{"$regex": "^" + escapeRegex(city) + "$", "$options": "i"},
		"state":  bson.M{"$regex": "^" + escapeRegex(state) + "$", "$options": "i"},
		"status": string(domain.SuggestionPending),
	}

	var s domain.CitySuggestion
	err := r.col.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCityNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SuggestionRepository) UpdateStatus(ctx context.Context, id string, status domain.SuggestionStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}
