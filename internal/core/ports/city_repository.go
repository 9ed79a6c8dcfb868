package ports

import (
	"context"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

// CityRepository is the authoritative delivery-city registry.
type CityRepository interface {
	// FindCharge matches case-insensitively on both city and state, returning
	// domain.ErrCityNotFound on a registry miss.
	FindCharge(ctx context.Context, city, state string) (*domain.CityCharge, error)
	List(ctx context.Context) ([]*domain.CityCharge, error)
	// Upsert inserts or replaces the record for the normalized (city, state)
	// pair, preserving the one-record-per-pair invariant.
	Upsert(ctx context.Context, record *domain.CityCharge) error
	Delete(ctx context.Context, city, state string) error
}
