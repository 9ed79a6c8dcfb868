package ports

import (
	"context"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

// Geocoder resolves a free-text (city, state) pair to coordinates.
// Implementations perform a single bounded-timeout lookup and report every
// failure class (transport error, bad status, empty result, malformed payload)
// uniformly as domain.ErrCityNotGeocoded. No retries.
type Geocoder interface {
	Resolve(ctx context.Context, city, state string) (domain.Coordinate, error)
}
