package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/api/metrics"
	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

const geocodeTTL = 24 * time.Hour

// GeocodeCache decorates a Geocoder with a Redis read-through cache. City
// coordinates change never, so a long TTL is safe; cache errors fall through
// to the live lookup and are never surfaced.
// Key format: geocode:<city>|<state> (lowercased).
type GeocodeCache struct {
	client *redis.Client
	next   ports.Geocoder
	logger zerolog.Logger
}

// NewGeocodeCache wraps next with a Redis cache.
func NewGeocodeCache(client *redis.Client, next ports.Geocoder, logger zerolog.Logger) *GeocodeCache {
	return &GeocodeCache{client: client, next: next, logger: logger}
}

func (g *GeocodeCache) Resolve(ctx context.Context, city, state string) (domain.Coordinate, error) {
	key := g.key(city, state)

	if raw, err := g.client.Get(ctx, key).Result(); err == nil {
		var coord domain.Coordinate
		if err := json.Unmarshal([]byte(raw), &coord); err == nil && coord.Valid() {
			metrics.GeocodeLookupsTotal.WithLabelValues("cached").Inc()
			return coord, nil
		}
	}

	coord, err := g.next.Resolve(ctx, city, state)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if raw, err := json.Marshal(coord); err == nil {
		if err := g.client.Set(ctx, key, raw, geocodeTTL).Err(); err != nil {
			g.logger.Warn().Err(err).Str("city", city).Msg("failed to cache geocode result")
		}
	}
	return coord, nil
}

func (g *GeocodeCache) key(city, state string) string {
	return fmt.Sprintf("geocode:%s|%s", strings.ToLower(strings.TrimSpace(city)), strings.ToLower(strings.TrimSpace(state)))
}
