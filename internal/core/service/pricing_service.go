package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/api/metrics"
	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// PricingService decides the delivery charge for one order destination.
// It never returns an error: a geocoding outage degrades to the maximum tier
// charge rather than blocking order creation.
type PricingService struct {
	cities   ports.CityRepository
	geocoder ports.Geocoder
	home     domain.Coordinate
	logger   zerolog.Logger
}

func NewPricingService(cities ports.CityRepository, geocoder ports.Geocoder, home domain.Coordinate, logger zerolog.Logger) *PricingService {
	return &PricingService{cities: cities, geocoder: geocoder, home: home, logger: logger}
}

// Quote prices a destination. Explicit custom locations defer entirely to
// admin; known cities use the registry charge with the free-delivery threshold
// override; unregistered cities get a distance-based suggestion, or the
// worst-case tier when geocoding fails.
func (s *PricingService) Quote(ctx context.Context, in ports.QuoteInput) ports.DeliveryQuote {
	if in.IsCustomLocation {
		s.logger.Info().Str("city", in.City).Str("state", in.State).Msg("explicit custom location, pricing deferred to admin")
		metrics.QuotesIssuedTotal.WithLabelValues("custom").Inc()
		return ports.DeliveryQuote{RequiresAdminApproval: true}
	}

	record, err := s.cities.FindCharge(ctx, in.City, in.State)
	switch {
	case err == nil:
		return s.registryQuote(record, in)
	case errors.Is(err, domain.ErrCityNotFound):
		return s.customCityQuote(ctx, in)
	default:
		// Registry unavailable: treat like a miss rather than failing the order.
		s.logger.Error().Err(err).Str("city", in.City).Msg("city registry lookup failed")
		return s.customCityQuote(ctx, in)
	}
}

func (s *PricingService) registryQuote(record *domain.CityCharge, in ports.QuoteInput) ports.DeliveryQuote {
	t := record.FreeDeliveryThreshold
	if t != nil && *t > 0 && in.Subtotal >= *t {
		s.logger.Info().
			Str("city", record.Name).
			Float64("subtotal", in.Subtotal).
			Float64("threshold", *t).
			Msg("free delivery threshold met")
		metrics.QuotesIssuedTotal.WithLabelValues("free").Inc()
		return ports.DeliveryQuote{IsFreeDelivery: true}
	}

	metrics.QuotesIssuedTotal.WithLabelValues("registry").Inc()
	return ports.DeliveryQuote{DeliveryCharge: record.Charge}
}

// customCityQuote handles an unregistered (city, state): geocode, measure the
// distance from the home point and suggest a tier charge. The result always
// carries the admin-approval flag since the city is not yet in the registry.
func (s *PricingService) customCityQuote(ctx context.Context, in ports.QuoteInput) ports.DeliveryQuote {
	coord, err := s.geocoder.Resolve(ctx, in.City, in.State)
	if err != nil {
		// Never under-charge when distance is unknown.
		s.logger.Warn().Err(err).
			Str("city", in.City).
			Str("state", in.State).
			Msg("geocoding failed, falling back to maximum tier charge")
		metrics.QuotesIssuedTotal.WithLabelValues("fallback").Inc()
		return ports.DeliveryQuote{
			DeliveryCharge:        domain.MaxTierCharge,
			RequiresAdminApproval: true,
		}
	}

	distance := roundKm(domain.HaversineKm(s.home, coord))
	charge := domain.TierCharge(distance)

	s.logger.Info().
		Str("city", in.City).
		Str("state", in.State).
		Float64("distance_km", distance).
		Float64("charge", charge).
		Msg("custom city priced by distance")
	metrics.QuotesIssuedTotal.WithLabelValues("geocoded").Inc()

	return ports.DeliveryQuote{
		DeliveryCharge:        charge,
		DistanceKm:            &distance,
		RequiresAdminApproval: true,
	}
}

// roundKm rounds a distance to 2 decimal places.
func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
