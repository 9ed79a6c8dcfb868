package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// CityService manages the delivery-city registry and its approval queue.
type CityService struct {
	cities      ports.CityRepository
	orders      ports.OrderRepository
	suggestions ports.SuggestionRepository
	geocoder    ports.Geocoder
	notifier    ports.Notifier
	home        domain.Coordinate
	logger      zerolog.Logger
}

func NewCityService(
	cities ports.CityRepository,
	orders ports.OrderRepository,
	suggestions ports.SuggestionRepository,
	geocoder ports.Geocoder,
	notifier ports.Notifier,
	home domain.Coordinate,
	logger zerolog.Logger,
) *CityService {
	return &CityService{
		cities:      cities,
		orders:      orders,
		suggestions: suggestions,
		geocoder:    geocoder,
		notifier:    notifier,
		home:        home,
		logger:      logger,
	}
}

func (s *CityService) ListLocations(ctx context.Context) ([]*domain.CityCharge, error) {
	records, err := s.cities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return records, nil
}

func (s *CityService) UpsertLocation(ctx context.Context, in ports.UpsertLocationInput) error {
	record := &domain.CityCharge{
		Name:                  in.City,
		State:                 in.State,
		Charge:                in.Charge,
		FreeDeliveryThreshold: in.FreeDeliveryThreshold,
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.cities.Upsert(ctx, record); err != nil {
		return fmt.Errorf("upsert location: %w", err)
	}
	s.logger.Info().Str("city", in.City).Str("state", in.State).Float64("charge", in.Charge).Msg("location upserted")
	return nil
}

func (s *CityService) DeleteLocation(ctx context.Context, city, state string) error {
	if err := s.cities.Delete(ctx, city, state); err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	s.logger.Info().Str("city", city).Str("state", state).Msg("location deleted")
	return nil
}

// PendingCities aggregates custom destinations from orders that have not been
// promoted to the registry yet, deduplicated case-insensitively.
func (s *CityService) PendingCities(ctx context.Context) ([]ports.PendingDestination, error) {
	orders, err := s.orders.ListCustomDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending cities: %w", err)
	}

	approved, err := s.cities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending cities: %w", err)
	}
	approvedSet := make(map[string]struct{}, len(approved))
	for _, c := range approved {
		approvedSet[cityKey(c.Name, c.State)] = struct{}{}
	}

	grouped := make(map[string]*ports.PendingDestination)
	var order []string
	for _, o := range orders {
		key := cityKey(o.Address.City, o.Address.State)
		if _, ok := approvedSet[key]; ok {
			continue
		}
		if existing, ok := grouped[key]; ok {
			existing.OrderCount++
			if o.CreatedAt.Before(existing.FirstOrderDate) {
				existing.FirstOrderDate = o.CreatedAt
			}
			continue
		}
		grouped[key] = &ports.PendingDestination{
			City:            o.Address.City,
			State:           o.Address.State,
			DistanceKm:      o.DistanceFromHomeKm,
			SuggestedCharge: o.DeliveryCharge,
			FirstOrderDate:  o.CreatedAt,
			OrderCount:      1,
		}
		order = append(order, key)
	}

	sort.Strings(order)
	result := make([]ports.PendingDestination, 0, len(order))
	for _, key := range order {
		result = append(result, *grouped[key])
	}
	return result, nil
}

// ApproveCity promotes a pending destination to a permanent registry record,
// resolves the matching suggestion and notifies the requesting customer.
func (s *CityService) ApproveCity(ctx context.Context, in ports.ApproveCityInput) (*domain.CityCharge, error) {
	if _, err := s.cities.FindCharge(ctx, in.City, in.State); err == nil {
		return nil, fmt.Errorf("approve city: %s, %s: %w", in.City, in.State, domain.ErrCityExists)
	} else if !errors.Is(err, domain.ErrCityNotFound) {
		return nil, fmt.Errorf("approve city: %w", err)
	}

	record := &domain.CityCharge{
		Name:                  in.City,
		State:                 in.State,
		Charge:                in.Charge,
		FreeDeliveryThreshold: in.FreeDeliveryThreshold,
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.cities.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("approve city: %w", err)
	}

	s.resolveSuggestion(ctx, in.City, in.State)

	s.logger.Info().Str("city", in.City).Str("state", in.State).Float64("charge", in.Charge).Msg("city approved")
	return record, nil
}

// resolveSuggestion flips the matching pending suggestion to approved and
// queues the customer notification. Failures never fail the approval.
func (s *CityService) resolveSuggestion(ctx context.Context, city, state string) {
	suggestion, err := s.suggestions.FindPending(ctx, city, state)
	if err != nil {
		if !errors.Is(err, domain.ErrCityNotFound) {
			s.logger.Warn().Err(err).Str("city", city).Msg("suggestion lookup failed")
		}
		return
	}

	if err := s.suggestions.UpdateStatus(ctx, suggestion.ID, domain.SuggestionApproved); err != nil {
		s.logger.Warn().Err(err).Str("suggestion_id", suggestion.ID).Msg("failed to mark suggestion approved")
		return
	}

	if suggestion.Email == "" {
		return
	}
	if err := s.notifier.Send(ctx, ports.Notification{
		Kind:    ports.NotifyCityApproved,
		OrderID: suggestion.OrderID,
		Email:   suggestion.Email,
		City:    city,
		State:   state,
	}); err != nil {
		s.logger.Warn().Err(err).Str("city", city).Msg("failed to queue city approval notification")
	}
}

// CustomCityQuote estimates the delivery charge for a city not yet in the
// registry. Geocoding failure degrades to the maximum tier charge.
func (s *CityService) CustomCityQuote(ctx context.Context, city, state string) (*ports.CustomCityQuoteResult, error) {
	result := &ports.CustomCityQuoteResult{City: city, State: state}

	coord, err := s.geocoder.Resolve(ctx, city, state)
	if err != nil {
		s.logger.Warn().Err(err).Str("city", city).Str("state", state).Msg("custom city quote falling back to default charge")
		result.DeliveryCharge = domain.MaxTierCharge
		return result, nil
	}

	distance := roundKm(domain.HaversineKm(s.home, coord))
	result.DistanceKm = &distance
	result.DeliveryCharge = domain.TierCharge(distance)
	return result, nil
}

// cityKey normalizes a (city, state) pair for case-insensitive matching.
func cityKey(city, state string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "|" + strings.ToLower(strings.TrimSpace(state))
}
