package ports

import (
	"context"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

// UpsertLocationInput sets or updates a registry record.
type UpsertLocationInput struct {
	City                  string
	State                 string
	Charge                float64
	FreeDeliveryThreshold *float64
}

// ApproveCityInput promotes a pending destination to a registry record.
type ApproveCityInput struct {
	City                  string
	State                 string
	Charge                float64
	FreeDeliveryThreshold *float64
}

// CustomCityQuoteResult is the public distance/charge estimate for a city not
// yet in the registry.
type CustomCityQuoteResult struct {
	City           string
	State          string
	DeliveryCharge float64
	// DistanceKm is nil when geocoding failed and the default charge applies.
	DistanceKm *float64
}

// CityService covers the delivery-city registry and its approval queue.
type CityService interface {
	ListLocations(ctx context.Context) ([]*domain.CityCharge, error)
	UpsertLocation(ctx context.Context, in UpsertLocationInput) error
	DeleteLocation(ctx context.Context, city, state string) error
	// PendingCities aggregates unapproved custom destinations from orders.
	PendingCities(ctx context.Context) ([]PendingDestination, error)
	// ApproveCity adds the registry record, resolves the matching suggestion
	// and notifies the customer who first requested the city.
	ApproveCity(ctx context.Context, in ApproveCityInput) (*domain.CityCharge, error)
	// CustomCityQuote estimates the charge for an unlisted city by distance.
	CustomCityQuote(ctx context.Context, city, state string) (*CustomCityQuoteResult, error)
}
