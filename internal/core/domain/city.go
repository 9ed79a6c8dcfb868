package domain

import (
	"errors"
	"time"
)

var ErrCityNotFound = errors.New("city not found")
var ErrCityExists = errors.New("city already approved")
var ErrCityNotGeocoded = errors.New("city could not be geocoded")

// CityCharge is a registry record mapping a (city, state) pair to its delivery
// charge. Matching on the pair is case-insensitive and the registry guarantees
// at most one record per normalized pair. A FreeDeliveryThreshold > 0 waives
// the charge for subtotals at or above it.
type CityCharge struct {
	ID                    string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name                  string    `json:"name" bson:"name"`
	State                 string    `json:"state" bson:"state"`
	Charge                float64   `json:"charge" bson:"charge"`
	FreeDeliveryThreshold *float64  `json:"free_delivery_threshold,omitempty" bson:"free_delivery_threshold,omitempty"`
	CreatedAt             time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// SuggestionStatus is the approval state of a city suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

// CitySuggestion is an entry in the admin approval queue, created whenever an
// order targets a destination the registry does not know.
type CitySuggestion struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	City         string           `json:"city" bson:"city"`
	State        string           `json:"state" bson:"state"`
	CustomerName string           `json:"customer_name" bson:"customer_name"`
	Phone        string           `json:"phone" bson:"phone"`
	Email        string           `json:"email,omitempty" bson:"email,omitempty"`
	OrderID      string           `json:"order_id" bson:"order_id"`
	// SuggestedCharge and DistanceKm come from the geocoded quote, when available.
	SuggestedCharge float64       `json:"suggested_charge" bson:"suggested_charge"`
	DistanceKm      *float64      `json:"distance_km,omitempty" bson:"distance_km,omitempty"`
	Status          SuggestionStatus `json:"status" bson:"status"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
