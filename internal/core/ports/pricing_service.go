package ports

import "context"

// QuoteInput describes one order destination to be priced.
type QuoteInput struct {
	City  string
	State string
	// IsCustomLocation is true when the customer explicitly chose "Other"
	// instead of a listed city; pricing is then always deferred to admin.
	IsCustomLocation bool
	Subtotal         float64
}

// DeliveryQuote is the pricing decision for one order attempt. It is created
// fresh per request and embedded into the order by the caller.
type DeliveryQuote struct {
	DeliveryCharge float64
	// DistanceKm is set only when the custom-city geocoding path succeeded,
	// rounded to 2 decimals.
	DistanceKm *float64
	// RequiresAdminApproval flags destinations that must appear in the
	// pending-cities queue before repeat customers get a registry-backed rate.
	RequiresAdminApproval bool
	IsFreeDelivery        bool
}

// PricingService computes delivery charges. Quote never fails: geocoding
// outages degrade to the maximum tier charge so an order is never blocked by a
// third-party provider.
type PricingService interface {
	Quote(ctx context.Context, in QuoteInput) DeliveryQuote
}
