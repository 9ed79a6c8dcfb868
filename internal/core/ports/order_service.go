package ports

import (
	"context"
	"time"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

// OrderItemInput is one requested line item. Name and UnitPrice are what the
// client displayed; the service re-reads both from the catalog and treats the
// client copies as advisory.
type OrderItemInput struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
}

// AddressInput holds the delivery destination.
type AddressInput struct {
	DoorNo   string
	Building string
	Street   string
	City     string
	State    string
	Pincode  string
}

// CreateOrderInput carries all data needed to create an order. Guest checkout
// is allowed, so UserID may be empty.
type CreateOrderInput struct {
	UserID        string
	CustomerName  string
	Email         string
	Phone         string
	Address       AddressInput
	Items         []OrderItemInput
	PaymentMethod string
	// Client-computed totals, audited against the server-side computation but
	// never persisted as the charged amounts.
	ClientSubtotal float64
	ClientTotal    float64
	// IsCustomLocation marks an explicit "Other" destination selection.
	IsCustomLocation bool
	CustomCity       string
	CustomState      string
}

// OrderResult is returned after a successful order creation.
type OrderResult struct {
	OrderID           string
	TrackingCode      string
	Status            string
	PaymentStatus     string
	Subtotal          float64
	DeliveryCharge    float64
	Total             float64
	IsFreeDelivery    bool
	CustomCityRequest bool
	DistanceKm        *float64
	CreatedAt         time.Time
}

// UpdateOrderStatusInput drives an admin lifecycle transition.
type UpdateOrderStatusInput struct {
	OrderID string
	Status  string
	Notes   string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	// CreateOrder validates every line item against the catalog, prices the
	// delivery, persists the order with server-computed totals and decrements
	// inventory. Any item violation rejects the whole order.
	CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResult, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, in UpdateOrderStatusInput) error
}
