package ports

import (
	"context"
	"time"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

// PendingDestination is one unapproved custom destination aggregated from
// orders, surfaced to the admin approval queue.
type PendingDestination struct {
	City            string
	State           string
	DistanceKm      *float64
	SuggestedCharge float64
	FirstOrderDate  time.Time
	OrderCount      int
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	// UpdateStatus atomically sets the new status and appends a history entry.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, ts time.Time, notes string) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) error
	// ListCustomDestinations returns orders flagged with a custom or
	// unregistered destination, for the pending-cities view.
	ListCustomDestinations(ctx context.Context) ([]*domain.Order, error)
}
