package ports

import (
	"context"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

// NotificationKind selects the template a Notifier renders.
type NotificationKind string

const (
	NotifyOrderConfirmed NotificationKind = "order_confirmed"
	NotifyStatusUpdated  NotificationKind = "status_updated"
	NotifyCityApproved   NotificationKind = "city_approved"
)

// Notification is one outbound customer message. OrderID keys the dispatcher
// shard so messages for the same order are delivered in order.
type Notification struct {
	Kind    NotificationKind
	OrderID string
	Email   string
	// Status carries the new order status for status-update notifications.
	Status domain.OrderStatus
	// City/State are set for city-approval notifications.
	City  string
	State string
}

// Notifier delivers a single customer notification. The email body rendering
// lives behind this boundary.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
