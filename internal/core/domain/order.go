package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// PaymentStatus tracks whether the order has been paid for.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// validTransitions defines the allowed order state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderConfirmed, OrderCancelled},
	OrderConfirmed:      {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")
var ErrForbidden = errors.New("access forbidden")
var ErrPaymentSignature = errors.New("payment signature verification failed")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LineItem is one catalog product within an order. UnitPrice is always the
// catalog price at order time, never a client-submitted figure.
type LineItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// DeliveryAddress is the destination of an order.
type DeliveryAddress struct {
	DoorNo   string `json:"door_no,omitempty" bson:"door_no,omitempty"`
	Building string `json:"building,omitempty" bson:"building,omitempty"`
	Street   string `json:"street,omitempty" bson:"street,omitempty"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	Pincode  string `json:"pincode" bson:"pincode"`
}

// StatusHistoryEntry records a single status transition on an order.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	Notes     string      `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order is the core aggregate root. Subtotal, DeliveryCharge and Total are
// always server-computed; ClientSubtotal/ClientTotal keep what the client sent
// for auditing only.
type Order struct {
	ID            string          `json:"id" bson:"_id,omitempty"`
	OrderID       string          `json:"order_id" bson:"order_id"`
	TrackingCode  string          `json:"tracking_code" bson:"tracking_code"`
	UserID        string          `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CustomerName  string          `json:"customer_name" bson:"customer_name"`
	Email         string          `json:"email" bson:"email"`
	Phone         string          `json:"phone" bson:"phone"`
	Address       DeliveryAddress `json:"address" bson:"address"`
	Items         []LineItem      `json:"items" bson:"items"`
	Subtotal      float64         `json:"subtotal" bson:"subtotal"`
	DeliveryCharge float64        `json:"delivery_charge" bson:"delivery_charge"`
	Total         float64         `json:"total" bson:"total"`
	ClientSubtotal float64        `json:"client_subtotal,omitempty" bson:"client_subtotal,omitempty"`
	ClientTotal    float64        `json:"client_total,omitempty" bson:"client_total,omitempty"`
	PaymentMethod string          `json:"payment_method" bson:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status" bson:"payment_status"`
	Status        OrderStatus     `json:"status" bson:"status"`
	StatusHistory []StatusHistoryEntry `json:"status_history" bson:"status_history"`

	// Custom-destination bookkeeping (admin approval queue).
	IsCustomLocation   bool     `json:"is_custom_location" bson:"is_custom_location"`
	CustomCityRequest  bool     `json:"custom_city_request" bson:"custom_city_request"`
	IsFreeDelivery     bool     `json:"is_free_delivery" bson:"is_free_delivery"`
	DistanceFromHomeKm *float64 `json:"distance_from_home_km,omitempty" bson:"distance_from_home_km,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
