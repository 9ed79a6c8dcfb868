package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type orderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"   validate:"required,gt=0"`
}

type addressRequest struct {
	DoorNo   string `json:"door_no"`
	Building string `json:"building"`
	Street   string `json:"street"`
	City     string `json:"city"    validate:"required"`
	State    string `json:"state"   validate:"required"`
	Pincode  string `json:"pincode" validate:"required"`
}

type createOrderRequest struct {
	CustomerName  string             `json:"customer_name"  validate:"required"`
	Email         string             `json:"email"          validate:"required,email"`
	Phone         string             `json:"phone"          validate:"required"`
	Address       addressRequest     `json:"address"        validate:"required"`
	Items         []orderItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=cod online"`

	// Client-side totals, audited against the server computation.
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`

	// Set when the customer picked "Other" instead of a listed city.
	IsCustomLocation bool   `json:"is_custom_location"`
	CustomCity       string `json:"custom_city"`
	CustomState      string `json:"custom_state"`
}

type orderLinks struct {
	Self     string `json:"self"`
	Tracking string `json:"tracking"`
}

type createOrderResponse struct {
	OrderID           string     `json:"order_id"`
	TrackingCode      string     `json:"tracking_code"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"payment_status"`
	Subtotal          float64    `json:"subtotal"`
	DeliveryCharge    float64    `json:"delivery_charge"`
	Total             float64    `json:"total"`
	IsFreeDelivery    bool       `json:"is_free_delivery"`
	CustomCityRequest bool       `json:"custom_city_request"`
	DistanceKm        *float64   `json:"distance_km,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	Links             orderLinks `json:"_links"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal storage changes.

type lineItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type addressResponse struct {
	DoorNo   string `json:"door_no,omitempty"`
	Building string `json:"building,omitempty"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type getOrderResponse struct {
	OrderID           string                      `json:"order_id"`
	TrackingCode      string                      `json:"tracking_code"`
	CustomerName      string                      `json:"customer_name"`
	Email             string                      `json:"email"`
	Phone             string                      `json:"phone"`
	Address           addressResponse             `json:"address"`
	Items             []lineItemResponse          `json:"items"`
	Subtotal          float64                     `json:"subtotal"`
	DeliveryCharge    float64                     `json:"delivery_charge"`
	Total             float64                     `json:"total"`
	PaymentMethod     string                      `json:"payment_method"`
	PaymentStatus     string                      `json:"payment_status"`
	Status            string                      `json:"status"`
	StatusHistory     []statusHistoryItemResponse `json:"status_history"`
	IsFreeDelivery    bool                        `json:"is_free_delivery"`
	CustomCityRequest bool                        `json:"custom_city_request"`
	DistanceKm        *float64                    `json:"distance_km,omitempty"`
	CreatedAt         time.Time                   `json:"created_at"`
	Links             orderLinks                  `json:"_links"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed out_for_delivery delivered cancelled"`
	Notes  string `json:"notes"`
}
