package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/api/metrics"
	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// totalTolerance is the rounding tolerance when auditing client-submitted
// totals against the server-side computation (0.01 currency unit).
const totalTolerance = 0.01

type OrderService struct {
	orders      ports.OrderRepository
	products    ports.ProductRepository
	suggestions ports.SuggestionRepository
	pricing     ports.PricingService
	notifier    ports.Notifier
	logger      zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	suggestions ports.SuggestionRepository,
	pricing ports.PricingService,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		products:    products,
		suggestions: suggestions,
		pricing:     pricing,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateOrder validates every line item against the catalog, prices delivery
// server-side and persists the order. Client-submitted prices and totals are
// audited but never charged. Any item violation rejects the whole order.
func (s *OrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*ports.OrderResult, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("create order: %w: order has no items", domain.ErrProductNotFound)
	}

	items, subtotal, err := s.validateItems(ctx, in)
	if err != nil {
		return nil, err
	}

	city, state := in.Address.City, in.Address.State
	if in.IsCustomLocation && in.CustomCity != "" {
		city, state = in.CustomCity, in.CustomState
	}

	quote := s.pricing.Quote(ctx, ports.QuoteInput{
		City:             city,
		State:            state,
		IsCustomLocation: in.IsCustomLocation,
		Subtotal:         subtotal,
	})

	total := subtotal + quote.DeliveryCharge
	s.auditClientTotals(in, subtotal, total)

	// A registry miss on a non-custom destination is an implicit request for a
	// new delivery city.
	customCityRequest := quote.RequiresAdminApproval && !in.IsCustomLocation

	now := time.Now().UTC()
	order := &domain.Order{
		ID:           uuid.NewString(),
		OrderID:      generateOrderID(now),
		TrackingCode: generateTrackingCode(),
		UserID:       in.UserID,
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address: domain.DeliveryAddress{
			DoorNo:   in.Address.DoorNo,
			Building: in.Address.Building,
			Street:   in.Address.Street,
			City:     city,
			State:    state,
			Pincode:  in.Address.Pincode,
		},
		Items:              items,
		Subtotal:           subtotal,
		DeliveryCharge:     quote.DeliveryCharge,
		Total:              total,
		ClientSubtotal:     in.ClientSubtotal,
		ClientTotal:        in.ClientTotal,
		PaymentMethod:      in.PaymentMethod,
		PaymentStatus:      domain.PaymentPending,
		Status:             domain.OrderPending,
		StatusHistory:      []domain.StatusHistoryEntry{{Status: domain.OrderPending, Timestamp: now}},
		IsCustomLocation:   in.IsCustomLocation,
		CustomCityRequest:  customCityRequest,
		IsFreeDelivery:     quote.IsFreeDelivery,
		DistanceFromHomeKm: quote.DistanceKm,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to persist order")
		return nil, fmt.Errorf("create order: %w", err)
	}

	if customCityRequest {
		s.createCitySuggestion(ctx, order, quote)
	}

	s.commitInventory(ctx, in.Items)

	if err := s.notifier.Send(ctx, ports.Notification{
		Kind:    ports.NotifyOrderConfirmed,
		OrderID: order.OrderID,
		Email:   order.Email,
	}); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.OrderID).Msg("failed to queue order confirmation")
	}

	metrics.OrdersCreatedTotal.WithLabelValues(in.PaymentMethod).Inc()
	s.logger.Info().
		Str("order_id", order.OrderID).
		Float64("subtotal", subtotal).
		Float64("delivery_charge", quote.DeliveryCharge).
		Float64("total", total).
		Bool("custom_city_request", customCityRequest).
		Msg("order created")

	return &ports.OrderResult{
		OrderID:           order.OrderID,
		TrackingCode:      order.TrackingCode,
		Status:            string(order.Status),
		PaymentStatus:     string(order.PaymentStatus),
		Subtotal:          subtotal,
		DeliveryCharge:    quote.DeliveryCharge,
		Total:             total,
		IsFreeDelivery:    quote.IsFreeDelivery,
		CustomCityRequest: customCityRequest,
		DistanceKm:        quote.DistanceKm,
		CreatedAt:         order.CreatedAt,
	}, nil
}

// validateItems checks every requested item against the catalog and returns
// line items priced from catalog unit prices together with the server-side
// subtotal. Violations are collected per product so the rejection names every
// offending item.
func (s *OrderService) validateItems(ctx context.Context, in ports.CreateOrderInput) ([]domain.LineItem, float64, error) {
	items := make([]domain.LineItem, 0, len(in.Items))
	var subtotal float64
	var unavailable []string

	for _, req := range in.Items {
		if req.Quantity <= 0 {
			return nil, 0, fmt.Errorf("create order: invalid quantity %d for product %s", req.Quantity, req.ProductID)
		}

		product, err := s.products.FindByID(ctx, req.ProductID)
		if err != nil {
			metrics.OrdersRejectedTotal.WithLabelValues("product_not_found").Inc()
			return nil, 0, fmt.Errorf("create order: product %s: %w", req.ProductID, err)
		}

		if !product.DeliverableTo(in.Address.City) {
			unavailable = append(unavailable, product.Name)
			continue
		}
		if product.OutOfStock {
			metrics.OrdersRejectedTotal.WithLabelValues("out_of_stock").Inc()
			return nil, 0, fmt.Errorf("create order: %s: %w", product.Name, domain.ErrProductOutOfStock)
		}
		if product.InventoryCount != nil && *product.InventoryCount < req.Quantity {
			metrics.OrdersRejectedTotal.WithLabelValues("inventory").Inc()
			return nil, 0, fmt.Errorf("create order: %s: %w", product.Name, domain.ErrInsufficientInventory)
		}

		items = append(items, domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  req.Quantity,
		})
		subtotal += product.Price * float64(req.Quantity)
	}

	if len(unavailable) > 0 {
		metrics.OrdersRejectedTotal.WithLabelValues("city_not_served").Inc()
		return nil, 0, fmt.Errorf("create order: not deliverable to %s: %s: %w",
			in.Address.City, strings.Join(unavailable, ", "), domain.ErrCityNotServed)
	}

	return items, subtotal, nil
}

// auditClientTotals logs a warning when the client-submitted totals diverge
// from the server computation beyond tolerance. The server values always win.
func (s *OrderService) auditClientTotals(in ports.CreateOrderInput, subtotal, total float64) {
	if math.Abs(in.ClientSubtotal-subtotal) > totalTolerance || math.Abs(in.ClientTotal-total) > totalTolerance {
		s.logger.Warn().
			Float64("client_subtotal", in.ClientSubtotal).
			Float64("client_total", in.ClientTotal).
			Float64("server_subtotal", subtotal).
			Float64("server_total", total).
			Msg("client totals diverge from server computation, using server values")
		metrics.OrdersTotalMismatchTotal.Inc()
	}
}

// createCitySuggestion records the unregistered destination in the approval
// queue. A failure here never fails the order.
func (s *OrderService) createCitySuggestion(ctx context.Context, order *domain.Order, quote ports.DeliveryQuote) {
	suggestion := &domain.CitySuggestion{
		ID:              uuid.NewString(),
		City:            order.Address.City,
		State:           order.Address.State,
		CustomerName:    order.CustomerName,
		Phone:           order.Phone,
		Email:           order.Email,
		OrderID:         order.OrderID,
		SuggestedCharge: quote.DeliveryCharge,
		DistanceKm:      quote.DistanceKm,
		Status:          domain.SuggestionPending,
		CreatedAt:       order.CreatedAt,
	}
	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		s.logger.Warn().Err(err).
			Str("city", suggestion.City).
			Str("state", suggestion.State).
			Msg("failed to record city suggestion")
		return
	}
	s.logger.Info().
		Str("city", suggestion.City).
		Str("state", suggestion.State).
		Str("order_id", order.OrderID).
		Msg("city suggestion created, awaiting approval")
}

// commitInventory decrements stock for each line item. Sufficiency was
// validated before pricing; the repository enforces it again atomically, so a
// concurrent oversell attempt surfaces here as a warning, not a failed order.
func (s *OrderService) commitInventory(ctx context.Context, items []ports.OrderItemInput) {
	for _, item := range items {
		if err := s.products.DecrementInventory(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Warn().Err(err).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("inventory decrement failed")
		}
	}
}

// GetOrder fetches an order by its public order id.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// UpdateStatus applies an admin lifecycle transition and queues a customer
// notification.
func (s *OrderService) UpdateStatus(ctx context.Context, in ports.UpdateOrderStatusInput) error {
	order, err := s.orders.FindByOrderID(ctx, in.OrderID)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	next := domain.OrderStatus(in.Status)
	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("update status: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, next)
	}

	if err := s.orders.UpdateStatus(ctx, in.OrderID, next, time.Now().UTC(), in.Notes); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if err := s.notifier.Send(ctx, ports.Notification{
		Kind:    ports.NotifyStatusUpdated,
		OrderID: order.OrderID,
		Email:   order.Email,
		Status:  next,
	}); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.OrderID).Msg("failed to queue status notification")
	}

	s.logger.Info().Str("order_id", in.OrderID).Str("status", in.Status).Msg("order status updated")
	return nil
}

// generateOrderID returns a public order id in the format AL<yyyymmdd><4 digits>.
func generateOrderID(now time.Time) string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("AL%s%04d", now.Format("20060102"), now.UnixNano()%10000)
	}
	n := (int(b[0])<<8 | int(b[1])) % 9000
	return fmt.Sprintf("AL%s%04d", now.Format("20060102"), 1000+n)
}

// generateTrackingCode returns a 10-character alphanumeric tracking code.
func generateTrackingCode() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 10)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%010d", time.Now().UnixNano()%10000000000)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}
