package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// PaymentService creates gateway payment orders and verifies their signed
// callbacks. The gateway signs "<gateway_order_id>|<gateway_payment_id>" with
// HMAC-SHA256 over the shared secret.
type PaymentService struct {
	orders  ports.OrderRepository
	gateway ports.PaymentGateway
	secret  string
	logger  zerolog.Logger
}

func NewPaymentService(orders ports.OrderRepository, gateway ports.PaymentGateway, secret string, logger zerolog.Logger) *PaymentService {
	return &PaymentService{orders: orders, gateway: gateway, secret: secret, logger: logger}
}

// CreatePaymentOrder registers the order's total with the gateway. The amount
// is converted to paise, the smallest unit the gateway accepts.
func (s *PaymentService) CreatePaymentOrder(ctx context.Context, in ports.CreatePaymentInput) (*ports.CreatePaymentResult, error) {
	order, err := s.orders.FindByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	amountPaise := int64(math.Round(order.Total * 100))
	gw, err := s.gateway.CreateOrder(ctx, amountPaise, order.OrderID)
	if err != nil {
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("gateway_order_id", gw.GatewayOrderID).
		Int64("amount_paise", amountPaise).
		Msg("gateway payment order created")

	return &ports.CreatePaymentResult{
		GatewayOrderID: gw.GatewayOrderID,
		AmountPaise:    gw.AmountPaise,
		Currency:       gw.Currency,
		OrderID:        order.OrderID,
	}, nil
}

// VerifyPayment checks the gateway callback signature and, when valid, marks
// the order paid and confirms it.
func (s *PaymentService) VerifyPayment(ctx context.Context, in ports.VerifyPaymentInput) error {
	if !s.validSignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		s.logger.Warn().
			Str("order_id", in.OrderID).
			Str("gateway_order_id", in.GatewayOrderID).
			Msg("payment signature mismatch")
		if err := s.orders.UpdatePaymentStatus(ctx, in.OrderID, domain.PaymentFailed); err != nil {
			s.logger.Error().Err(err).Str("order_id", in.OrderID).Msg("failed to mark payment failed")
		}
		return fmt.Errorf("verify payment: %w", domain.ErrPaymentSignature)
	}

	if err := s.orders.UpdatePaymentStatus(ctx, in.OrderID, domain.PaymentCompleted); err != nil {
		return fmt.Errorf("verify payment: %w", err)
	}

	// Confirm the order once paid; skip silently if the order already moved on.
	order, err := s.orders.FindByOrderID(ctx, in.OrderID)
	if err == nil && order.Status.CanTransitionTo(domain.OrderConfirmed) {
		if err := s.orders.UpdateStatus(ctx, in.OrderID, domain.OrderConfirmed, time.Now().UTC(), "payment verified"); err != nil {
			s.logger.Warn().Err(err).Str("order_id", in.OrderID).Msg("failed to confirm paid order")
		}
	}

	s.logger.Info().Str("order_id", in.OrderID).Msg("payment verified")
	return nil
}

func (s *PaymentService) validSignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
