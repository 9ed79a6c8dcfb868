package ports

import "context"

// GatewayOrder is the payment gateway's handle for a pending payment.
type GatewayOrder struct {
	GatewayOrderID string
	AmountPaise    int64
	Currency       string
}

// PaymentGateway abstracts the third-party payment provider. Amounts are in
// paise, the smallest currency unit the gateway accepts.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*GatewayOrder, error)
}

// CreatePaymentInput starts a gateway payment for an existing order.
type CreatePaymentInput struct {
	OrderID string
}

// CreatePaymentResult is returned to the client to launch the gateway widget.
type CreatePaymentResult struct {
	GatewayOrderID string
	AmountPaise    int64
	Currency       string
	OrderID        string
}

// VerifyPaymentInput carries the gateway callback fields whose signature must
// be checked before the order is marked paid.
type VerifyPaymentInput struct {
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// PaymentService creates gateway payment orders and verifies their callbacks.
type PaymentService interface {
	CreatePaymentOrder(ctx context.Context, in CreatePaymentInput) (*CreatePaymentResult, error)
	VerifyPayment(ctx context.Context, in VerifyPaymentInput) error
}
