package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// PaymentHandler bridges the payment gateway's browser widget to the service.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type createPaymentResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	AmountPaise    int64  `json:"amount"`
	Currency       string `json:"currency"`
	OrderID        string `json:"order_id"`
}

type verifyPaymentRequest struct {
	OrderID          string `json:"order_id"           validate:"required"`
	GatewayOrderID   string `json:"gateway_order_id"   validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	Signature        string `json:"signature"          validate:"required"`
}

// Create handles POST /v1/payments/order — opens a gateway payment for an
// existing order, returning the handle the checkout widget needs.
//
// @Summary      Create a gateway payment order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      createPaymentRequest  true  "Order reference"
// @Success      201   {object}  createPaymentResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/payments/order [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.CreatePaymentOrder(c.Request().Context(), ports.CreatePaymentInput{
		OrderID: req.OrderID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createPaymentResponse{
		GatewayOrderID: result.GatewayOrderID,
		AmountPaise:    result.AmountPaise,
		Currency:       result.Currency,
		OrderID:        result.OrderID,
	})
}

// Verify handles POST /v1/payments/verify — checks the callback signature and
// marks the order paid and confirmed.
//
// @Summary      Verify a gateway payment callback
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      verifyPaymentRequest  true  "Gateway callback fields"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/payments/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.service.VerifyPayment(c.Request().Context(), ports.VerifyPaymentInput{
		OrderID:          req.OrderID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "verified"})
}
