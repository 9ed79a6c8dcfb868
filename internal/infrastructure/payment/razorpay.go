// Package payment implements the gateway boundary against the Razorpay Orders
// API. Only order creation goes over the wire; callback verification is pure
// HMAC and lives in the service layer.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.razorpay.com/v1"
	defaultTimeout = 10 * time.Second
	currencyINR    = "INR"
)

// Config captures the settings for the Razorpay client.
type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// Client creates gateway orders over the Razorpay REST API using basic auth.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
	logger    zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   baseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder opens a gateway order for the given amount in paise. Receipt is
// our public order id, echoed back in gateway dashboards and webhooks.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*ports.GatewayOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amountPaise,
		Currency: currencyINR,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("payment: marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("payment: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("receipt", receipt).Msg("gateway order request failed")
		return nil, fmt.Errorf("payment: gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment: gateway returned status %d", resp.StatusCode)
	}

	var out createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("payment: decode response: %w", err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("payment: gateway returned no order id")
	}

	return &ports.GatewayOrder{
		GatewayOrderID: out.ID,
		AmountPaise:    out.Amount,
		Currency:       out.Currency,
	}, nil
}
