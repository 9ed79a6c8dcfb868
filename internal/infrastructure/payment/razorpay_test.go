package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, KeyID: "rzp_test_key", KeySecret: "s3cret"}, zerolog.Nop())
}

func TestCreateOrderSuccess(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("path = %q, want /orders", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "s3cret" {
			t.Errorf("unexpected basic auth: %q %q %v", user, pass, ok)
		}

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 54950 || req.Currency != "INR" || req.Receipt != "AL202501150042" {
			t.Errorf("unexpected request: %+v", req)
		}

		_ = json.NewEncoder(w).Encode(createOrderResponse{
			ID:       "order_Mx12ab",
			Amount:   req.Amount,
			Currency: req.Currency,
		})
	})

	got, err := client.CreateOrder(context.Background(), 54950, "AL202501150042")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if got.GatewayOrderID != "order_Mx12ab" {
		t.Errorf("GatewayOrderID = %q, want order_Mx12ab", got.GatewayOrderID)
	}
	if got.AmountPaise != 54950 || got.Currency != "INR" {
		t.Errorf("unexpected gateway order: %+v", got)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.CreateOrder(context.Background(), 100, "AL202501150001"); err == nil {
		t.Fatal("expected error on 401 response")
	}
}

func TestCreateOrderMissingID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"amount":100,"currency":"INR"}`))
	})

	if _, err := client.CreateOrder(context.Background(), 100, "AL202501150001"); err == nil {
		t.Fatal("expected error when gateway returns no order id")
	}
}
