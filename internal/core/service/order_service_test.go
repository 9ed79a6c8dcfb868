package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

func inventory(n int) *int { return &n }

func pickleProduct() *domain.Product {
	return &domain.Product{
		ID:             "p1",
		Name:           "Mango Pickle",
		Price:          250,
		InventoryCount: inventory(10),
	}
}

func sweetProduct() *domain.Product {
	return &domain.Product{
		ID:              "p2",
		Name:            "Bandar Laddu",
		Price:           400,
		InventoryCount:  inventory(5),
		AvailableCities: []string{"Guntur"},
	}
}

type fixedPricer struct {
	quote ports.DeliveryQuote
	last  ports.QuoteInput
}

func (p *fixedPricer) Quote(_ context.Context, in ports.QuoteInput) ports.DeliveryQuote {
	p.last = in
	return p.quote
}

func newOrderSvc(orders *stubOrderRepo, products *stubProductRepo, suggestions *stubSuggestionRepo, pricer ports.PricingService, notifier *stubNotifier) *OrderService {
	return NewOrderService(orders, products, suggestions, pricer, notifier, zerolog.Nop())
}

func basicInput() ports.CreateOrderInput {
	return ports.CreateOrderInput{
		CustomerName: "Sita",
		Email:        "sita@example.com",
		Phone:        "9000000000",
		Address: ports.AddressInput{
			Street:  "Main Road",
			City:    "Guntur",
			State:   "Andhra Pradesh",
			Pincode: "522001",
		},
		Items: []ports.OrderItemInput{
			{ProductID: "p1", Name: "Mango Pickle", UnitPrice: 250, Quantity: 2},
		},
		PaymentMethod:  "cod",
		ClientSubtotal: 500,
		ClientTotal:    549,
	}
}

func TestCreateOrder_ServerComputedTotals(t *testing.T) {
	orders := newStubOrderRepo()
	products := newStubProductRepo(pickleProduct())
	suggestions := &stubSuggestionRepo{}
	notifier := &stubNotifier{}
	pricer := &fixedPricer{quote: ports.DeliveryQuote{DeliveryCharge: 49}}
	svc := newOrderSvc(orders, products, suggestions, pricer, notifier)

	in := basicInput()
	// Client lies about the unit price and totals; server must ignore them.
	in.Items[0].UnitPrice = 1
	in.ClientSubtotal = 2
	in.ClientTotal = 51

	result, err := svc.CreateOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if result.Subtotal != 500 {
		t.Errorf("subtotal = %v, want 500 (catalog price x quantity)", result.Subtotal)
	}
	if result.DeliveryCharge != 49 {
		t.Errorf("delivery charge = %v, want 49", result.DeliveryCharge)
	}
	if result.Total != 549 {
		t.Errorf("total = %v, want 549", result.Total)
	}

	stored, err := orders.FindByOrderID(context.Background(), result.OrderID)
	if err != nil {
		t.Fatalf("stored order not found: %v", err)
	}
	if stored.Items[0].UnitPrice != 250 {
		t.Errorf("persisted unit price = %v, want catalog price 250", stored.Items[0].UnitPrice)
	}
	if stored.Subtotal != 500 || stored.Total != 549 {
		t.Errorf("persisted totals = %v/%v, want 500/549", stored.Subtotal, stored.Total)
	}
	// Client figures are kept for auditing only.
	if stored.ClientSubtotal != 2 || stored.ClientTotal != 51 {
		t.Errorf("client figures not preserved for audit: %v/%v", stored.ClientSubtotal, stored.ClientTotal)
	}
	if !strings.HasPrefix(result.OrderID, "AL") {
		t.Errorf("order id %q missing AL prefix", result.OrderID)
	}
	if len(result.TrackingCode) != 10 {
		t.Errorf("tracking code %q, want 10 characters", result.TrackingCode)
	}
}

func TestCreateOrder_InsufficientInventory(t *testing.T) {
	p := pickleProduct()
	p.InventoryCount = inventory(1)
	orders := newStubOrderRepo()
	products := newStubProductRepo(p)
	svc := newOrderSvc(orders, products, &stubSuggestionRepo{}, &fixedPricer{}, &stubNotifier{})

	in := basicInput()
	in.Items[0].Quantity = 3

	_, err := svc.CreateOrder(context.Background(), in)
	if !errors.Is(err, domain.ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory, got %v", err)
	}
	if !strings.Contains(err.Error(), "Mango Pickle") {
		t.Errorf("rejection must name the product, got %q", err.Error())
	}
	if len(orders.byOrderID) != 0 {
		t.Error("no order may be created on rejection")
	}
}

func TestCreateOrder_OutOfStock(t *testing.T) {
	p := pickleProduct()
	p.OutOfStock = true
	svc := newOrderSvc(newStubOrderRepo(), newStubProductRepo(p), &stubSuggestionRepo{}, &fixedPricer{}, &stubNotifier{})

	_, err := svc.CreateOrder(context.Background(), basicInput())
	if !errors.Is(err, domain.ErrProductOutOfStock) {
		t.Fatalf("expected ErrProductOutOfStock, got %v", err)
	}
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	svc := newOrderSvc(newStubOrderRepo(), newStubProductRepo(), &stubSuggestionRepo{}, &fixedPricer{}, &stubNotifier{})

	_, err := svc.CreateOrder(context.Background(), basicInput())
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCreateOrder_CityAllowList(t *testing.T) {
	orders := newStubOrderRepo()
	products := newStubProductRepo(pickleProduct(), sweetProduct())
	svc := newOrderSvc(orders, products, &stubSuggestionRepo{}, &fixedPricer{quote: ports.DeliveryQuote{DeliveryCharge: 99}}, &stubNotifier{})

	in := basicInput()
	in.Address.City = "Tenali"
	in.Items = append(in.Items, ports.OrderItemInput{ProductID: "p2", Quantity: 1})

	_, err := svc.CreateOrder(context.Background(), in)
	if !errors.Is(err, domain.ErrCityNotServed) {
		t.Fatalf("expected ErrCityNotServed, got %v", err)
	}
	if !strings.Contains(err.Error(), "Bandar Laddu") {
		t.Errorf("rejection must name the restricted product, got %q", err.Error())
	}
	if len(orders.byOrderID) != 0 {
		t.Error("whole order must be rejected atomically")
	}
}

func TestCreateOrder_InventoryCommitted(t *testing.T) {
	p := pickleProduct()
	orders := newStubOrderRepo()
	products := newStubProductRepo(p)
	svc := newOrderSvc(orders, products, &stubSuggestionRepo{}, &fixedPricer{quote: ports.DeliveryQuote{DeliveryCharge: 49}}, &stubNotifier{})

	if _, err := svc.CreateOrder(context.Background(), basicInput()); err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if products.decremented["p1"] != 2 {
		t.Errorf("inventory decremented by %d, want 2", products.decremented["p1"])
	}
	if *products.products["p1"].InventoryCount != 8 {
		t.Errorf("remaining inventory = %d, want 8", *products.products["p1"].InventoryCount)
	}
}

func TestCreateOrder_CustomCityRequestCreatesSuggestion(t *testing.T) {
	distance := 73.4
	orders := newStubOrderRepo()
	products := newStubProductRepo(pickleProduct())
	suggestions := &stubSuggestionRepo{}
	pricer := &fixedPricer{quote: ports.DeliveryQuote{
		DeliveryCharge:        99,
		DistanceKm:            &distance,
		RequiresAdminApproval: true,
	}}
	svc := newOrderSvc(orders, products, suggestions, pricer, &stubNotifier{})

	in := basicInput()
	in.Address.City = "Khammam"
	in.Address.State = "Telangana"

	result, err := svc.CreateOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if !result.CustomCityRequest {
		t.Error("expected custom city request flag")
	}
	if len(suggestions.suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions.suggestions))
	}
	sg := suggestions.suggestions[0]
	if sg.City != "Khammam" || sg.State != "Telangana" {
		t.Errorf("suggestion destination = %s, %s", sg.City, sg.State)
	}
	if sg.SuggestedCharge != 99 {
		t.Errorf("suggested charge = %v, want 99", sg.SuggestedCharge)
	}
	if sg.DistanceKm == nil || *sg.DistanceKm != 73.4 {
		t.Errorf("suggestion distance = %v, want 73.4", sg.DistanceKm)
	}
	if sg.Status != domain.SuggestionPending {
		t.Errorf("suggestion status = %s, want pending", sg.Status)
	}
}

func TestCreateOrder_ExplicitCustomLocationNoSuggestion(t *testing.T) {
	orders := newStubOrderRepo()
	suggestions := &stubSuggestionRepo{}
	pricer := &fixedPricer{quote: ports.DeliveryQuote{RequiresAdminApproval: true}}
	svc := newOrderSvc(orders, newStubProductRepo(pickleProduct()), suggestions, pricer, &stubNotifier{})

	in := basicInput()
	in.IsCustomLocation = true
	in.CustomCity = "Remote Village"
	in.CustomState = "Telangana"

	result, err := svc.CreateOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if result.CustomCityRequest {
		t.Error("explicit custom location is not an implicit city request")
	}
	if result.DeliveryCharge != 0 {
		t.Errorf("charge = %v, want 0 (deferred)", result.DeliveryCharge)
	}
	if len(suggestions.suggestions) != 0 {
		t.Error("explicit custom location must not create a suggestion")
	}

	stored, _ := orders.FindByOrderID(context.Background(), result.OrderID)
	if stored.Address.City != "Remote Village" || stored.Address.State != "Telangana" {
		t.Errorf("custom destination not used: %s, %s", stored.Address.City, stored.Address.State)
	}
	if !stored.IsCustomLocation {
		t.Error("custom location flag lost")
	}
}

func TestCreateOrder_SendsConfirmation(t *testing.T) {
	notifier := &stubNotifier{}
	svc := newOrderSvc(newStubOrderRepo(), newStubProductRepo(pickleProduct()), &stubSuggestionRepo{}, &fixedPricer{quote: ports.DeliveryQuote{DeliveryCharge: 49}}, notifier)

	result, err := svc.CreateOrder(context.Background(), basicInput())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.Kind != ports.NotifyOrderConfirmed || n.OrderID != result.OrderID || n.Email != "sita@example.com" {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	svc := newOrderSvc(newStubOrderRepo(), newStubProductRepo(), &stubSuggestionRepo{}, &fixedPricer{}, &stubNotifier{})

	in := basicInput()
	in.Items = nil
	if _, err := svc.CreateOrder(context.Background(), in); err == nil {
		t.Fatal("expected error for empty order")
	}
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	orders := newStubOrderRepo()
	notifier := &stubNotifier{}
	svc := newOrderSvc(orders, newStubProductRepo(pickleProduct()), &stubSuggestionRepo{}, &fixedPricer{quote: ports.DeliveryQuote{DeliveryCharge: 49}}, notifier)

	result, err := svc.CreateOrder(context.Background(), basicInput())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	notifier.sent = nil

	if err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: result.OrderID, Status: "confirmed"}); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	stored, _ := orders.FindByOrderID(context.Background(), result.OrderID)
	if stored.Status != domain.OrderConfirmed {
		t.Errorf("status = %s, want confirmed", stored.Status)
	}
	if len(stored.StatusHistory) != 2 {
		t.Errorf("history length = %d, want 2", len(stored.StatusHistory))
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Kind != ports.NotifyStatusUpdated {
		t.Errorf("expected status notification, got %+v", notifier.sent)
	}
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	orders := newStubOrderRepo()
	svc := newOrderSvc(orders, newStubProductRepo(pickleProduct()), &stubSuggestionRepo{}, &fixedPricer{quote: ports.DeliveryQuote{DeliveryCharge: 49}}, &stubNotifier{})

	result, err := svc.CreateOrder(context.Background(), basicInput())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	err = svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: result.OrderID, Status: "delivered"})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
