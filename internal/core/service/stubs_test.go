package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared across service tests
// ---------------------------------------------------------------------------

type stubCityRepo struct {
	records []*domain.CityCharge
	findErr error
}

func (r *stubCityRepo) FindCharge(_ context.Context, city, state string) (*domain.CityCharge, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, rec := range r.records {
		if strings.EqualFold(rec.Name, city) && strings.EqualFold(rec.State, state) {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, domain.ErrCityNotFound
}

func (r *stubCityRepo) List(_ context.Context) ([]*domain.CityCharge, error) {
	return r.records, nil
}

func (r *stubCityRepo) Upsert(_ context.Context, record *domain.CityCharge) error {
	for i, rec := range r.records {
		if strings.EqualFold(rec.Name, record.Name) && strings.EqualFold(rec.State, record.State) {
			r.records[i] = record
			return nil
		}
	}
	r.records = append(r.records, record)
	return nil
}

func (r *stubCityRepo) Delete(_ context.Context, city, state string) error {
	for i, rec := range r.records {
		if strings.EqualFold(rec.Name, city) && strings.EqualFold(rec.State, state) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrCityNotFound
}

type stubGeocoder struct {
	coord domain.Coordinate
	err   error
	calls int
}

func (g *stubGeocoder) Resolve(_ context.Context, _, _ string) (domain.Coordinate, error) {
	g.calls++
	if g.err != nil {
		return domain.Coordinate{}, g.err
	}
	return g.coord, nil
}

type stubProductRepo struct {
	products    map[string]*domain.Product
	decremented map[string]int
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{
		products:    make(map[string]*domain.Product),
		decremented: make(map[string]int),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context, _ ports.ProductFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) SetInventory(_ context.Context, id string, count int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.InventoryCount = &count
	p.OutOfStock = count == 0
	return nil
}

func (r *stubProductRepo) DecrementInventory(_ context.Context, id string, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.InventoryCount == nil {
		r.decremented[id] += qty
		return nil
	}
	if *p.InventoryCount < qty {
		return domain.ErrInsufficientInventory
	}
	remaining := *p.InventoryCount - qty
	p.InventoryCount = &remaining
	p.OutOfStock = remaining == 0
	r.decremented[id] += qty
	return nil
}

type stubOrderRepo struct {
	byOrderID map[string]*domain.Order
	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byOrderID: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.byOrderID[o.OrderID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	o, ok := r.byOrderID[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus, ts time.Time, notes string) error {
	o, ok := r.byOrderID[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, domain.StatusHistoryEntry{Status: status, Timestamp: ts, Notes: notes})
	return nil
}

func (r *stubOrderRepo) UpdatePaymentStatus(_ context.Context, orderID string, status domain.PaymentStatus) error {
	o, ok := r.byOrderID[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.PaymentStatus = status
	return nil
}

func (r *stubOrderRepo) ListCustomDestinations(_ context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.byOrderID {
		if o.IsCustomLocation || o.CustomCityRequest {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubSuggestionRepo struct {
	suggestions []*domain.CitySuggestion
	createErr   error
}

func (r *stubSuggestionRepo) Create(_ context.Context, s *domain.CitySuggestion) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *s
	r.suggestions = append(r.suggestions, &clone)
	return nil
}

func (r *stubSuggestionRepo) FindPending(_ context.Context, city, state string) (*domain.CitySuggestion, error) {
	for _, s := range r.suggestions {
		if s.Status == domain.SuggestionPending && strings.EqualFold(s.City, city) && strings.EqualFold(s.State, state) {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrCityNotFound
}

func (r *stubSuggestionRepo) UpdateStatus(_ context.Context, id string, status domain.SuggestionStatus) error {
	for _, s := range r.suggestions {
		if s.ID == id {
			s.Status = status
			return nil
		}
	}
	return domain.ErrCityNotFound
}

type stubNotifier struct {
	sent    []ports.Notification
	sendErr error
}

func (n *stubNotifier) Send(_ context.Context, notif ports.Notification) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, notif)
	return nil
}

type stubGateway struct {
	order *ports.GatewayOrder
	err   error
	// lastAmount records the amount passed to the gateway.
	lastAmount  int64
	lastReceipt string
}

func (g *stubGateway) CreateOrder(_ context.Context, amountPaise int64, receipt string) (*ports.GatewayOrder, error) {
	g.lastAmount = amountPaise
	g.lastReceipt = receipt
	if g.err != nil {
		return nil, g.err
	}
	if g.order != nil {
		return g.order, nil
	}
	return &ports.GatewayOrder{GatewayOrderID: "gw_123", AmountPaise: amountPaise, Currency: "INR"}, nil
}

var errStubDown = errors.New("stub dependency down")
