package ports

import (
	"context"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string // optional: filter by category
	City     string // optional: only products deliverable to this city
}

// ProductRepository defines read and inventory operations on the catalog.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	// SetInventory replaces the tracked inventory count (admin operation).
	// A count of zero also marks the product out of stock.
	SetInventory(ctx context.Context, id string, count int) error
	// DecrementInventory atomically subtracts qty if at least qty units remain,
	// returning domain.ErrInsufficientInventory otherwise. Products with
	// untracked inventory succeed unconditionally.
	DecrementInventory(ctx context.Context, id string, qty int) error
}
