package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrProductOutOfStock = errors.New("product out of stock")
var ErrInsufficientInventory = errors.New("insufficient inventory")
var ErrCityNotServed = errors.New("product not deliverable to city")

// Product is a catalog entry. InventoryCount == nil means untracked inventory
// (never runs out). An empty or nil AvailableCities list means the product can
// be delivered anywhere the registry serves.
type Product struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Category        string    `json:"category,omitempty" bson:"category,omitempty"`
	Price           float64   `json:"price" bson:"price"`
	ImageURL        string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	InventoryCount  *int      `json:"inventory_count,omitempty" bson:"inventory_count,omitempty"`
	OutOfStock      bool      `json:"out_of_stock" bson:"out_of_stock"`
	AvailableCities []string  `json:"available_cities,omitempty" bson:"available_cities,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// DeliverableTo reports whether the product may be shipped to the given city.
// The allow-list match follows the registry convention: case-insensitive.
func (p *Product) DeliverableTo(city string) bool {
	if len(p.AvailableCities) == 0 {
		return true
	}
	for _, c := range p.AvailableCities {
		if strings.EqualFold(c, city) {
			return true
		}
	}
	return false
}
