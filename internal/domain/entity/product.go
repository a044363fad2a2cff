// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPointRate is the loyalty point accrual rate applied to new products (1%).
const DefaultPointRate = 0.01

// Product represents a sellable item in the catalog.
// StockQuantity is a derived-but-stored aggregate: it must always equal the
// net sum of the product's inventory ledger entries, so the two are only ever
// updated together inside one transaction.
type Product struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`          // Unit price, never negative.
	StockQuantity int        `json:"stock_quantity"` // On-hand stock, never negative.
	PointRate     float64    `json:"point_rate"`     // Fraction of spend returned as loyalty points.
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Category groups products. Names are unique.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Review is a customer's rating of a product. At most one review exists per
// (product, customer) pair.
type Review struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Rating     int       `json:"rating"` // 1 to 5 stars.
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
