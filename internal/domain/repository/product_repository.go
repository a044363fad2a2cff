// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrStockConflict is returned when a stock adjustment would drive the
	// stored quantity below zero.
	ErrStockConflict = errors.New("stock adjustment would go negative")
)

// Product sort orders accepted by ProductFilter.
const (
	ProductSortName      = "name"
	ProductSortPriceAsc  = "price_asc"
	ProductSortPriceDesc = "price_desc"
)

// ProductFilter narrows and orders product listings.
type ProductFilter struct {
	Search      string     // Substring match on the product name.
	CategoryID  *uuid.UUID // Restrict to one category.
	InStockOnly bool       // Exclude products with zero stock.
	SortBy      string     // One of the ProductSort constants; empty means name.
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product and acquires a row-level lock on it.
	// Must be called inside a transaction; the lock is held until commit or rollback.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindAll retrieves products matching the filter.
	FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product's catalog fields.
	Update(ctx context.Context, product *entity.Product) error

	// UpdatePrice sets a new unit price for a product.
	UpdatePrice(ctx context.Context, id uuid.UUID, price float64) error

	// AdjustStock atomically adds delta (which may be negative) to the stored
	// stock quantity, refusing any adjustment that would make it negative.
	// Returns ErrStockConflict when the guard rejects the update.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}
