package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateProductInput carries the fields needed to add a product to the catalog.
// InitialStock, when positive, seeds the inventory ledger with an opening row.
type CreateProductInput struct {
	Name         string     `json:"name" validate:"required,max=100"`
	Description  string     `json:"description" validate:"max=2000"`
	Price        float64    `json:"price" validate:"gte=0"`
	PointRate    *float64   `json:"point_rate" validate:"omitempty,gte=0,lte=1"`
	CategoryID   *uuid.UUID `json:"category_id"`
	InitialStock int        `json:"initial_stock" validate:"gte=0"`
}

// UpdateProductInput carries the mutable catalog fields of a product.
type UpdateProductInput struct {
	ID          uuid.UUID  `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=2000"`
	Price       float64    `json:"price" validate:"gte=0"`
	PointRate   float64    `json:"point_rate" validate:"gte=0,lte=1"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// CreateCategoryInput carries the fields needed to add a category.
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=2000"`
}

// AddReviewInput carries one customer's rating of a product.
type AddReviewInput struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
	Rating     int       `json:"rating" validate:"required"`
	Comment    string    `json:"comment" validate:"max=2000"`
}

// ProductDetail bundles a product with its reviews.
type ProductDetail struct {
	Product *entity.Product  `json:"product"`
	Reviews []*entity.Review `json:"reviews"`
}

// CatalogUsecase manages products, categories and reviews.
type CatalogUsecase interface {
	// ListProducts retrieves products matching the filter.
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error)

	// GetProduct retrieves a product together with its reviews.
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error)

	// CreateProduct adds a product, seeding the inventory ledger when an
	// initial stock is given.
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)

	// UpdateProduct modifies a product's catalog fields.
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*entity.Product, error)

	// ApplyPrice sets a new unit price for a product. Existing order items keep
	// their snapshots.
	ApplyPrice(ctx context.Context, id uuid.UUID, price float64) error

	// ListCategories retrieves every category.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// CreateCategory adds a category with a unique name.
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error)

	// AddReview posts a rating, rejecting duplicates per (product, customer).
	AddReview(ctx context.Context, input AddReviewInput) (*entity.Review, error)

	// ListReviews retrieves a product's reviews, newest first.
	ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
}
