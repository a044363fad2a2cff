// Package usecase defines the application service interfaces and their
// input/output contracts.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartLine is one requested product and quantity in a checkout cart.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CheckoutInput carries everything the checkout transaction needs. The
// customer is resolved by email; an unknown email creates a new customer with
// a zero point balance inside the same transaction.
type CheckoutInput struct {
	CustomerName  string     `json:"customer_name" validate:"required,max=100"`
	CustomerEmail string     `json:"customer_email" validate:"required,email,max=100"`
	Lines         []CartLine `json:"lines" validate:"required,min=1,dive"`
	PointsToUse   int        `json:"points_to_use" validate:"gte=0"`

	// TaxRate overrides the configured rate when positive. It is supplied by
	// the caller of the usecase, never bound from the request body.
	TaxRate float64 `json:"-"`
}

// CheckoutUsecase converts carts into completed orders and exposes order lookups.
type CheckoutUsecase interface {
	// Checkout runs the full order transaction: stock validation, pricing,
	// order creation, stock decrement, ledger postings and point movements,
	// all of it atomically.
	Checkout(ctx context.Context, input CheckoutInput) (*entity.Order, error)

	// GetOrder retrieves an order with its items.
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListCustomerOrders retrieves a customer's orders, newest first.
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)
}
