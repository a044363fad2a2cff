package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCustomerInput carries the fields needed to register a customer.
type CreateCustomerInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Phone   string `json:"phone" validate:"max=20"`
	Address string `json:"address" validate:"max=500"`
}

// UpdateCustomerInput carries a customer's mutable contact fields.
type UpdateCustomerInput struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	Name    string    `json:"name" validate:"required,max=100"`
	Phone   string    `json:"phone" validate:"max=20"`
	Address string    `json:"address" validate:"max=500"`
}

// GrantPointsInput carries a manual loyalty point grant.
type GrantPointsInput struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
	Points     int       `json:"points" validate:"required,gt=0"`
	Notes      string    `json:"notes" validate:"max=200"`
}

// CustomerDetail bundles a customer with their point history.
type CustomerDetail struct {
	Customer     *entity.Customer           `json:"customer"`
	Transactions []*entity.PointTransaction `json:"transactions"`
}

// CustomerUsecase manages customers and their loyalty point balances.
type CustomerUsecase interface {
	// ListCustomers retrieves every customer.
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)

	// GetCustomer retrieves a customer together with their point history.
	GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerDetail, error)

	// CreateCustomer registers a customer with a unique email.
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*entity.Customer, error)

	// UpdateCustomer modifies a customer's contact fields.
	UpdateCustomer(ctx context.Context, input UpdateCustomerInput) (*entity.Customer, error)

	// GrantPoints credits loyalty points atomically: the stored balance and the
	// ledger row move in the same transaction.
	GrantPoints(ctx context.Context, input GrantPointsInput) error

	// VerifyBalance compares a customer's stored point balance against the
	// ledger sum.
	VerifyBalance(ctx context.Context, id uuid.UUID) (bool, error)
}
