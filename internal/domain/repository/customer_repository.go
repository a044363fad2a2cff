package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for customer persistence.
var (
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicateCustomer is returned when the unique email constraint is violated.
	ErrDuplicateCustomer = errors.New("customer already exists")
	// ErrPointsConflict is returned when a point adjustment would drive the
	// stored balance below zero.
	ErrPointsConflict = errors.New("point adjustment would go negative")
)

// CustomerRepository defines the standard operations for customer persistence.
type CustomerRepository interface {
	// FindByID retrieves a single customer by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindByEmail retrieves a single customer by their unique email address.
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// FindByEmailForUpdate retrieves a customer by email and acquires a
	// row-level lock. Must be called inside a transaction.
	FindByEmailForUpdate(ctx context.Context, email string) (*entity.Customer, error)

	// FindAll retrieves every customer.
	FindAll(ctx context.Context) ([]*entity.Customer, error)

	// Create persists a new customer.
	Create(ctx context.Context, customer *entity.Customer) error

	// Update modifies an existing customer's contact fields.
	Update(ctx context.Context, customer *entity.Customer) error

	// AdjustPoints atomically adds delta (which may be negative) to the stored
	// point balance, refusing any adjustment that would make it negative.
	// Returns ErrPointsConflict when the guard rejects the update.
	AdjustPoints(ctx context.Context, id uuid.UUID, delta int) error
}
