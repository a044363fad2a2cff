package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// PointRepository defines the operations for the append-only loyalty point
// ledger. Ledger rows are never updated or deleted.
type PointRepository interface {
	// Append persists a new ledger row.
	Append(ctx context.Context, transaction *entity.PointTransaction) error

	// FindByCustomer retrieves all ledger rows for a customer, newest first.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.PointTransaction, error)

	// Balance returns the sum of all ledger rows for a customer. Used to
	// verify the stored point balance.
	Balance(ctx context.Context, customerID uuid.UUID) (int, error)
}
