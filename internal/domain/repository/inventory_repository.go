package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// InventoryRepository defines the operations for the append-only stock ledger.
// Ledger rows are never updated or deleted.
type InventoryRepository interface {
	// Append persists a new ledger row.
	Append(ctx context.Context, transaction *entity.InventoryTransaction) error

	// FindByProduct retrieves all ledger rows for a product, newest first.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.InventoryTransaction, error)

	// NetQuantity returns the net sum of all ledger rows for a product
	// (in minus out). Used to verify the stored stock quantity.
	NetQuantity(ctx context.Context, productID uuid.UUID) (int, error)
}
