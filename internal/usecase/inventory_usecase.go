package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// PostInventoryInput describes one manual stock movement.
type PostInventoryInput struct {
	ProductID uuid.UUID                 `json:"product_id" validate:"required"`
	Direction entity.InventoryDirection `json:"direction" validate:"required,oneof=in out"`
	Quantity  int                       `json:"quantity" validate:"required,gt=0"`
	Notes     string                    `json:"notes" validate:"max=500"`
}

// ReconcileResult compares a product's stored stock quantity against the net
// sum of its ledger rows.
type ReconcileResult struct {
	ProductID      uuid.UUID `json:"product_id"`
	StoredQuantity int       `json:"stored_quantity"`
	LedgerQuantity int       `json:"ledger_quantity"`
	Consistent     bool      `json:"consistent"`
}

// InventoryUsecase manages the append-only stock ledger and the stored stock
// quantity it derives.
type InventoryUsecase interface {
	// Post applies one stock movement atomically: it adjusts the stored stock
	// quantity and appends a ledger row in the same transaction. An out
	// movement larger than the current stock is rejected.
	Post(ctx context.Context, input PostInventoryInput) (*entity.InventoryTransaction, error)

	// History retrieves a product's ledger rows, newest first.
	History(ctx context.Context, productID uuid.UUID) ([]*entity.InventoryTransaction, error)

	// Reconcile verifies the stored stock quantity against the ledger.
	Reconcile(ctx context.Context, productID uuid.UUID) (*ReconcileResult, error)
}
