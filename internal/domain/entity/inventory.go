package entity

import (
	"time"

	"github.com/google/uuid"
)

// InventoryDirection represents the direction of a stock movement.
type InventoryDirection string

const (
	// InventoryIn increases stock.
	InventoryIn InventoryDirection = "in"
	// InventoryOut decreases stock.
	InventoryOut InventoryDirection = "out"
)

// String returns the string representation of the InventoryDirection.
func (d InventoryDirection) String() string {
	return string(d)
}

// IsValid checks if the InventoryDirection is a valid value.
func (d InventoryDirection) IsValid() bool {
	switch d {
	case InventoryIn, InventoryOut:
		return true
	default:
		return false
	}
}

// InventoryTransaction is one row of the append-only stock ledger.
// Rows are never mutated or deleted; the product's stored stock quantity is
// the running net sum of its rows.
type InventoryTransaction struct {
	ID        uuid.UUID          `json:"id"`
	ProductID uuid.UUID          `json:"product_id"`
	Direction InventoryDirection `json:"direction"`
	Quantity  int                `json:"quantity"` // Always positive; Direction carries the sign.
	Notes     string             `json:"notes"`
	CreatedAt time.Time          `json:"created_at"`
}
