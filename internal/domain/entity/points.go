package entity

import (
	"time"

	"github.com/google/uuid"
)

// PointTransactionType classifies a loyalty point posting.
type PointTransactionType string

const (
	// PointEarned marks a positive posting.
	PointEarned PointTransactionType = "earned"
	// PointUsed marks a negative posting.
	PointUsed PointTransactionType = "used"
)

// String returns the string representation of the PointTransactionType.
func (t PointTransactionType) String() string {
	return string(t)
}

// IsValid checks if the PointTransactionType is a valid value.
func (t PointTransactionType) IsValid() bool {
	switch t {
	case PointEarned, PointUsed:
		return true
	default:
		return false
	}
}

// PointTransaction is one row of the append-only loyalty point ledger.
// Points carries the signed delta (positive = earned, negative = used); the
// customer's stored balance is the running sum of their rows.
type PointTransaction struct {
	ID         uuid.UUID            `json:"id"`
	CustomerID uuid.UUID            `json:"customer_id"`
	OrderID    *uuid.UUID           `json:"order_id,omitempty"` // Set when the posting originated from a checkout.
	Points     int                  `json:"points"`
	Type       PointTransactionType `json:"type"`
	Notes      string               `json:"notes"`
	CreatedAt  time.Time            `json:"created_at"`
}
