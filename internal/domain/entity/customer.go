package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a shopper identified by a unique email address.
// Points is a derived-but-stored aggregate: it must always equal the sum of
// the customer's point transactions, maintained in lockstep with the ledger.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Points    int       `json:"points"` // Loyalty balance, never negative.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
