package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending marks an order that has been created but not finalized.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusCompleted marks a finalized order.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled marks a cancelled order.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order is the result of a checkout. Its monetary fields are computed once at
// creation and frozen; only Status may change afterwards. CustomerName and
// CustomerEmail are snapshots taken at order time, independent of later
// customer edits.
type Order struct {
	ID             uuid.UUID   `json:"id"`
	CustomerID     uuid.UUID   `json:"customer_id"`
	CustomerName   string      `json:"customer_name"`
	CustomerEmail  string      `json:"customer_email"`
	SubtotalAmount float64     `json:"subtotal_amount"` // Sum of line amounts before discount and tax.
	TaxAmount      float64     `json:"tax_amount"`
	TotalAmount    float64     `json:"total_amount"` // max(0, subtotal - discount) * (1 + tax rate).
	DiscountAmount float64     `json:"discount_amount"`
	PointsUsed     int         `json:"points_used"`
	PointsEarned   int         `json:"points_earned"`
	Status         OrderStatus `json:"status"`
	Items          []*OrderItem `json:"items,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// OrderItem is one line of an order. UnitPrice is a snapshot of the product
// price at order time and does not follow later price changes.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}
