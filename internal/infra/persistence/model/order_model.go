package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Monetary columns are written once at
// creation; only status changes afterwards. Items cascade on delete so an
// order exclusively owns its rows.
type OrderModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName   string    `gorm:"type:varchar(100);not null"`
	CustomerEmail  string    `gorm:"type:varchar(100);not null;index"`
	SubtotalAmount float64   `gorm:"not null"`
	TaxAmount      float64   `gorm:"not null"`
	TotalAmount    float64   `gorm:"not null"`
	DiscountAmount float64   `gorm:"not null;default:0"`
	PointsUsed     int       `gorm:"not null;default:0"`
	PointsEarned   int       `gorm:"not null;default:0"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt      time.Time `gorm:"index"`

	Items []*OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. UnitPrice snapshots the
// product price at order time.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	UnitPrice float64   `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
