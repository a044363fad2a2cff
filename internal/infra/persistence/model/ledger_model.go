package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryTransactionModel mirrors the 'inventory_transactions' table.
// Rows are append-only; there is no UpdatedAt on purpose.
type InventoryTransactionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction string    `gorm:"type:varchar(10);not null"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// PointTransactionModel mirrors the 'point_transactions' table.
// Rows are append-only; Points carries the signed delta.
type PointTransactionModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	Points     int        `gorm:"not null"`
	Type       string     `gorm:"type:varchar(20);not null"`
	Notes      string     `gorm:"type:varchar(200)"`
	CreatedAt  time.Time  `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (PointTransactionModel) TableName() string {
	return "point_transactions"
}
