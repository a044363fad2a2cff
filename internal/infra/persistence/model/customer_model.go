package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModel mirrors the 'customers' table. Email is the unique lookup key
// used by checkout; the points column carries a CHECK (points >= 0) constraint
// as a last line of defense under the application-level guard.
type CustomerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(100);unique;not null"`
	Phone     string    `gorm:"type:varchar(20)"`
	Address   string    `gorm:"type:text"`
	Points    int       `gorm:"not null;default:0;check:points >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
