package entity

import (
	"time"

	"github.com/google/uuid"
)

// DailySale is one day of sold quantity for a single product, projected from
// completed orders.
type DailySale struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// DailyRevenue is one day of completed-order revenue.
type DailyRevenue struct {
	Date   time.Time `json:"date"`
	Total  float64   `json:"total"`
	Orders int       `json:"orders"`
}

// ProductSales is a per-product sales aggregate over completed orders.
type ProductSales struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Revenue   float64   `json:"revenue"`
}

// CustomerOrderStats is a per-customer purchase aggregate over completed
// orders, keyed by the email snapshot stored on each order.
type CustomerOrderStats struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	OrderCount int       `json:"order_count"`
	TotalSpent float64   `json:"total_spent"`
	LastOrder  time.Time `json:"last_order"`
}
