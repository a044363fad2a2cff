package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Stock statuses reported by the inventory report.
const (
	StockStatusOut = "out_of_stock"
	StockStatusLow = "low_stock"
)

// SalesReport aggregates completed-order activity for the dashboard.
type SalesReport struct {
	DailyRevenue []*entity.DailyRevenue `json:"daily_revenue"`
	TopProducts  []*entity.ProductSales `json:"top_products"`
}

// StockAlert flags a product that is out of stock or close to it.
type StockAlert struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stock_quantity"`
	UnitsSold30d  int       `json:"units_sold_30d"`
	TurnoverRate  float64   `json:"turnover_rate"`
	Status        string    `json:"status"`
}

// InventoryReport lists products at or near stockout, lowest stock first.
type InventoryReport struct {
	LowStockThreshold int           `json:"low_stock_threshold"`
	Alerts            []*StockAlert `json:"alerts"`
}

// CustomerReport ranks customers by spend and measures how many come back.
type CustomerReport struct {
	Customers []*entity.CustomerOrderStats `json:"customers"`

	// RepeatRate is the share of listed customers with more than one order.
	RepeatRate float64 `json:"repeat_rate"`
}

// ReportUsecase produces read-only aggregates over completed orders.
type ReportUsecase interface {
	// SalesReport returns daily revenue over the trailing window and the
	// best-selling products.
	SalesReport(ctx context.Context, days int) (*SalesReport, error)

	// InventoryReport returns out-of-stock and low-stock products with their
	// trailing 30-day turnover.
	InventoryReport(ctx context.Context) (*InventoryReport, error)

	// CustomerReport returns per-customer purchase aggregates ordered by total
	// spend.
	CustomerReport(ctx context.Context, limit int) (*CustomerReport, error)
}
