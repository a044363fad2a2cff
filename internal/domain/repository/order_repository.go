package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence and
// the read-only aggregates derived from completed orders.
type OrderRepository interface {
	// Create persists a new order together with all of its items.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus transitions an order to a new status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByCustomer retrieves all orders for a customer, newest first.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)

	// DailySalesSeries returns the per-day sold quantity of one product over
	// completed orders created at or after since. Days with no sales are absent.
	DailySalesSeries(ctx context.Context, productID uuid.UUID, since time.Time) ([]*entity.DailySale, error)

	// UnitsSoldSince returns the total quantity of one product sold through
	// completed orders created at or after since.
	UnitsSoldSince(ctx context.Context, productID uuid.UUID, since time.Time) (int, error)

	// RevenueBetween returns total completed-order revenue in [from, to).
	RevenueBetween(ctx context.Context, from, to time.Time) (float64, error)

	// DailyRevenue returns per-day completed-order revenue and order counts
	// since the given time, newest day first.
	DailyRevenue(ctx context.Context, since time.Time) ([]*entity.DailyRevenue, error)

	// TopProductSales returns the best-selling products by completed-order
	// revenue, highest first.
	TopProductSales(ctx context.Context, limit int) ([]*entity.ProductSales, error)

	// CustomerStats returns per-customer completed-order aggregates ordered by
	// total spend, highest first.
	CustomerStats(ctx context.Context, limit int) ([]*entity.CustomerOrderStats, error)
}
