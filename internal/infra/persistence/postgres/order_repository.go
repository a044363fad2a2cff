package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository backed by the given GORM handle,
// which may be a transaction.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderModel := toOrderModel(order)
	if err := repo.db.WithContext(ctx).Create(orderModel).Error; err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	// Write back DB-generated fields on the order and its items.
	order.ID = orderModel.ID
	order.CreatedAt = orderModel.CreatedAt
	for i, itemModel := range orderModel.Items {
		order.Items[i].ID = itemModel.ID
		order.Items[i].OrderID = itemModel.OrderID
	}

	return nil
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderModel model.OrderModel
	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderEntity(&orderModel), nil
}

func (repo *orderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel
	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by customer")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderModel := range orderModels {
		orders = append(orders, toOrderEntity(orderModel))
	}

	return orders, nil
}

func (repo *orderRepository) DailySalesSeries(ctx context.Context, productID uuid.UUID, since time.Time) ([]*entity.DailySale, error) {
	var series []*entity.DailySale
	err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("DATE(orders.created_at) AS date, SUM(order_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ?", productID).
		Where("orders.status = ?", entity.OrderStatusCompleted.String()).
		Where("orders.created_at >= ?", since).
		Group("DATE(orders.created_at)").
		Order("date ASC").
		Scan(&series).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query daily sales series")
	}

	return series, nil
}

func (repo *orderRepository) UnitsSoldSince(ctx context.Context, productID uuid.UUID, since time.Time) (int, error) {
	var units int
	err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ?", productID).
		Where("orders.status = ?", entity.OrderStatusCompleted.String()).
		Where("orders.created_at >= ?", since).
		Scan(&units).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to query units sold")
	}

	return units, nil
}

func (repo *orderRepository) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var revenue float64
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ?", entity.OrderStatusCompleted.String()).
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&revenue).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to query revenue")
	}

	return revenue, nil
}

func (repo *orderRepository) DailyRevenue(ctx context.Context, since time.Time) ([]*entity.DailyRevenue, error) {
	var series []*entity.DailyRevenue
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("DATE(created_at) AS date, SUM(total_amount) AS total, COUNT(*) AS orders").
		Where("status = ?", entity.OrderStatusCompleted.String()).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&series).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query daily revenue")
	}

	return series, nil
}

func (repo *orderRepository) TopProductSales(ctx context.Context, limit int) ([]*entity.ProductSales, error) {
	var sales []*entity.ProductSales
	err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("order_items.product_id AS product_id, products.name AS name, "+
			"SUM(order_items.quantity) AS quantity, "+
			"SUM(order_items.quantity * order_items.unit_price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status = ?", entity.OrderStatusCompleted.String()).
		Group("order_items.product_id, products.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&sales).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query top product sales")
	}

	return sales, nil
}

func (repo *orderRepository) CustomerStats(ctx context.Context, limit int) ([]*entity.CustomerOrderStats, error) {
	var stats []*entity.CustomerOrderStats
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("customer_email AS email, MAX(customer_name) AS name, "+
			"COUNT(*) AS order_count, SUM(total_amount) AS total_spent, "+
			"MAX(created_at) AS last_order").
		Where("status = ?", entity.OrderStatusCompleted.String()).
		Group("customer_email").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query customer stats")
	}

	return stats, nil
}

func toOrderEntity(orderModel *model.OrderModel) *entity.Order {
	items := make([]*entity.OrderItem, 0, len(orderModel.Items))
	for _, itemModel := range orderModel.Items {
		items = append(items, &entity.OrderItem{
			ID:        itemModel.ID,
			OrderID:   itemModel.OrderID,
			ProductID: itemModel.ProductID,
			Quantity:  itemModel.Quantity,
			UnitPrice: itemModel.UnitPrice,
		})
	}

	return &entity.Order{
		ID:             orderModel.ID,
		CustomerID:     orderModel.CustomerID,
		CustomerName:   orderModel.CustomerName,
		CustomerEmail:  orderModel.CustomerEmail,
		SubtotalAmount: orderModel.SubtotalAmount,
		TaxAmount:      orderModel.TaxAmount,
		TotalAmount:    orderModel.TotalAmount,
		DiscountAmount: orderModel.DiscountAmount,
		PointsUsed:     orderModel.PointsUsed,
		PointsEarned:   orderModel.PointsEarned,
		Status:         entity.OrderStatus(orderModel.Status),
		Items:          items,
		CreatedAt:      orderModel.CreatedAt,
	}
}

func toOrderModel(order *entity.Order) *model.OrderModel {
	items := make([]*model.OrderItemModel, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, &model.OrderItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &model.OrderModel{
		CustomerID:     order.CustomerID,
		CustomerName:   order.CustomerName,
		CustomerEmail:  order.CustomerEmail,
		SubtotalAmount: order.SubtotalAmount,
		TaxAmount:      order.TaxAmount,
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		PointsUsed:     order.PointsUsed,
		PointsEarned:   order.PointsEarned,
		Status:         order.Status.String(),
		Items:          items,
	}
}
