// Package impl contains the concrete application services behind the usecase
// interfaces.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
)

type checkoutService struct {
	logger    *slog.Logger
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	taxRate   float64
}

// NewCheckoutService creates the checkout application service.
func NewCheckoutService(
	logger *slog.Logger,
	txManager repository.TransactionManager,
	orderRepo repository.OrderRepository,
	cfg *config.Config,
) usecase.CheckoutUsecase {
	return &checkoutService{
		logger:    logger,
		txManager: txManager,
		orderRepo: orderRepo,
		taxRate:   cfg.Checkout.TaxRate,
	}
}

// Checkout runs the whole order transaction as one atomic unit. Product and
// customer rows are locked before validation so two concurrent checkouts can
// never both pass against the same stale stock or point balance.
func (s *checkoutService) Checkout(ctx context.Context, input usecase.CheckoutInput) (*entity.Order, error) {
	lines, err := normalizeCart(input.Lines)
	if err != nil {
		return nil, err
	}
	if input.PointsToUse < 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("points_to_use must not be negative")
	}
	if input.TaxRate < 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("tax rate must not be negative")
	}

	var order *entity.Order
	err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		productRepo := factory.NewProductRepository()
		customerRepo := factory.NewCustomerRepository()
		orderRepo := factory.NewOrderRepository()
		inventoryRepo := factory.NewInventoryRepository()
		pointRepo := factory.NewPointRepository()

		customer, err := s.resolveCustomer(ctx, customerRepo, input)
		if err != nil {
			return err
		}

		if input.PointsToUse > customer.Points {
			return domainerrors.ErrInsufficientPoints.WithDetails(fmt.Sprintf(
				"requested %d points, balance is %d", input.PointsToUse, customer.Points))
		}

		// Lock every product row up front, then validate the full cart against
		// the locked snapshot before any mutation.
		products := make(map[uuid.UUID]*entity.Product, len(lines))
		for _, line := range lines {
			product, err := productRepo.FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WithDetails(line.ProductID.String())
				}

				return err
			}
			products[line.ProductID] = product
		}
		for _, line := range lines {
			product := products[line.ProductID]
			if product.StockQuantity < line.Quantity {
				return domainerrors.ErrInsufficientStock.WithDetails(fmt.Sprintf(
					"%s: requested %d, available %d", product.Name, line.Quantity, product.StockQuantity))
			}
		}

		var subtotal float64
		var pointsEarned int
		items := make([]*entity.OrderItem, 0, len(lines))
		for _, line := range lines {
			product := products[line.ProductID]
			lineAmount := product.Price * float64(line.Quantity)
			subtotal += lineAmount
			// Floor per line, then sum. Under-awards versus flooring the total,
			// which is the intended conservative rounding.
			pointsEarned += int(math.Floor(lineAmount * product.PointRate))
			items = append(items, &entity.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}

		taxRate := s.taxRate
		if input.TaxRate > 0 {
			taxRate = input.TaxRate
		}

		discount := float64(input.PointsToUse)
		discountedSubtotal := math.Max(0, subtotal-discount)
		taxAmount := discountedSubtotal * taxRate
		totalAmount := discountedSubtotal + taxAmount

		order = &entity.Order{
			CustomerID:     customer.ID,
			CustomerName:   input.CustomerName,
			CustomerEmail:  input.CustomerEmail,
			SubtotalAmount: subtotal,
			TaxAmount:      taxAmount,
			TotalAmount:    totalAmount,
			DiscountAmount: discount,
			PointsUsed:     input.PointsToUse,
			PointsEarned:   pointsEarned,
			Status:         entity.OrderStatusPending,
			Items:          items,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		for _, line := range lines {
			if err := productRepo.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
				// Validation ran under the row lock, so the guard only fires if
				// something slipped past it.
				if errors.Is(err, repository.ErrStockConflict) {
					return domainerrors.ErrContention.WrapMessage("stock changed during checkout")
				}

				return err
			}
			if err := inventoryRepo.Append(ctx, &entity.InventoryTransaction{
				ProductID: line.ProductID,
				Direction: entity.InventoryOut,
				Quantity:  line.Quantity,
				Notes:     "order " + order.ID.String(),
			}); err != nil {
				return err
			}
		}

		if input.PointsToUse > 0 {
			if err := customerRepo.AdjustPoints(ctx, customer.ID, -input.PointsToUse); err != nil {
				if errors.Is(err, repository.ErrPointsConflict) {
					return domainerrors.ErrContention.WrapMessage("point balance changed during checkout")
				}

				return err
			}
			if err := pointRepo.Append(ctx, &entity.PointTransaction{
				CustomerID: customer.ID,
				OrderID:    &order.ID,
				Points:     -input.PointsToUse,
				Type:       entity.PointUsed,
				Notes:      "redeemed at checkout",
			}); err != nil {
				return err
			}
		}

		if pointsEarned > 0 {
			if err := customerRepo.AdjustPoints(ctx, customer.ID, pointsEarned); err != nil {
				return err
			}
			if err := pointRepo.Append(ctx, &entity.PointTransaction{
				CustomerID: customer.ID,
				OrderID:    &order.ID,
				Points:     pointsEarned,
				Type:       entity.PointEarned,
				Notes:      "earned at checkout",
			}); err != nil {
				return err
			}
		}

		if err := orderRepo.UpdateStatus(ctx, order.ID, entity.OrderStatusCompleted); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCompleted

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	logger.InfoContext(ctx, "checkout completed",
		slog.String("orderID", order.ID.String()),
		slog.String("customerEmail", order.CustomerEmail),
		slog.Float64("totalAmount", order.TotalAmount),
		slog.Int("pointsUsed", order.PointsUsed),
		slog.Int("pointsEarned", order.PointsEarned),
	)

	return order, nil
}

func (s *checkoutService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WithDetails(id.String())
		}

		return nil, err
	}

	return order, nil
}

func (s *checkoutService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	return s.orderRepo.FindByCustomer(ctx, customerID)
}

// resolveCustomer locks the customer row for the rest of the transaction, or
// creates a fresh customer when the email is unknown. A freshly inserted row
// is invisible to other transactions until commit, so no lock is needed on it.
func (s *checkoutService) resolveCustomer(ctx context.Context, customerRepo repository.CustomerRepository, input usecase.CheckoutInput) (*entity.Customer, error) {
	customer, err := customerRepo.FindByEmailForUpdate(ctx, input.CustomerEmail)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, err
	}

	customer = &entity.Customer{
		Name:   input.CustomerName,
		Email:  input.CustomerEmail,
		Points: 0,
	}
	if err := customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateCustomer) {
			// Another transaction inserted the same email between our lookup
			// and insert.
			return nil, domainerrors.ErrContention.WrapMessage("customer created concurrently")
		}

		return nil, err
	}

	return customer, nil
}

// normalizeCart merges duplicate product lines and orders them by product ID
// so concurrent checkouts always lock rows in the same sequence.
func normalizeCart(lines []usecase.CartLine) ([]usecase.CartLine, error) {
	if len(lines) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	merged := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domainerrors.ErrValidation.WrapMessage("cart quantities must be positive")
		}
		merged[line.ProductID] += line.Quantity
	}

	normalized := make([]usecase.CartLine, 0, len(merged))
	for productID, quantity := range merged {
		normalized = append(normalized, usecase.CartLine{ProductID: productID, Quantity: quantity})
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].ProductID.String() < normalized[j].ProductID.String()
	})

	return normalized, nil
}
