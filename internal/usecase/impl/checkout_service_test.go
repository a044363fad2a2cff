package impl

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutService(store *memoryStore) usecase.CheckoutUsecase {
	return NewCheckoutService(
		newDiscardLogger(),
		newMemoryTxManager(store),
		&fakeOrderRepository{store: store},
		newTestConfig(),
	)
}

func TestCheckoutService_Checkout_ComputesTotals(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Espresso Beans", 1000, 10, 0.01)
	customer := seedCustomer(store, "Alice", "alice@example.com", 500)
	service := newCheckoutService(store)
	ctx := context.Background()

	order, err := service.Checkout(ctx, usecase.CheckoutInput{
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		Lines:         []usecase.CartLine{{ProductID: product.ID, Quantity: 10}},
		PointsToUse:   500,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.InDelta(t, 10000.0, order.SubtotalAmount, 1e-9)
	assert.InDelta(t, 500.0, order.DiscountAmount, 1e-9)
	assert.InDelta(t, 950.0, order.TaxAmount, 1e-9)
	assert.InDelta(t, 10450.0, order.TotalAmount, 1e-9)
	assert.Equal(t, 500, order.PointsUsed)
	assert.Equal(t, 100, order.PointsEarned)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 1000.0, order.Items[0].UnitPrice, 1e-9)

	// Stock and point balance moved together with the order.
	assert.Equal(t, 0, store.products[product.ID].StockQuantity)
	assert.Equal(t, 100, store.customers[customer.ID].Points)

	require.Len(t, store.inventory, 1)
	assert.Equal(t, entity.InventoryOut, store.inventory[0].Direction)
	assert.Equal(t, 10, store.inventory[0].Quantity)

	require.Len(t, store.points, 2)
	assert.Equal(t, -500, store.points[0].Points)
	assert.Equal(t, entity.PointUsed, store.points[0].Type)
	assert.Equal(t, 100, store.points[1].Points)
	assert.Equal(t, entity.PointEarned, store.points[1].Type)
}

func TestCheckoutService_Checkout_FloorsPointsPerLine(t *testing.T) {
	store := newMemoryStore()
	first := seedProduct(store, "Sticker", 150, 10, 0.01)
	second := seedProduct(store, "Postcard", 150, 10, 0.01)
	seedCustomer(store, "Bob", "bob@example.com", 0)
	service := newCheckoutService(store)

	order, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Bob",
		CustomerEmail: "bob@example.com",
		Lines: []usecase.CartLine{
			{ProductID: first.ID, Quantity: 1},
			{ProductID: second.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Each line yields 1.5 points and is floored on its own: 1 + 1, not
	// floor(3.0) = 3.
	assert.Equal(t, 2, order.PointsEarned)
}

func TestCheckoutService_Checkout_TaxRateOverride(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Mug", 100, 10, 0.01)
	service := newCheckoutService(store)

	order, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Lines:         []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
		TaxRate:       0.05,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, order.TaxAmount, 1e-9)
	assert.InDelta(t, 105.0, order.TotalAmount, 1e-9)
}

func TestCheckoutService_Checkout_MergesDuplicateLines(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Mug", 200, 10, 0.01)
	seedCustomer(store, "Cara", "cara@example.com", 0)
	service := newCheckoutService(store)

	order, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Cara",
		CustomerEmail: "cara@example.com",
		Lines: []usecase.CartLine{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 5, order.Items[0].Quantity)
	assert.Equal(t, 5, store.products[product.ID].StockQuantity)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	store := newMemoryStore()
	service := newCheckoutService(store)

	_, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Dan",
		CustomerEmail: "dan@example.com",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestCheckoutService_Checkout_NegativePointsToUse(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Mug", 200, 10, 0.01)
	service := newCheckoutService(store)

	_, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Dan",
		CustomerEmail: "dan@example.com",
		Lines:         []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
		PointsToUse:   -1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCheckoutService_Checkout_UnknownProduct(t *testing.T) {
	store := newMemoryStore()
	seedCustomer(store, "Eve", "eve@example.com", 0)
	service := newCheckoutService(store)

	_, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Eve",
		CustomerEmail: "eve@example.com",
		Lines:         []usecase.CartLine{{ProductID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCheckoutService_Checkout_InsufficientStockLeavesStateUntouched(t *testing.T) {
	store := newMemoryStore()
	plenty := seedProduct(store, "Plenty", 100, 10, 0.01)
	scarce := seedProduct(store, "Scarce", 100, 1, 0.01)
	customer := seedCustomer(store, "Fay", "fay@example.com", 300)
	service := newCheckoutService(store)

	_, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Fay",
		CustomerEmail: "fay@example.com",
		Lines: []usecase.CartLine{
			{ProductID: plenty.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 5},
		},
		PointsToUse: 100,
	})
	require.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	assert.Equal(t, 10, store.products[plenty.ID].StockQuantity)
	assert.Equal(t, 1, store.products[scarce.ID].StockQuantity)
	assert.Equal(t, 300, store.customers[customer.ID].Points)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.inventory)
	assert.Empty(t, store.points)
}

func TestCheckoutService_Checkout_InsufficientPoints(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Mug", 200, 10, 0.01)
	customer := seedCustomer(store, "Gil", "gil@example.com", 50)
	service := newCheckoutService(store)

	_, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Gil",
		CustomerEmail: "gil@example.com",
		Lines:         []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
		PointsToUse:   100,
	})
	require.ErrorIs(t, err, domainerrors.ErrInsufficientPoints)

	assert.Equal(t, 10, store.products[product.ID].StockQuantity)
	assert.Equal(t, 50, store.customers[customer.ID].Points)
	assert.Empty(t, store.orders)
}

func TestCheckoutService_Checkout_CreatesUnknownCustomer(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Notebook", 500, 10, 0.02)
	service := newCheckoutService(store)

	order, err := service.Checkout(context.Background(), usecase.CheckoutInput{
		CustomerName:  "Hana",
		CustomerEmail: "hana@example.com",
		Lines:         []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	created, ok := store.customers[order.CustomerID]
	require.True(t, ok)
	assert.Equal(t, "hana@example.com", created.Email)
	// Fresh customers start at zero and immediately earn from this order.
	assert.Equal(t, order.PointsEarned, created.Points)
	assert.Equal(t, 10, order.PointsEarned)
}

func TestCheckoutService_Checkout_ConcurrentStockContention(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Limited", 100, 5, 0.01)
	seedCustomer(store, "Ivy", "ivy@example.com", 0)
	seedCustomer(store, "Jo", "jo@example.com", 0)
	service := newCheckoutService(store)

	emails := []string{"ivy@example.com", "jo@example.com"}
	results := make([]error, len(emails))

	var wg sync.WaitGroup
	for i, email := range emails {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = service.Checkout(context.Background(), usecase.CheckoutInput{
				CustomerName:  email,
				CustomerEmail: email,
				Lines:         []usecase.CartLine{{ProductID: product.ID, Quantity: 3}},
			})
		}()
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
			failed++
		} else {
			succeeded++
		}
	}

	// Only one of the two carts fits into the remaining stock.
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, store.products[product.ID].StockQuantity)
	assert.Len(t, store.orders, 1)
}

func TestCheckoutService_GetOrder(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Mug", 200, 10, 0.01)
	service := newCheckoutService(store)
	ctx := context.Background()

	order, err := service.Checkout(ctx, usecase.CheckoutInput{
		CustomerName:  "Kim",
		CustomerEmail: "kim@example.com",
		Lines:         []usecase.CartLine{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	found, err := service.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, entity.OrderStatusCompleted, found.Status)
	assert.Len(t, found.Items, 1)

	_, err = service.GetOrder(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestCheckoutService_ListCustomerOrders(t *testing.T) {
	store := newMemoryStore()
	product := seedProduct(store, "Mug", 200, 10, 0.01)
	service := newCheckoutService(store)
	ctx := context.Background()

	first, err := service.Checkout(ctx, usecase.CheckoutInput{
		CustomerName:  "Lea",
		CustomerEmail: "lea@example.com",
		Lines:         []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	orders, err := service.ListCustomerOrders(ctx, first.CustomerID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)
}
