package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Checkout: &config.CheckoutConfig{TaxRate: 0.10},
		Insight:  &config.InsightConfig{CacheTTL: 5 * time.Minute, TopProducts: 10},
	}
}

// memoryStore is the shared state behind the in-memory fake repositories.
// The transaction manager snapshots it before running a transactional
// function and restores it on error, giving the tests real rollback
// semantics without a database.
type memoryStore struct {
	mu sync.Mutex

	products   map[uuid.UUID]*entity.Product
	customers  map[uuid.UUID]*entity.Customer
	orders     map[uuid.UUID]*entity.Order
	inventory  []*entity.InventoryTransaction
	points     []*entity.PointTransaction
	reviews    []*entity.Review
	categories map[uuid.UUID]*entity.Category
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products:   make(map[uuid.UUID]*entity.Product),
		customers:  make(map[uuid.UUID]*entity.Customer),
		orders:     make(map[uuid.UUID]*entity.Order),
		categories: make(map[uuid.UUID]*entity.Category),
	}
}

type storeSnapshot struct {
	products   map[uuid.UUID]*entity.Product
	customers  map[uuid.UUID]*entity.Customer
	orders     map[uuid.UUID]*entity.Order
	inventory  []*entity.InventoryTransaction
	points     []*entity.PointTransaction
	reviews    []*entity.Review
	categories map[uuid.UUID]*entity.Category
}

// snapshot deep-copies every mutable record. Ledger rows and order items are
// append-only, so copying the slice headers is enough for them.
func (s *memoryStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		products:   make(map[uuid.UUID]*entity.Product, len(s.products)),
		customers:  make(map[uuid.UUID]*entity.Customer, len(s.customers)),
		orders:     make(map[uuid.UUID]*entity.Order, len(s.orders)),
		inventory:  append([]*entity.InventoryTransaction(nil), s.inventory...),
		points:     append([]*entity.PointTransaction(nil), s.points...),
		reviews:    append([]*entity.Review(nil), s.reviews...),
		categories: make(map[uuid.UUID]*entity.Category, len(s.categories)),
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, c := range s.customers {
		cp := *c
		snap.customers[id] = &cp
	}
	for id, o := range s.orders {
		cp := *o
		snap.orders[id] = &cp
	}
	for id, c := range s.categories {
		cp := *c
		snap.categories[id] = &cp
	}

	return snap
}

func (s *memoryStore) restore(snap storeSnapshot) {
	s.products = snap.products
	s.customers = snap.customers
	s.orders = snap.orders
	s.inventory = snap.inventory
	s.points = snap.points
	s.reviews = snap.reviews
	s.categories = snap.categories
}

type memoryTxManager struct {
	store *memoryStore
}

func newMemoryTxManager(store *memoryStore) repository.TransactionManager {
	return &memoryTxManager{store: store}
}

// Execute serializes transactions with a mutex, standing in for the row
// locks the real implementation takes.
func (m *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(&memoryFactory{store: m.store}); err != nil {
		m.store.restore(snap)

		return err
	}

	return nil
}

type memoryFactory struct {
	store *memoryStore
}

func (f *memoryFactory) NewProductRepository() repository.ProductRepository {
	return &fakeProductRepository{store: f.store}
}

func (f *memoryFactory) NewCustomerRepository() repository.CustomerRepository {
	return &fakeCustomerRepository{store: f.store}
}

func (f *memoryFactory) NewOrderRepository() repository.OrderRepository {
	return &fakeOrderRepository{store: f.store}
}

func (f *memoryFactory) NewInventoryRepository() repository.InventoryRepository {
	return &fakeInventoryRepository{store: f.store}
}

func (f *memoryFactory) NewPointRepository() repository.PointRepository {
	return &fakePointRepository{store: f.store}
}

type fakeProductRepository struct {
	store *memoryStore
}

func (r *fakeProductRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *product

	return &cp, nil
}

func (r *fakeProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepository) FindAll(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.CategoryID != nil && (product.CategoryID == nil || *product.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.InStockOnly && product.StockQuantity == 0 {
			continue
		}
		cp := *product
		products = append(products, &cp)
	}

	sort.Slice(products, func(i, j int) bool {
		switch filter.SortBy {
		case repository.ProductSortPriceAsc:
			return products[i].Price < products[j].Price
		case repository.ProductSortPriceDesc:
			return products[i].Price > products[j].Price
		default:
			return products[i].Name < products[j].Name
		}
	})

	return products, nil
}

func (r *fakeProductRepository) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	cp := *product
	r.store.products[product.ID] = &cp

	return nil
}

func (r *fakeProductRepository) Update(_ context.Context, product *entity.Product) error {
	existing, ok := r.store.products[product.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.PointRate = product.PointRate
	existing.CategoryID = product.CategoryID
	existing.UpdatedAt = time.Now()

	return nil
}

func (r *fakeProductRepository) UpdatePrice(_ context.Context, id uuid.UUID, price float64) error {
	product, ok := r.store.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.Price = price

	return nil
}

func (r *fakeProductRepository) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	product, ok := r.store.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if product.StockQuantity+delta < 0 {
		return repository.ErrStockConflict
	}
	product.StockQuantity += delta

	return nil
}

type fakeCustomerRepository struct {
	store *memoryStore
}

func (r *fakeCustomerRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := r.store.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	cp := *customer

	return &cp, nil
}

func (r *fakeCustomerRepository) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, customer := range r.store.customers {
		if customer.Email == email {
			cp := *customer

			return &cp, nil
		}
	}

	return nil, repository.ErrCustomerNotFound
}

func (r *fakeCustomerRepository) FindByEmailForUpdate(ctx context.Context, email string) (*entity.Customer, error) {
	return r.FindByEmail(ctx, email)
}

func (r *fakeCustomerRepository) FindAll(_ context.Context) ([]*entity.Customer, error) {
	customers := make([]*entity.Customer, 0, len(r.store.customers))
	for _, customer := range r.store.customers {
		cp := *customer
		customers = append(customers, &cp)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Email < customers[j].Email
	})

	return customers, nil
}

func (r *fakeCustomerRepository) Create(_ context.Context, customer *entity.Customer) error {
	for _, existing := range r.store.customers {
		if existing.Email == customer.Email {
			return repository.ErrDuplicateCustomer
		}
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	cp := *customer
	r.store.customers[customer.ID] = &cp

	return nil
}

func (r *fakeCustomerRepository) Update(_ context.Context, customer *entity.Customer) error {
	existing, ok := r.store.customers[customer.ID]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	existing.Name = customer.Name
	existing.Phone = customer.Phone
	existing.Address = customer.Address
	existing.UpdatedAt = time.Now()

	return nil
}

func (r *fakeCustomerRepository) AdjustPoints(_ context.Context, id uuid.UUID, delta int) error {
	customer, ok := r.store.customers[id]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	if customer.Points+delta < 0 {
		return repository.ErrPointsConflict
	}
	customer.Points += delta

	return nil
}

type fakeOrderRepository struct {
	store *memoryStore
}

func (r *fakeOrderRepository) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	for _, item := range order.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
	}
	cp := *order
	cp.Items = append([]*entity.OrderItem(nil), order.Items...)
	r.store.orders[order.ID] = &cp

	return nil
}

func (r *fakeOrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	order, ok := r.store.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status

	return nil
}

func (r *fakeOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *order
	cp.Items = append([]*entity.OrderItem(nil), order.Items...)

	return &cp, nil
}

func (r *fakeOrderRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0)
	for _, order := range r.store.orders {
		if order.CustomerID != customerID {
			continue
		}
		cp := *order
		cp.Items = append([]*entity.OrderItem(nil), order.Items...)
		orders = append(orders, &cp)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

func (r *fakeOrderRepository) DailySalesSeries(_ context.Context, productID uuid.UUID, since time.Time) ([]*entity.DailySale, error) {
	byDay := make(map[time.Time]float64)
	for _, order := range r.store.orders {
		if order.Status != entity.OrderStatusCompleted || order.CreatedAt.Before(since) {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID != productID {
				continue
			}
			day := order.CreatedAt.UTC().Truncate(24 * time.Hour)
			byDay[day] += float64(item.Quantity)
		}
	}

	series := make([]*entity.DailySale, 0, len(byDay))
	for day, quantity := range byDay {
		series = append(series, &entity.DailySale{Date: day, Quantity: quantity})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series, nil
}

func (r *fakeOrderRepository) UnitsSoldSince(_ context.Context, productID uuid.UUID, since time.Time) (int, error) {
	var sold int
	for _, order := range r.store.orders {
		if order.Status != entity.OrderStatusCompleted || order.CreatedAt.Before(since) {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				sold += item.Quantity
			}
		}
	}

	return sold, nil
}

func (r *fakeOrderRepository) RevenueBetween(_ context.Context, from, to time.Time) (float64, error) {
	var total float64
	for _, order := range r.store.orders {
		if order.Status != entity.OrderStatusCompleted {
			continue
		}
		if order.CreatedAt.Before(from) || !order.CreatedAt.Before(to) {
			continue
		}
		total += order.TotalAmount
	}

	return total, nil
}

func (r *fakeOrderRepository) DailyRevenue(_ context.Context, since time.Time) ([]*entity.DailyRevenue, error) {
	byDay := make(map[time.Time]*entity.DailyRevenue)
	for _, order := range r.store.orders {
		if order.Status != entity.OrderStatusCompleted || order.CreatedAt.Before(since) {
			continue
		}
		day := order.CreatedAt.UTC().Truncate(24 * time.Hour)
		row, ok := byDay[day]
		if !ok {
			row = &entity.DailyRevenue{Date: day}
			byDay[day] = row
		}
		row.Total += order.TotalAmount
		row.Orders++
	}

	rows := make([]*entity.DailyRevenue, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})

	return rows, nil
}

func (r *fakeOrderRepository) TopProductSales(_ context.Context, limit int) ([]*entity.ProductSales, error) {
	byProduct := make(map[uuid.UUID]*entity.ProductSales)
	for _, order := range r.store.orders {
		if order.Status != entity.OrderStatusCompleted {
			continue
		}
		for _, item := range order.Items {
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &entity.ProductSales{ProductID: item.ProductID}
				if product, found := r.store.products[item.ProductID]; found {
					row.Name = product.Name
				}
				byProduct[item.ProductID] = row
			}
			row.Quantity += item.Quantity
			row.Revenue += item.UnitPrice * float64(item.Quantity)
		}
	}

	rows := make([]*entity.ProductSales, 0, len(byProduct))
	for _, row := range byProduct {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Revenue > rows[j].Revenue
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	return rows, nil
}

func (r *fakeOrderRepository) CustomerStats(_ context.Context, limit int) ([]*entity.CustomerOrderStats, error) {
	byEmail := make(map[string]*entity.CustomerOrderStats)
	for _, order := range r.store.orders {
		if order.Status != entity.OrderStatusCompleted {
			continue
		}
		row, ok := byEmail[order.CustomerEmail]
		if !ok {
			row = &entity.CustomerOrderStats{Email: order.CustomerEmail}
			byEmail[order.CustomerEmail] = row
		}
		row.Name = order.CustomerName
		row.OrderCount++
		row.TotalSpent += order.TotalAmount
		if order.CreatedAt.After(row.LastOrder) {
			row.LastOrder = order.CreatedAt
		}
	}

	rows := make([]*entity.CustomerOrderStats, 0, len(byEmail))
	for _, row := range byEmail {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TotalSpent > rows[j].TotalSpent
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	return rows, nil
}

type fakeInventoryRepository struct {
	store *memoryStore
}

func (r *fakeInventoryRepository) Append(_ context.Context, transaction *entity.InventoryTransaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	cp := *transaction
	r.store.inventory = append(r.store.inventory, &cp)

	return nil
}

func (r *fakeInventoryRepository) FindByProduct(_ context.Context, productID uuid.UUID) ([]*entity.InventoryTransaction, error) {
	rows := make([]*entity.InventoryTransaction, 0)
	for i := len(r.store.inventory) - 1; i >= 0; i-- {
		if r.store.inventory[i].ProductID == productID {
			cp := *r.store.inventory[i]
			rows = append(rows, &cp)
		}
	}

	return rows, nil
}

func (r *fakeInventoryRepository) NetQuantity(_ context.Context, productID uuid.UUID) (int, error) {
	var net int
	for _, row := range r.store.inventory {
		if row.ProductID != productID {
			continue
		}
		if row.Direction == entity.InventoryIn {
			net += row.Quantity
		} else {
			net -= row.Quantity
		}
	}

	return net, nil
}

type fakePointRepository struct {
	store *memoryStore
}

func (r *fakePointRepository) Append(_ context.Context, transaction *entity.PointTransaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	cp := *transaction
	r.store.points = append(r.store.points, &cp)

	return nil
}

func (r *fakePointRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.PointTransaction, error) {
	rows := make([]*entity.PointTransaction, 0)
	for i := len(r.store.points) - 1; i >= 0; i-- {
		if r.store.points[i].CustomerID == customerID {
			cp := *r.store.points[i]
			rows = append(rows, &cp)
		}
	}

	return rows, nil
}

func (r *fakePointRepository) Balance(_ context.Context, customerID uuid.UUID) (int, error) {
	var balance int
	for _, row := range r.store.points {
		if row.CustomerID == customerID {
			balance += row.Points
		}
	}

	return balance, nil
}

type fakeReviewRepository struct {
	store *memoryStore
}

func (r *fakeReviewRepository) Create(_ context.Context, review *entity.Review) error {
	for _, existing := range r.store.reviews {
		if existing.ProductID == review.ProductID && existing.CustomerID == review.CustomerID {
			return repository.ErrDuplicateReview
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()
	cp := *review
	r.store.reviews = append(r.store.reviews, &cp)

	return nil
}

func (r *fakeReviewRepository) FindByProductAndCustomer(_ context.Context, productID, customerID uuid.UUID) (*entity.Review, error) {
	for _, review := range r.store.reviews {
		if review.ProductID == productID && review.CustomerID == customerID {
			cp := *review

			return &cp, nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

func (r *fakeReviewRepository) FindByProduct(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	rows := make([]*entity.Review, 0)
	for i := len(r.store.reviews) - 1; i >= 0; i-- {
		if r.store.reviews[i].ProductID == productID {
			cp := *r.store.reviews[i]
			rows = append(rows, &cp)
		}
	}

	return rows, nil
}

type fakeCategoryRepository struct {
	store *memoryStore
}

func (r *fakeCategoryRepository) Create(_ context.Context, category *entity.Category) error {
	for _, existing := range r.store.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicateCategory
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	cp := *category
	r.store.categories[category.ID] = &cp

	return nil
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.store.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *category

	return &cp, nil
}

func (r *fakeCategoryRepository) FindAll(_ context.Context) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		cp := *category
		categories = append(categories, &cp)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

// noopInsightCache always misses, forcing a fresh computation.
type noopInsightCache struct{}

func (noopInsightCache) Get(context.Context, string, any) bool { return false }

func (noopInsightCache) Set(context.Context, string, any) {}

// mapInsightCache stores JSON-encoded values in memory, mirroring the Redis
// implementation closely enough to exercise the cache-first paths.
type mapInsightCache struct {
	entries map[string][]byte
}

func newMapInsightCache() *mapInsightCache {
	return &mapInsightCache{entries: make(map[string][]byte)}
}

func (c *mapInsightCache) Get(_ context.Context, key string, dest any) bool {
	payload, ok := c.entries[key]
	if !ok {
		return false
	}

	return json.Unmarshal(payload, dest) == nil
}

func (c *mapInsightCache) Set(_ context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.entries[key] = payload
}

// Seeding helpers. They write directly into the store so tests can control
// timestamps and balances without going through the services under test.

func seedProduct(store *memoryStore, name string, price float64, stock int, pointRate float64) *entity.Product {
	product := &entity.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		PointRate:     pointRate,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	store.products[product.ID] = product

	return product
}

func seedCustomer(store *memoryStore, name, email string, points int) *entity.Customer {
	customer := &entity.Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Points:    points,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	store.customers[customer.ID] = customer

	return customer
}

func seedCompletedOrder(store *memoryStore, customer *entity.Customer, product *entity.Product, quantity int, createdAt time.Time) *entity.Order {
	order := &entity.Order{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Status:        entity.OrderStatusCompleted,
		CreatedAt:     createdAt,
	}
	lineAmount := product.Price * float64(quantity)
	order.SubtotalAmount = lineAmount
	order.TotalAmount = lineAmount
	order.Items = []*entity.OrderItem{{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}}
	store.orders[order.ID] = order

	return order
}
