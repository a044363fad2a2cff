package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository backed by the given GORM handle,
// which may be a transaction.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productModel model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductEntity(&productModel), nil
}

func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productModel model.ProductModel
	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&productModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}
		if isSerializationFailure(err) {
			return nil, domainerrors.ErrContention.WrapMessage("failed to lock product row")
		}

		return nil, errors.Wrap(err, "failed to lock product by id")
	}

	return toProductEntity(&productModel), nil
}

func (repo *productRepository) FindAll(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.InStockOnly {
		query = query.Where("stock_quantity > 0")
	}

	switch filter.SortBy {
	case repository.ProductSortPriceAsc:
		query = query.Order("price ASC")
	case repository.ProductSortPriceDesc:
		query = query.Order("price DESC")
	default:
		query = query.Order("name ASC")
	}

	var productModels []*model.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productModel := range productModels {
		products = append(products, toProductEntity(productModel))
	}

	return products, nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productModel := toProductModel(product)
	if err := repo.db.WithContext(ctx).Create(productModel).Error; err != nil {
		return errors.Wrap(err, "failed to create product")
	}

	// Write back DB-generated fields.
	product.ID = productModel.ID
	product.CreatedAt = productModel.CreatedAt
	product.UpdatedAt = productModel.UpdatedAt

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	updates := map[string]any{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"point_rate":  product.PointRate,
		"category_id": product.CategoryID,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price float64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("price", price)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product price")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// AdjustStock applies a guarded relative update. The WHERE clause rejects any
// delta that would drive stock_quantity negative, so two concurrent checkouts
// can never both succeed on the last unit.
func (repo *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if result.Error != nil {
		if isSerializationFailure(result.Error) {
			return domainerrors.ErrContention.WrapMessage("failed to adjust product stock")
		}

		return errors.Wrap(result.Error, "failed to adjust product stock")
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing product from a rejected adjustment.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.ProductModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to verify product existence")
		}
		if count == 0 {
			return repository.ErrProductNotFound
		}

		return repository.ErrStockConflict
	}

	return nil
}

func toProductEntity(productModel *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:            productModel.ID,
		Name:          productModel.Name,
		Description:   productModel.Description,
		Price:         productModel.Price,
		StockQuantity: productModel.StockQuantity,
		PointRate:     productModel.PointRate,
		CategoryID:    productModel.CategoryID,
		CreatedAt:     productModel.CreatedAt,
		UpdatedAt:     productModel.UpdatedAt,
	}
}

func toProductModel(product *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		PointRate:     product.PointRate,
		CategoryID:    product.CategoryID,
	}
}
