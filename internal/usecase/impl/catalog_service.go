package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
)

type catalogService struct {
	logger       *slog.Logger
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
	customerRepo repository.CustomerRepository
}

// NewCatalogService creates the catalog application service.
func NewCatalogService(
	logger *slog.Logger,
	txManager repository.TransactionManager,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	reviewRepo repository.ReviewRepository,
	customerRepo repository.CustomerRepository,
) usecase.CatalogUsecase {
	return &catalogService{
		logger:       logger,
		txManager:    txManager,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		customerRepo: customerRepo,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return s.productRepo.FindAll(ctx, filter)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*usecase.ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WithDetails(id.String())
		}

		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	return &usecase.ProductDetail{Product: product, Reviews: reviews}, nil
}

// CreateProduct adds a product. A positive initial stock is written through
// the same path as any other stock movement: the stored quantity and an
// opening ledger row, committed together.
func (s *catalogService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("price must not be negative")
	}
	if input.InitialStock < 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("initial stock must not be negative")
	}

	pointRate := entity.DefaultPointRate
	if input.PointRate != nil {
		pointRate = *input.PointRate
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, domainerrors.ErrCategoryNotFound.WithDetails(input.CategoryID.String())
			}

			return nil, err
		}
	}

	product := &entity.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.InitialStock,
		PointRate:     pointRate,
		CategoryID:    input.CategoryID,
	}

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewProductRepository().Create(ctx, product); err != nil {
			return err
		}

		if input.InitialStock > 0 {
			return factory.NewInventoryRepository().Append(ctx, &entity.InventoryTransaction{
				ProductID: product.ID,
				Direction: entity.InventoryIn,
				Quantity:  input.InitialStock,
				Notes:     "initial stock",
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("productID", product.ID.String()),
		slog.String("name", product.Name),
	)

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, input usecase.UpdateProductInput) (*entity.Product, error) {
	if input.Price < 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("price must not be negative")
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, domainerrors.ErrCategoryNotFound.WithDetails(input.CategoryID.String())
			}

			return nil, err
		}
	}

	product := &entity.Product{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		PointRate:   input.PointRate,
		CategoryID:  input.CategoryID,
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WithDetails(input.ID.String())
		}

		return nil, err
	}

	return s.productRepo.FindByID(ctx, input.ID)
}

func (s *catalogService) ApplyPrice(ctx context.Context, id uuid.UUID, price float64) error {
	if price < 0 {
		return domainerrors.ErrValidation.WrapMessage("price must not be negative")
	}

	if err := s.productRepo.UpdatePrice(ctx, id, price); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WithDetails(id.String())
		}

		return err
	}

	s.logger.InfoContext(ctx, "price applied",
		slog.String("productID", id.String()),
		slog.Float64("price", price),
	)

	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*entity.Category, error) {
	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return nil, domainerrors.ErrCategoryAlreadyExists.WithDetails(input.Name)
		}

		return nil, err
	}

	return category, nil
}

// AddReview posts a rating. The composite unique index on (product, customer)
// is the final arbiter for duplicates under concurrency.
func (s *catalogService) AddReview(ctx context.Context, input usecase.AddReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WithDetails(input.ProductID.String())
		}

		return nil, err
	}
	if _, err := s.customerRepo.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WithDetails(input.CustomerID.String())
		}

		return nil, err
	}

	review := &entity.Review{
		ProductID:  input.ProductID,
		CustomerID: input.CustomerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, domainerrors.ErrDuplicateReview
		}

		return nil, err
	}

	return review, nil
}

func (s *catalogService) ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	return s.reviewRepo.FindByProduct(ctx, productID)
}
