package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a review repository backed by the given GORM handle.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewModel := &model.ReviewModel{
		ProductID:  review.ProductID,
		CustomerID: review.CustomerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
	}

	if err := repo.db.WithContext(ctx).Create(reviewModel).Error; err != nil {
		// The composite unique index backs the one-review-per-customer rule.
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}

		return errors.Wrap(err, "failed to create review")
	}

	review.ID = reviewModel.ID
	review.CreatedAt = reviewModel.CreatedAt

	return nil
}

func (repo *reviewRepository) FindByProductAndCustomer(ctx context.Context, productID, customerID uuid.UUID) (*entity.Review, error) {
	var reviewModel model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Where("product_id = ? AND customer_id = ?", productID, customerID).
		First(&reviewModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return toReviewEntity(&reviewModel), nil
}

func (repo *reviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewModel := range reviewModels {
		reviews = append(reviews, toReviewEntity(reviewModel))
	}

	return reviews, nil
}

func toReviewEntity(reviewModel *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:         reviewModel.ID,
		ProductID:  reviewModel.ProductID,
		CustomerID: reviewModel.CustomerID,
		Rating:     reviewModel.Rating,
		Comment:    reviewModel.Comment,
		CreatedAt:  reviewModel.CreatedAt,
	}
}
