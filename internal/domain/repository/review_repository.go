package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for review persistence.
var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when a (product, customer) pair already
	// has a review.
	ErrDuplicateReview = errors.New("review already exists")
)

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// FindByProductAndCustomer retrieves the review one customer left on one product.
	FindByProductAndCustomer(ctx context.Context, productID, customerID uuid.UUID) (*entity.Review, error)

	// FindByProduct retrieves all reviews for a product, newest first.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
}
