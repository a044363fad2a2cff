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

type pointRepository struct {
	db *gorm.DB
}

// NewPointRepository creates a loyalty point ledger repository backed by the
// given GORM handle, which may be a transaction.
func NewPointRepository(db *gorm.DB) repository.PointRepository {
	return &pointRepository{db: db}
}

func (repo *pointRepository) Append(ctx context.Context, transaction *entity.PointTransaction) error {
	transactionModel := &model.PointTransactionModel{
		CustomerID: transaction.CustomerID,
		OrderID:    transaction.OrderID,
		Points:     transaction.Points,
		Type:       transaction.Type.String(),
		Notes:      transaction.Notes,
	}

	if err := repo.db.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return errors.Wrap(err, "failed to append point transaction")
	}

	transaction.ID = transactionModel.ID
	transaction.CreatedAt = transactionModel.CreatedAt

	return nil
}

func (repo *pointRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.PointTransaction, error) {
	var transactionModels []*model.PointTransactionModel
	if err := repo.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&transactionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list point transactions")
	}

	transactions := make([]*entity.PointTransaction, 0, len(transactionModels))
	for _, transactionModel := range transactionModels {
		transactions = append(transactions, &entity.PointTransaction{
			ID:         transactionModel.ID,
			CustomerID: transactionModel.CustomerID,
			OrderID:    transactionModel.OrderID,
			Points:     transactionModel.Points,
			Type:       entity.PointTransactionType(transactionModel.Type),
			Notes:      transactionModel.Notes,
			CreatedAt:  transactionModel.CreatedAt,
		})
	}

	return transactions, nil
}

func (repo *pointRepository) Balance(ctx context.Context, customerID uuid.UUID) (int, error) {
	var balance int
	err := repo.db.WithContext(ctx).
		Model(&model.PointTransactionModel{}).
		Select("COALESCE(SUM(points), 0)").
		Where("customer_id = ?", customerID).
		Scan(&balance).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to sum point transactions")
	}

	return balance, nil
}
