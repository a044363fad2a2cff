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

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates an inventory ledger repository backed by the
// given GORM handle, which may be a transaction.
func NewInventoryRepository(db *gorm.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (repo *inventoryRepository) Append(ctx context.Context, transaction *entity.InventoryTransaction) error {
	transactionModel := &model.InventoryTransactionModel{
		ProductID: transaction.ProductID,
		Direction: transaction.Direction.String(),
		Quantity:  transaction.Quantity,
		Notes:     transaction.Notes,
	}

	if err := repo.db.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return errors.Wrap(err, "failed to append inventory transaction")
	}

	transaction.ID = transactionModel.ID
	transaction.CreatedAt = transactionModel.CreatedAt

	return nil
}

func (repo *inventoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.InventoryTransaction, error) {
	var transactionModels []*model.InventoryTransactionModel
	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&transactionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list inventory transactions")
	}

	transactions := make([]*entity.InventoryTransaction, 0, len(transactionModels))
	for _, transactionModel := range transactionModels {
		transactions = append(transactions, &entity.InventoryTransaction{
			ID:        transactionModel.ID,
			ProductID: transactionModel.ProductID,
			Direction: entity.InventoryDirection(transactionModel.Direction),
			Quantity:  transactionModel.Quantity,
			Notes:     transactionModel.Notes,
			CreatedAt: transactionModel.CreatedAt,
		})
	}

	return transactions, nil
}

func (repo *inventoryRepository) NetQuantity(ctx context.Context, productID uuid.UUID) (int, error) {
	var net int
	err := repo.db.WithContext(ctx).
		Model(&model.InventoryTransactionModel{}).
		Select("COALESCE(SUM(CASE WHEN direction = ? THEN quantity ELSE -quantity END), 0)", entity.InventoryIn.String()).
		Where("product_id = ?", productID).
		Scan(&net).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to sum inventory transactions")
	}

	return net, nil
}
