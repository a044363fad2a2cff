package impl

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
)

type inventoryService struct {
	logger        *slog.Logger
	txManager     repository.TransactionManager
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService creates the inventory application service.
func NewInventoryService(
	logger *slog.Logger,
	txManager repository.TransactionManager,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
) usecase.InventoryUsecase {
	return &inventoryService{
		logger:        logger,
		txManager:     txManager,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Post applies one stock movement. The stored stock quantity and the ledger
// row move together inside a single transaction, keeping the derived value in
// lockstep with the ledger.
func (s *inventoryService) Post(ctx context.Context, input usecase.PostInventoryInput) (*entity.InventoryTransaction, error) {
	if !input.Direction.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("direction must be in or out")
	}
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("quantity must be positive")
	}

	var posted *entity.InventoryTransaction
	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		productRepo := factory.NewProductRepository()
		inventoryRepo := factory.NewInventoryRepository()

		product, err := productRepo.FindByIDForUpdate(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WithDetails(input.ProductID.String())
			}

			return err
		}

		delta := input.Quantity
		if input.Direction == entity.InventoryOut {
			if input.Quantity > product.StockQuantity {
				return domainerrors.ErrInsufficientStock.WithDetails(fmt.Sprintf(
					"%s: requested %d, available %d", product.Name, input.Quantity, product.StockQuantity))
			}
			delta = -input.Quantity
		}

		if err := productRepo.AdjustStock(ctx, input.ProductID, delta); err != nil {
			if errors.Is(err, repository.ErrStockConflict) {
				return domainerrors.ErrContention.WrapMessage("stock changed during posting")
			}

			return err
		}

		posted = &entity.InventoryTransaction{
			ProductID: input.ProductID,
			Direction: input.Direction,
			Quantity:  input.Quantity,
			Notes:     input.Notes,
		}

		return inventoryRepo.Append(ctx, posted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "inventory posted",
		slog.String("productID", input.ProductID.String()),
		slog.String("direction", input.Direction.String()),
		slog.Int("quantity", input.Quantity),
	)

	return posted, nil
}

func (s *inventoryService) History(ctx context.Context, productID uuid.UUID) ([]*entity.InventoryTransaction, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WithDetails(productID.String())
		}

		return nil, err
	}

	return s.inventoryRepo.FindByProduct(ctx, productID)
}

// Reconcile checks that the stored stock quantity equals the net sum of the
// product's ledger rows.
func (s *inventoryService) Reconcile(ctx context.Context, productID uuid.UUID) (*usecase.ReconcileResult, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WithDetails(productID.String())
		}

		return nil, err
	}

	net, err := s.inventoryRepo.NetQuantity(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := &usecase.ReconcileResult{
		ProductID:      productID,
		StoredQuantity: product.StockQuantity,
		LedgerQuantity: net,
		Consistent:     product.StockQuantity == net,
	}
	if !result.Consistent {
		s.logger.WarnContext(ctx, "stock ledger mismatch",
			slog.String("productID", productID.String()),
			slog.Int("stored", result.StoredQuantity),
			slog.Int("ledger", result.LedgerQuantity),
		)
	}

	return result, nil
}
