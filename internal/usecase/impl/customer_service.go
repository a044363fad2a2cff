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

type customerService struct {
	logger       *slog.Logger
	txManager    repository.TransactionManager
	customerRepo repository.CustomerRepository
	pointRepo    repository.PointRepository
}

// NewCustomerService creates the customer application service.
func NewCustomerService(
	logger *slog.Logger,
	txManager repository.TransactionManager,
	customerRepo repository.CustomerRepository,
	pointRepo repository.PointRepository,
) usecase.CustomerUsecase {
	return &customerService{
		logger:       logger,
		txManager:    txManager,
		customerRepo: customerRepo,
		pointRepo:    pointRepo,
	}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*usecase.CustomerDetail, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WithDetails(id.String())
		}

		return nil, err
	}

	transactions, err := s.pointRepo.FindByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	return &usecase.CustomerDetail{Customer: customer, Transactions: transactions}, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, input usecase.CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Points:  0,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateCustomer) {
			return nil, domainerrors.ErrCustomerAlreadyExists.WithDetails(input.Email)
		}

		return nil, err
	}

	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, input usecase.UpdateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		ID:      input.ID,
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WithDetails(input.ID.String())
		}

		return nil, err
	}

	return s.customerRepo.FindByID(ctx, input.ID)
}

// GrantPoints credits a manual loyalty grant. Balance and ledger move in one
// transaction, the same discipline checkout follows.
func (s *customerService) GrantPoints(ctx context.Context, input usecase.GrantPointsInput) error {
	if input.Points <= 0 {
		return domainerrors.ErrValidation.WrapMessage("granted points must be positive")
	}

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		customerRepo := factory.NewCustomerRepository()
		pointRepo := factory.NewPointRepository()

		if err := customerRepo.AdjustPoints(ctx, input.CustomerID, input.Points); err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return domainerrors.ErrCustomerNotFound.WithDetails(input.CustomerID.String())
			}

			return err
		}

		notes := input.Notes
		if notes == "" {
			notes = "manual grant"
		}

		return pointRepo.Append(ctx, &entity.PointTransaction{
			CustomerID: input.CustomerID,
			Points:     input.Points,
			Type:       entity.PointEarned,
			Notes:      notes,
		})
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "points granted",
		slog.String("customerID", input.CustomerID.String()),
		slog.Int("points", input.Points),
	)

	return nil
}

// VerifyBalance checks the stored point balance against the ledger sum.
func (s *customerService) VerifyBalance(ctx context.Context, id uuid.UUID) (bool, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return false, domainerrors.ErrCustomerNotFound.WithDetails(id.String())
		}

		return false, err
	}

	balance, err := s.pointRepo.Balance(ctx, id)
	if err != nil {
		return false, err
	}

	if customer.Points != balance {
		s.logger.WarnContext(ctx, "point ledger mismatch",
			slog.String("customerID", id.String()),
			slog.Int("stored", customer.Points),
			slog.Int("ledger", balance),
		)
	}

	return customer.Points == balance, nil
}
