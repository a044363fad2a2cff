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

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository backed by the given GORM handle,
// which may be a transaction.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (repo *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerModel model.CustomerModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customerModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	return toCustomerEntity(&customerModel), nil
}

func (repo *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customerModel model.CustomerModel
	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&customerModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by email")
	}

	return toCustomerEntity(&customerModel), nil
}

func (repo *customerRepository) FindByEmailForUpdate(ctx context.Context, email string) (*entity.Customer, error) {
	var customerModel model.CustomerModel
	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ?", email).
		First(&customerModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}
		if isSerializationFailure(err) {
			return nil, domainerrors.ErrContention.WrapMessage("failed to lock customer row")
		}

		return nil, errors.Wrap(err, "failed to lock customer by email")
	}

	return toCustomerEntity(&customerModel), nil
}

func (repo *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	var customerModels []*model.CustomerModel
	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&customerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	customers := make([]*entity.Customer, 0, len(customerModels))
	for _, customerModel := range customerModels {
		customers = append(customers, toCustomerEntity(customerModel))
	}

	return customers, nil
}

func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerModel := toCustomerModel(customer)
	if err := repo.db.WithContext(ctx).Create(customerModel).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCustomer
		}

		return errors.Wrap(err, "failed to create customer")
	}

	customer.ID = customerModel.ID
	customer.CreatedAt = customerModel.CreatedAt
	customer.UpdatedAt = customerModel.UpdatedAt

	return nil
}

func (repo *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	updates := map[string]any{
		"name":    customer.Name,
		"phone":   customer.Phone,
		"address": customer.Address,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("id = ?", customer.ID).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

// AdjustPoints applies a guarded relative update, mirroring AdjustStock on
// products. A redemption racing another redemption can never overdraw the balance.
func (repo *customerRepository) AdjustPoints(ctx context.Context, id uuid.UUID, delta int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("id = ? AND points + ? >= 0", id, delta).
		Update("points", gorm.Expr("points + ?", delta))
	if result.Error != nil {
		if isSerializationFailure(result.Error) {
			return domainerrors.ErrContention.WrapMessage("failed to adjust customer points")
		}

		return errors.Wrap(result.Error, "failed to adjust customer points")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.CustomerModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to verify customer existence")
		}
		if count == 0 {
			return repository.ErrCustomerNotFound
		}

		return repository.ErrPointsConflict
	}

	return nil
}

func toCustomerEntity(customerModel *model.CustomerModel) *entity.Customer {
	return &entity.Customer{
		ID:        customerModel.ID,
		Name:      customerModel.Name,
		Email:     customerModel.Email,
		Phone:     customerModel.Phone,
		Address:   customerModel.Address,
		Points:    customerModel.Points,
		CreatedAt: customerModel.CreatedAt,
		UpdatedAt: customerModel.UpdatedAt,
	}
}

func toCustomerModel(customer *entity.Customer) *model.CustomerModel {
	return &model.CustomerModel{
		ID:      customer.ID,
		Name:    customer.Name,
		Email:   customer.Email,
		Phone:   customer.Phone,
		Address: customer.Address,
		Points:  customer.Points,
	}
}
