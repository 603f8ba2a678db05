package persistence

import (
	"context"
	"errors"

	"github.com/moon8997/my-erp/internal/domain/partner"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) active(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).Model(&models.CustomerModel{}).Where("deleted = ?", false)
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.active(ctx).Where("customer_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFound("customer %d not found", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompanyName finds a customer by exact company name
func (r *GormCustomerRepository) FindByCompanyName(ctx context.Context, companyName string) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.active(ctx).Where("company_name = ?", companyName).Order("customer_id").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFound("customer %q not found", companyName)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists customers ordered by company name
func (r *GormCustomerRepository) FindAll(ctx context.Context) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	if err := r.active(ctx).Order("company_name").Order("customer_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	customers := make([]partner.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

// ListCompanyNames lists all company names ordered by name
func (r *GormCustomerRepository) ListCompanyNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.active(ctx).Order("company_name").Pluck("company_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// ExistsByCompanyName checks whether a company name is already taken
func (r *GormCustomerRepository) ExistsByCompanyName(ctx context.Context, companyName string) (bool, error) {
	var count int64
	if err := r.active(ctx).Where("company_name = ?", companyName).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a customer and sets its ID
func (r *GormCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflict("customer %q already exists", customer.CompanyName)
		}
		return err
	}
	customer.ID = model.CustomerID
	return nil
}

// Update saves the editable fields of a customer
func (r *GormCustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	result := r.active(ctx).Where("customer_id = ?", customer.ID).Updates(map[string]any{
		"company_name": customer.CompanyName,
		"phone":        customer.Phone,
		"address":      customer.Address,
		"updated_at":   customer.UpdatedAt,
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewConflict("customer %q already exists", customer.CompanyName)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("customer %d not found", customer.ID)
	}
	return nil
}

// Delete soft-deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.active(ctx).Where("customer_id = ?", id).Updates(map[string]any{
		"deleted":    true,
		"updated_at": shared.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("customer %d not found", id)
	}
	return nil
}
