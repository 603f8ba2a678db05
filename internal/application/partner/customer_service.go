package partner

import (
	"context"

	"github.com/moon8997/my-erp/internal/domain/partner"
	"github.com/moon8997/my-erp/internal/domain/shared"
)

// CustomerCacheInvalidator is the part of the lookup cache customer writes touch
type CustomerCacheInvalidator interface {
	InvalidateCustomers(ctx context.Context)
}

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	txManager    shared.TransactionManager
	cache        CustomerCacheInvalidator
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, txManager shared.TransactionManager, cache CustomerCacheInvalidator) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		txManager:    txManager,
		cache:        cache,
	}
}

// Create adds a customer and returns its id
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (int64, error) {
	customer, err := partner.NewCustomer(req.CompanyName, req.Phone, req.Address)
	if err != nil {
		return 0, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureNameAvailable(ctx, customer.CompanyName); err != nil {
			return err
		}
		return s.customerRepo.Create(ctx, customer)
	})
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateCustomers(ctx)
	return customer.ID, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List returns all active customers ordered by company name
func (s *CustomerService) List(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// Update edits a customer. The duplicate check runs only when the name changes.
func (s *CustomerService) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*CustomerResponse, error) {
	var customer *partner.Customer
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		customer, err = s.customerRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if customer.Renamed(req.CompanyName) {
			if err := s.ensureNameAvailable(ctx, shared.CleanName(req.CompanyName)); err != nil {
				return err
			}
		}

		if err := customer.Update(req.CompanyName, req.Phone, req.Address); err != nil {
			return err
		}
		return s.customerRepo.Update(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateCustomers(ctx)
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete soft-deletes a customer
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateCustomers(ctx)
	return nil
}

// CheckDuplicate reports whether a company name is already taken.
// A blank name is never a duplicate.
func (s *CustomerService) CheckDuplicate(ctx context.Context, companyName string) (*DuplicateCheckResponse, error) {
	name := shared.CleanName(companyName)
	if name == "" {
		return &DuplicateCheckResponse{IsDuplicate: false}, nil
	}

	exists, err := s.customerRepo.ExistsByCompanyName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return &DuplicateCheckResponse{IsDuplicate: true, Message: "company name is already registered"}, nil
	}
	return &DuplicateCheckResponse{IsDuplicate: false, Message: "company name is available"}, nil
}

func (s *CustomerService) ensureNameAvailable(ctx context.Context, name string) error {
	exists, err := s.customerRepo.ExistsByCompanyName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflict("company name %q already exists", name)
	}
	return nil
}
