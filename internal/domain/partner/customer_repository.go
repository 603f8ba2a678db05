package partner

import "context"

// CustomerRepository defines the interface for customer persistence.
// Finders only see customers that are not soft-deleted.
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindByCompanyName finds a customer by exact company name
	FindByCompanyName(ctx context.Context, companyName string) (*Customer, error)

	// FindAll lists customers ordered by company name
	FindAll(ctx context.Context) ([]Customer, error)

	// ListCompanyNames lists all company names ordered by name
	ListCompanyNames(ctx context.Context) ([]string, error)

	// ExistsByCompanyName checks whether a company name is already taken
	ExistsByCompanyName(ctx context.Context, companyName string) (bool, error)

	// Create inserts a customer and sets its ID
	Create(ctx context.Context, customer *Customer) error

	// Update saves the editable fields of a customer
	Update(ctx context.Context, customer *Customer) error

	// Delete soft-deletes a customer
	Delete(ctx context.Context, id int64) error
}
