package catalog

import "context"

// ProductRepository defines the interface for product persistence.
// Finders only see products that are not soft-deleted.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindByName finds a product by exact name
	FindByName(ctx context.Context, productName string) (*Product, error)

	// FindAll lists products ordered by name
	FindAll(ctx context.Context) ([]Product, error)

	// ListSummaries lists id, name and sale price of every product
	ListSummaries(ctx context.Context) ([]ProductSummary, error)

	// ExistsByName checks whether a product name is already taken
	ExistsByName(ctx context.Context, productName string) (bool, error)

	// Create inserts a product and sets its ID
	Create(ctx context.Context, product *Product) error

	// Update saves the editable fields of a product
	Update(ctx context.Context, product *Product) error

	// Delete soft-deletes a product
	Delete(ctx context.Context, id int64) error
}
