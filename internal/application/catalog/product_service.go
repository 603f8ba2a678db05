package catalog

import (
	"context"

	"github.com/moon8997/my-erp/internal/domain/catalog"
	"github.com/moon8997/my-erp/internal/domain/shared"
)

// ProductCacheInvalidator is the part of the lookup cache product writes touch
type ProductCacheInvalidator interface {
	InvalidateProducts(ctx context.Context)
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	txManager   shared.TransactionManager
	cache       ProductCacheInvalidator
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, txManager shared.TransactionManager, cache ProductCacheInvalidator) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		txManager:   txManager,
		cache:       cache,
	}
}

// Create adds a product and returns its id
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (int64, error) {
	product, err := catalog.NewProduct(req.details())
	if err != nil {
		return 0, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureNameAvailable(ctx, product.ProductName); err != nil {
			return err
		}
		return s.productRepo.Create(ctx, product)
	})
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateProducts(ctx)
	return product.ID, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns all active products ordered by name
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListSummaries returns id, name and sale price of every active product
func (s *ProductService) ListSummaries(ctx context.Context) ([]catalog.ProductSummary, error) {
	return s.productRepo.ListSummaries(ctx)
}

// Update edits a product. The duplicate check runs only when the name changes.
func (s *ProductService) Update(ctx context.Context, id int64, req ProductRequest) (*ProductResponse, error) {
	var product *catalog.Product
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if product.Renamed(req.ProductName) {
			if err := s.ensureNameAvailable(ctx, shared.CleanName(req.ProductName)); err != nil {
				return err
			}
		}

		if err := product.Update(req.details()); err != nil {
			return err
		}
		return s.productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProducts(ctx)
	response := ToProductResponse(product)
	return &response, nil
}

// Delete soft-deletes a product
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateProducts(ctx)
	return nil
}

// CheckDuplicate reports whether a product name is already taken
func (s *ProductService) CheckDuplicate(ctx context.Context, productName string) (*DuplicateCheckResponse, error) {
	name := shared.CleanName(productName)
	if name == "" {
		return nil, shared.NewInvalidArgument("productName is required")
	}

	exists, err := s.productRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return &DuplicateCheckResponse{IsDuplicate: true, Message: "product name is already registered"}, nil
	}
	return &DuplicateCheckResponse{IsDuplicate: false, Message: "product name is available"}, nil
}

func (s *ProductService) ensureNameAvailable(ctx context.Context, name string) error {
	exists, err := s.productRepo.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflict("product name %q already exists", name)
	}
	return nil
}
