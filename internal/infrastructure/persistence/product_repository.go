package persistence

import (
	"context"
	"errors"

	"github.com/moon8997/my-erp/internal/domain/catalog"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) active(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).Model(&models.ProductModel{}).Where("deleted = ?", false)
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.active(ctx).Where("product_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFound("product %d not found", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a product by exact name
func (r *GormProductRepository) FindByName(ctx context.Context, productName string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.active(ctx).Where("product_name = ?", productName).Order("product_id").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFound("product %q not found", productName)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists products ordered by name
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.active(ctx).Order("product_name").Order("product_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// ListSummaries lists id, name and sale price of every product
func (r *GormProductRepository) ListSummaries(ctx context.Context) ([]catalog.ProductSummary, error) {
	var rows []models.ProductModel
	if err := r.active(ctx).
		Select("product_id", "product_name", "sale_price").
		Order("product_name").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]catalog.ProductSummary, len(rows))
	for i := range rows {
		summaries[i] = catalog.ProductSummary{
			ID:          rows[i].ProductID,
			ProductName: rows[i].ProductName,
			SalePrice:   rows[i].SalePrice,
		}
	}
	return summaries, nil
}

// ExistsByName checks whether a product name is already taken
func (r *GormProductRepository) ExistsByName(ctx context.Context, productName string) (bool, error) {
	var count int64
	if err := r.active(ctx).Where("product_name = ?", productName).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a product and sets its ID
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflict("product %q already exists", product.ProductName)
		}
		return err
	}
	product.ID = model.ProductID
	return nil
}

// Update saves the editable fields of a product
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	result := r.active(ctx).Where("product_id = ?", product.ID).Updates(map[string]any{
		"product_name":     product.ProductName,
		"sale_price":       product.SalePrice,
		"cost_price":       product.CostPrice,
		"image_url":        product.ImageURL,
		"supplier":         product.Supplier,
		"display_location": product.DisplayLocation,
		"updated_at":       product.UpdatedAt,
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewConflict("product %q already exists", product.ProductName)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("product %d not found", product.ID)
	}
	return nil
}

// Delete soft-deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.active(ctx).Where("product_id = ?", id).Updates(map[string]any{
		"deleted":    true,
		"updated_at": shared.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("product %d not found", id)
	}
	return nil
}
