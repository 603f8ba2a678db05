package catalog

import (
	"unicode/utf8"

	"github.com/moon8997/my-erp/internal/domain/shared"
)

const maxProductNameLength = 200

// Product is an item the company sells. Prices are whole won.
type Product struct {
	ID              int64
	ProductName     string
	SalePrice       int64
	CostPrice       int64
	ImageURL        string
	Supplier        string
	DisplayLocation string
	Deleted         bool
	shared.Timestamps
}

// ProductDetails carries the editable fields of a product
type ProductDetails struct {
	ProductName     string
	SalePrice       int64
	CostPrice       int64
	ImageURL        string
	Supplier        string
	DisplayLocation string
}

// ProductSummary is the lightweight view used by autocomplete lookups
type ProductSummary struct {
	ID          int64  `json:"productId"`
	ProductName string `json:"productName"`
	SalePrice   int64  `json:"salePrice"`
}

// NewProduct creates a new product from the given details
func NewProduct(details ProductDetails) (*Product, error) {
	p := &Product{Timestamps: shared.NewTimestamps()}
	if err := p.apply(details); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields of the product
func (p *Product) Update(details ProductDetails) error {
	if err := p.apply(details); err != nil {
		return err
	}
	p.Touch()
	return nil
}

// Renamed reports whether productName differs from the stored name once cleaned
func (p *Product) Renamed(productName string) bool {
	return p.ProductName != shared.CleanName(productName)
}

// Summary returns the lookup view of the product
func (p *Product) Summary() ProductSummary {
	return ProductSummary{ID: p.ID, ProductName: p.ProductName, SalePrice: p.SalePrice}
}

func (p *Product) apply(details ProductDetails) error {
	name := shared.CleanName(details.ProductName)
	if name == "" {
		return shared.NewInvalidArgument("productName is required")
	}
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return shared.NewInvalidArgument("productName cannot exceed %d characters", maxProductNameLength)
	}
	if details.SalePrice < 0 {
		return shared.NewInvalidArgument("salePrice cannot be negative")
	}
	if details.CostPrice < 0 {
		return shared.NewInvalidArgument("costPrice cannot be negative")
	}

	p.ProductName = name
	p.SalePrice = details.SalePrice
	p.CostPrice = details.CostPrice
	p.ImageURL = details.ImageURL
	p.Supplier = details.Supplier
	p.DisplayLocation = details.DisplayLocation
	return nil
}
