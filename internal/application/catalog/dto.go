package catalog

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/catalog"
)

// ProductRequest is the body of product create and update calls
type ProductRequest struct {
	ProductName     string `json:"productName" binding:"required,max=200"`
	SalePrice       int64  `json:"salePrice" binding:"gte=0"`
	CostPrice       int64  `json:"costPrice" binding:"gte=0"`
	ImageURL        string `json:"imageUrl" binding:"max=500"`
	Supplier        string `json:"supplier" binding:"max=100"`
	DisplayLocation string `json:"displayLocation" binding:"max=100"`
}

func (r ProductRequest) details() catalog.ProductDetails {
	return catalog.ProductDetails{
		ProductName:     r.ProductName,
		SalePrice:       r.SalePrice,
		CostPrice:       r.CostPrice,
		ImageURL:        r.ImageURL,
		Supplier:        r.Supplier,
		DisplayLocation: r.DisplayLocation,
	}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ProductID       int64     `json:"productId"`
	ProductName     string    `json:"productName"`
	SalePrice       int64     `json:"salePrice"`
	CostPrice       int64     `json:"costPrice"`
	ImageURL        string    `json:"imageUrl"`
	Supplier        string    `json:"supplier"`
	DisplayLocation string    `json:"displayLocation"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DuplicateCheckResponse is the answer of a product name availability check
type DuplicateCheckResponse struct {
	IsDuplicate bool   `json:"isDuplicate"`
	Message     string `json:"message"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ProductID:       p.ID,
		ProductName:     p.ProductName,
		SalePrice:       p.SalePrice,
		CostPrice:       p.CostPrice,
		ImageURL:        p.ImageURL,
		Supplier:        p.Supplier,
		DisplayLocation: p.DisplayLocation,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
