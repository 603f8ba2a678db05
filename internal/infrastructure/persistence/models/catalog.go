package models

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/catalog"
	"github.com/moon8997/my-erp/internal/domain/shared"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	ProductID       int64     `gorm:"column:product_id;primaryKey;autoIncrement"`
	ProductName     string    `gorm:"type:varchar(200);not null;index"`
	SalePrice       int64     `gorm:"not null;default:0"`
	CostPrice       int64     `gorm:"not null;default:0"`
	ImageURL        string    `gorm:"column:image_url;type:varchar(500)"`
	Supplier        string    `gorm:"type:varchar(100)"`
	DisplayLocation string    `gorm:"type:varchar(100)"`
	Deleted         bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:              m.ProductID,
		ProductName:     m.ProductName,
		SalePrice:       m.SalePrice,
		CostPrice:       m.CostPrice,
		ImageURL:        m.ImageURL,
		Supplier:        m.Supplier,
		DisplayLocation: m.DisplayLocation,
		Deleted:         m.Deleted,
		Timestamps: shared.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ProductID = p.ID
	m.ProductName = p.ProductName
	m.SalePrice = p.SalePrice
	m.CostPrice = p.CostPrice
	m.ImageURL = p.ImageURL
	m.Supplier = p.Supplier
	m.DisplayLocation = p.DisplayLocation
	m.Deleted = p.Deleted
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
