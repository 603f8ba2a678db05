package models

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/domain/trade"
)

// SaleItemModel is the persistence model for one sales line item.
// Deleted is stored as 0/1 to match the existing sales table.
type SaleItemModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	SaleID     int64     `gorm:"not null;index:idx_sales_sale_product,priority:1"`
	CustomerID int64     `gorm:"not null;index:idx_sales_customer_sale_at,priority:1"`
	ProductID  int64     `gorm:"not null;index:idx_sales_sale_product,priority:2"`
	Quantity   int64     `gorm:"not null;default:0"`
	UnitPrice  int64     `gorm:"not null;default:0"`
	SaleAt     time.Time `gorm:"not null;index:idx_sales_customer_sale_at,priority:2"`
	Deleted    int       `gorm:"not null;default:0"`
	BillStatus int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain SaleItem.
func (m *SaleItemModel) ToDomain() *trade.SaleItem {
	return &trade.SaleItem{
		ID:         m.ID,
		SaleID:     m.SaleID,
		CustomerID: m.CustomerID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		SaleAt:     m.SaleAt,
		Deleted:    m.Deleted != 0,
		BillStatus: trade.BillStatus(m.BillStatus),
		Timestamps: shared.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// FromDomain populates the persistence model from a domain SaleItem.
func (m *SaleItemModel) FromDomain(item *trade.SaleItem) {
	m.ID = item.ID
	m.SaleID = item.SaleID
	m.CustomerID = item.CustomerID
	m.ProductID = item.ProductID
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.SaleAt = item.SaleAt
	m.Deleted = 0
	if item.Deleted {
		m.Deleted = 1
	}
	m.BillStatus = int(item.BillStatus)
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt
}

// SaleItemModelFromDomain creates a new persistence model from a domain SaleItem.
func SaleItemModelFromDomain(item *trade.SaleItem) *SaleItemModel {
	m := &SaleItemModel{}
	m.FromDomain(item)
	return m
}

// SaleItemViewRow is the scan target of line items joined with customer and product.
type SaleItemViewRow struct {
	SaleItemModel
	CompanyName  string
	ProductName  string
	ProductPrice int64
}

// ToDomain converts the row to a domain SaleItemView.
func (r *SaleItemViewRow) ToDomain() trade.SaleItemView {
	return trade.SaleItemView{
		SaleItem:     *r.SaleItemModel.ToDomain(),
		CustomerName: r.CompanyName,
		ProductName:  r.ProductName,
		ProductPrice: r.ProductPrice,
	}
}
