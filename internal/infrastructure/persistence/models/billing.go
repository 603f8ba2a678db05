package models

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/billing"
)

// BillModel is the persistence model for the Bill domain entity.
type BillModel struct {
	BillID     int64     `gorm:"column:bill_id;primaryKey;autoIncrement"`
	CustomerID int64     `gorm:"not null;index"`
	TotalCost  int64     `gorm:"not null;default:0"`
	RemainCost int64     `gorm:"not null;default:0"`
	Status     int       `gorm:"not null;default:0;index"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill. SalesIDs are
// loaded separately from the mapping table.
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		ID:         m.BillID,
		CustomerID: m.CustomerID,
		TotalCost:  m.TotalCost,
		RemainCost: m.RemainCost,
		Status:     billing.BillStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		SalesIDs:   []int64{},
	}
}

// FromDomain populates the persistence model from a domain Bill.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.BillID = b.ID
	m.CustomerID = b.CustomerID
	m.TotalCost = b.TotalCost
	m.RemainCost = b.RemainCost
	m.Status = int(b.Status)
	m.CreatedAt = b.CreatedAt
}

// BillSaleModel maps one order to the bill that covers it.
type BillSaleModel struct {
	BillID  int64 `gorm:"column:bill_id;primaryKey;autoIncrement:false"`
	SalesID int64 `gorm:"column:sales_id;primaryKey;autoIncrement:false;index"`
}

// TableName returns the table name for GORM
func (BillSaleModel) TableName() string {
	return "bills_sales"
}

// BillWithSaleRow is the scan target of the unpaid bills listing.
type BillWithSaleRow struct {
	BillID     int64
	CustomerID int64
	TotalCost  int64
	RemainCost int64
	Status     int
	CreatedAt  time.Time
	SalesID    int64
}

// ToDomain converts the row to a domain BillWithSale.
func (r *BillWithSaleRow) ToDomain() billing.BillWithSale {
	return billing.BillWithSale{
		BillID:     r.BillID,
		CustomerID: r.CustomerID,
		TotalCost:  r.TotalCost,
		RemainCost: r.RemainCost,
		Status:     billing.BillStatus(r.Status),
		CreatedAt:  r.CreatedAt,
		SalesID:    r.SalesID,
	}
}

// BillListingRow is the scan target of bills joined with the customer name.
type BillListingRow struct {
	BillModel
	CompanyName string
}

// ToDomain converts the row to a domain BillListing.
func (r *BillListingRow) ToDomain() billing.BillListing {
	return billing.BillListing{
		Bill:        *r.BillModel.ToDomain(),
		CompanyName: r.CompanyName,
	}
}
