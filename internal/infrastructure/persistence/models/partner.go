package models

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/partner"
	"github.com/moon8997/my-erp/internal/domain/shared"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	CustomerID  int64     `gorm:"column:customer_id;primaryKey;autoIncrement"`
	CompanyName string    `gorm:"type:varchar(100);not null;index"`
	Phone       string    `gorm:"type:varchar(50)"`
	Address     string    `gorm:"type:varchar(255)"`
	Deleted     bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		ID:          m.CustomerID,
		CompanyName: m.CompanyName,
		Phone:       m.Phone,
		Address:     m.Address,
		Deleted:     m.Deleted,
		Timestamps: shared.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.CustomerID = c.ID
	m.CompanyName = c.CompanyName
	m.Phone = c.Phone
	m.Address = c.Address
	m.Deleted = c.Deleted
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
