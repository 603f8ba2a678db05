package models

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/identity"
)

// AccountModel is the persistence model for back-office accounts.
// Password holds a bcrypt hash, or the plain value for rows that predate hashing.
type AccountModel struct {
	ID        string    `gorm:"type:varchar(50);primaryKey"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Name      string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account.
func (m *AccountModel) ToDomain() *identity.Account {
	return &identity.Account{
		ID:           m.ID,
		PasswordHash: m.Password,
		Name:         m.Name,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Account.
func (m *AccountModel) FromDomain(a *identity.Account) {
	m.ID = a.ID
	m.Password = a.PasswordHash
	m.Name = a.Name
	m.CreatedAt = a.CreatedAt
}

// MenuModel is the persistence model for navigation menus.
type MenuModel struct {
	MenuCode     int    `gorm:"column:menu_code;primaryKey;autoIncrement:false"`
	MenuName     string `gorm:"type:varchar(100);not null"`
	DisplayOrder int    `gorm:"not null;default:0"`
	Endpoint     string `gorm:"type:varchar(255)"`
	ParentCode   *int
}

// TableName returns the table name for GORM
func (MenuModel) TableName() string {
	return "menus"
}

// ToDomain converts the persistence model to a domain Menu.
func (m *MenuModel) ToDomain() *identity.Menu {
	return &identity.Menu{
		MenuCode:     m.MenuCode,
		MenuName:     m.MenuName,
		DisplayOrder: m.DisplayOrder,
		Endpoint:     m.Endpoint,
		ParentCode:   m.ParentCode,
	}
}
