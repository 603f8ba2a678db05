package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/moon8997/my-erp/internal/domain/catalog"
	"github.com/moon8997/my-erp/internal/domain/partner"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/domain/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedCustomer inserts an active customer
func SeedCustomer(t *testing.T, db *gorm.DB, companyName string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(companyName, "010-1234-5678", "Seoul")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCustomerRepository(db).Create(context.Background(), c))
	return c
}

// SeedProduct inserts an active product with the given sale price
func SeedProduct(t *testing.T, db *gorm.DB, productName string, salePrice int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		ProductName: productName,
		SalePrice:   salePrice,
		CostPrice:   salePrice / 2,
	})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductRepository(db).Create(context.Background(), p))
	return p
}

// SeedItem inserts a raw line item, bypassing the reconciliation rules
func SeedItem(t *testing.T, db *gorm.DB, saleID, customerID, productID, quantity, price int64, saleAt time.Time) *trade.SaleItem {
	t.Helper()
	item := trade.NewSaleItem(saleID, customerID, productID, quantity, price, saleAt)
	require.NoError(t, persistence.NewGormSaleItemRepository(db).Insert(context.Background(), item))
	return item
}

// BusinessDay parses a YYYY-MM-DD value into midnight in the business time zone
func BusinessDay(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := shared.ParseBusinessDate(value)
	require.NoError(t, err)
	return d
}

// SaleRows loads every row of an order, deleted ones included, lowest id first
func SaleRows(t *testing.T, db *gorm.DB, saleID int64) []models.SaleItemModel {
	t.Helper()
	var rows []models.SaleItemModel
	require.NoError(t, db.Where("sale_id = ?", saleID).Order("id").Find(&rows).Error)
	return rows
}

// ActiveRows loads the active rows of an order, lowest id first
func ActiveRows(t *testing.T, db *gorm.DB, saleID int64) []models.SaleItemModel {
	t.Helper()
	var rows []models.SaleItemModel
	require.NoError(t, db.Where("sale_id = ? AND deleted = 0", saleID).Order("id").Find(&rows).Error)
	return rows
}

// CountActivePerPair returns the highest number of active rows held by any
// (sale_id, product_id) pair across the whole table
func CountActivePerPair(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var counts []int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM sales WHERE deleted = 0 GROUP BY sale_id, product_id",
	).Scan(&counts).Error)
	var highest int64
	for _, c := range counts {
		if c > highest {
			highest = c
		}
	}
	return highest
}
