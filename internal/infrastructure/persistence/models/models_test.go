package models

import (
	"testing"
	"time"

	"github.com/moon8997/my-erp/internal/domain/billing"
	"github.com/moon8997/my-erp/internal/domain/trade"
	"github.com/stretchr/testify/assert"
)

func TestSaleItemModel_DeletedFlag(t *testing.T) {
	t.Run("soft-deleted item stores one", func(t *testing.T) {
		item := trade.NewSaleItem(10, 1, 2, 3, 300, time.Now())
		item.Deleted = true

		m := SaleItemModelFromDomain(item)
		assert.Equal(t, 1, m.Deleted)
		assert.True(t, m.ToDomain().Deleted)
	})

	t.Run("bound status survives conversion", func(t *testing.T) {
		m := &SaleItemModel{SaleID: 10, BillStatus: 1}
		assert.Equal(t, trade.BillStatusBound, m.ToDomain().BillStatus)
	})
}

func TestBillModel_ToDomain(t *testing.T) {
	m := &BillModel{BillID: 4, CustomerID: 1, TotalCost: 500, RemainCost: 0, Status: 2}
	bill := m.ToDomain()

	assert.Equal(t, billing.BillStatusSettled, bill.Status)
	assert.NotNil(t, bill.SalesIDs)
	assert.Empty(t, bill.SalesIDs)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "customers", CustomerModel{}.TableName())
	assert.Equal(t, "products", ProductModel{}.TableName())
	assert.Equal(t, "sales", SaleItemModel{}.TableName())
	assert.Equal(t, "bills", BillModel{}.TableName())
	assert.Equal(t, "bills_sales", BillSaleModel{}.TableName())
	assert.Equal(t, "accounts", AccountModel{}.TableName())
	assert.Equal(t, "menus", MenuModel{}.TableName())
}
