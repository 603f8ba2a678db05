package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/moon8997/my-erp/internal/domain/catalog"
	"github.com/moon8997/my-erp/internal/domain/partner"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/domain/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with every table migrated.
// A single connection keeps the in-memory database alive for the whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(nil))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.CustomerModel{},
		&models.ProductModel{},
		&models.SaleItemModel{},
		&models.BillModel{},
		&models.BillSaleModel{},
		&models.AccountModel{},
		&models.MenuModel{},
	))
	return db
}

// newMockDB returns a gorm handle on top of sqlmock speaking the postgres dialect
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, GormConfig(nil))
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(name, "010-0000-0000", "Seoul")
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{ProductName: name, SalePrice: price, CostPrice: price / 2})
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Create(context.Background(), p))
	return p
}

func seedItem(t *testing.T, db *gorm.DB, saleID, customerID, productID, qty, price int64, saleAt time.Time) *trade.SaleItem {
	t.Helper()
	item := trade.NewSaleItem(saleID, customerID, productID, qty, price, saleAt)
	require.NoError(t, NewGormSaleItemRepository(db).Insert(context.Background(), item))
	return item
}

func businessDay(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := shared.ParseBusinessDate(value)
	require.NoError(t, err)
	return d
}
