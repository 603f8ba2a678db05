package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/domain/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSaleItemRepository_OpenOrders(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSaleItemRepository(db)

	acme := seedCustomer(t, db, "Acme")
	widget := seedProduct(t, db, "Widget", 100)
	day := businessDay(t, "2024-01-10")
	other := businessDay(t, "2024-01-11")

	seedItem(t, db, 300, acme.ID, widget.ID, 1, 100, day)
	seedItem(t, db, 200, acme.ID, widget.ID, 1, 100, day)
	seedItem(t, db, 400, acme.ID, widget.ID, 1, 100, other)

	t.Run("finds lowest open order id for customer and day", func(t *testing.T) {
		id, found, err := repo.FindOpenOrderID(ctx, acme.ID, day)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(200), id)
	})

	t.Run("reports no open order on an empty day", func(t *testing.T) {
		_, found, err := repo.FindOpenOrderID(ctx, acme.ID, businessDay(t, "2024-02-01"))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("lists sibling orders excluding the given one", func(t *testing.T) {
		ids, err := repo.ListOpenOrderIDs(ctx, acme.ID, day, 200)
		require.NoError(t, err)
		assert.Equal(t, []int64{300}, ids)
	})

	t.Run("finds order key", func(t *testing.T) {
		key, err := repo.FindOrderKey(ctx, 400)
		require.NoError(t, err)
		assert.Equal(t, acme.ID, key.CustomerID)
		assert.True(t, key.SaleAt.Equal(other))
	})

	t.Run("order key of unknown order is not found", func(t *testing.T) {
		_, err := repo.FindOrderKey(ctx, 999)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestGormSaleItemRepository_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("additive update touches only the active row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSaleItemRepository(db)
		acme := seedCustomer(t, db, "Acme")
		widget := seedProduct(t, db, "Widget", 100)
		day := businessDay(t, "2024-01-10")
		seedItem(t, db, 1, acme.ID, widget.ID, 2, 200, day)

		affected, err := repo.AddToActiveItem(ctx, 1, widget.ID, 3, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		items, err := repo.ListActivePair(ctx, 1, widget.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(5), items[0].Quantity)
		assert.Equal(t, int64(500), items[0].UnitPrice)

		affected, err = repo.AddToActiveItem(ctx, 2, widget.ID, 1, 100)
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("hard deletes spare the kept row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSaleItemRepository(db)
		acme := seedCustomer(t, db, "Acme")
		widget := seedProduct(t, db, "Widget", 100)
		day := businessDay(t, "2024-01-10")
		keep := seedItem(t, db, 1, acme.ID, widget.ID, 1, 100, day)
		seedItem(t, db, 1, acme.ID, widget.ID, 2, 200, day)
		stale := seedItem(t, db, 1, acme.ID, widget.ID, 4, 400, day)
		require.NoError(t, db.Model(&models.SaleItemModel{}).Where("id = ?", stale.ID).Update("deleted", 1).Error)

		removed, err := repo.HardDeleteSoftDeleted(ctx, 1, widget.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		removed, err = repo.HardDeleteActiveExcept(ctx, 1, widget.ID, keep.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		var count int64
		require.NoError(t, db.Table("sales").Where("sale_id = ?", 1).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("bill status is set for active rows of the given orders", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSaleItemRepository(db)
		acme := seedCustomer(t, db, "Acme")
		widget := seedProduct(t, db, "Widget", 100)
		gadget := seedProduct(t, db, "Gadget", 50)
		day := businessDay(t, "2024-01-10")
		seedItem(t, db, 1, acme.ID, widget.ID, 1, 100, day)
		seedItem(t, db, 1, acme.ID, gadget.ID, 1, 50, day)
		seedItem(t, db, 2, acme.ID, widget.ID, 1, 100, day)

		affected, err := repo.SetBillStatus(ctx, []int64{1}, trade.BillStatusBound)
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)

		affected, err = repo.SetBillStatus(ctx, nil, trade.BillStatusBound)
		require.NoError(t, err)
		assert.Zero(t, affected)

		items, err := repo.ListActiveBySaleID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, trade.BillStatusUnbound, items[0].BillStatus)
	})

	t.Run("customer and sale date move with the order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSaleItemRepository(db)
		acme := seedCustomer(t, db, "Acme")
		beta := seedCustomer(t, db, "Beta")
		widget := seedProduct(t, db, "Widget", 100)
		gadget := seedProduct(t, db, "Gadget", 40)
		day := businessDay(t, "2024-01-10")
		seedItem(t, db, 1, acme.ID, widget.ID, 1, 100, day)
		seedItem(t, db, 1, acme.ID, gadget.ID, 1, 40, day)

		moved := businessDay(t, "2024-01-12")
		affected, err := repo.UpdateOrderKey(ctx, 1, trade.OrderKey{CustomerID: beta.ID, SaleAt: moved})
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)

		id, found, err := repo.FindOpenOrderID(ctx, beta.ID, moved)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(1), id)

		_, found, err = repo.FindOpenOrderID(ctx, acme.ID, day)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestGormSaleItemRepository_Queries(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSaleItemRepository(db)

	acme := seedCustomer(t, db, "Acme")
	widget := seedProduct(t, db, "Widget", 100)
	gadget := seedProduct(t, db, "Gadget", 50)
	bolt := seedProduct(t, db, "Bolt", 5)
	jan10 := businessDay(t, "2024-01-10")
	jan11 := businessDay(t, "2024-01-11")

	seedItem(t, db, 1, acme.ID, widget.ID, 2, 200, jan10)
	seedItem(t, db, 1, acme.ID, gadget.ID, 7, 350, jan10)
	seedItem(t, db, 2, acme.ID, bolt.ID, 3, 15, jan11)
	gone := seedItem(t, db, 2, acme.ID, widget.ID, 50, 5000, jan11)
	_, err := repo.SoftDeletePair(ctx, gone.SaleID, widget.ID)
	require.NoError(t, err)

	t.Run("lists sales in range newest first with joined names", func(t *testing.T) {
		period, err := shared.NewDateRange("2024-01-10", "2024-01-11", jan10)
		require.NoError(t, err)

		views, err := repo.ListSales(ctx, period)
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, "Bolt", views[0].ProductName)
		assert.Equal(t, "Acme", views[0].CustomerName)
		assert.Equal(t, "Gadget", views[1].ProductName)
		assert.Equal(t, "Widget", views[2].ProductName)
		assert.Equal(t, int64(100), views[2].ProductPrice)
	})

	t.Run("range end is inclusive of the whole day", func(t *testing.T) {
		period, err := shared.NewDateRange("2024-01-10", "2024-01-10", jan10)
		require.NoError(t, err)

		views, err := repo.ListSales(ctx, period)
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("lists one order's items", func(t *testing.T) {
		views, err := repo.ListItemViews(ctx, 1)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, int64(1), views[0].SaleID)
	})

	t.Run("top products ranks by summed quantity of active items", func(t *testing.T) {
		names, err := repo.TopProductNames(ctx, acme.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"Gadget", "Bolt", "Widget"}, names)

		names, err = repo.TopProductNames(ctx, acme.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"Gadget"}, names)
	})
}
