package billing

import (
	"context"
	"testing"

	"github.com/moon8997/my-erp/internal/application/trade"
	domainbilling "github.com/moon8997/my-erp/internal/domain/billing"
	"github.com/moon8997/my-erp/internal/domain/shared"
	domaintrade "github.com/moon8997/my-erp/internal/domain/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence"
	"github.com/moon8997/my-erp/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc        *BillService
	db         *gorm.DB
	customerID int64
	widgetID   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	txManager := persistence.NewTxManager(db)
	items := persistence.NewGormSaleItemRepository(db)

	ids, err := persistence.NewSnowflakeOrderIDGenerator(2)
	require.NoError(t, err)
	orders := trade.NewOrderService(
		items,
		persistence.NewGormCustomerRepository(db),
		persistence.NewGormProductRepository(db),
		txManager,
		ids,
	)

	customer := testutil.SeedCustomer(t, db, "Acme")
	widget := testutil.SeedProduct(t, db, "Widget", 100)
	return &fixture{
		svc:        NewBillService(persistence.NewGormBillRepository(db), items, orders, txManager),
		db:         db,
		customerID: customer.ID,
		widgetID:   widget.ID,
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) bill(t *testing.T, total int64, salesIDs ...int64) int64 {
	t.Helper()
	ids := make([]*int64, len(salesIDs))
	for i := range salesIDs {
		ids[i] = ptr(salesIDs[i])
	}
	created, err := f.svc.CreateBill(context.Background(), CreateBillRequest{
		CustomerID: f.customerID,
		TotalCost:  ptr(total),
		SalesIDs:   ids,
	})
	require.NoError(t, err)
	return created.ID
}

func TestBillService_CreateBills(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults, dedupes and binds orders", func(t *testing.T) {
		f := newFixture(t)
		day := testutil.BusinessDay(t, "2024-01-10")
		testutil.SeedItem(t, f.db, 11, f.customerID, f.widgetID, 1, 100, day)
		testutil.SeedItem(t, f.db, 12, f.customerID, f.widgetID, 2, 200, day)

		inserted, err := f.svc.CreateBills(ctx, []CreateBillRequest{{
			CustomerID: f.customerID,
			TotalCost:  ptr(int64(300)),
			SalesIDs:   []*int64{ptr(int64(11)), nil, ptr(int64(12)), ptr(int64(11))},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)

		bills, err := f.svc.ListByCustomer(ctx, f.customerID)
		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, int64(300), bills[0].RemainCost)
		assert.Equal(t, int(domainbilling.BillStatusUnpaid), bills[0].Status)
		assert.Equal(t, []int64{11, 12}, bills[0].SalesIDs)

		for _, saleID := range []int64{11, 12} {
			for _, row := range testutil.ActiveRows(t, f.db, saleID) {
				assert.Equal(t, int(domaintrade.BillStatusBound), row.BillStatus)
			}
		}
	})

	t.Run("empty batch inserts nothing", func(t *testing.T) {
		f := newFixture(t)
		inserted, err := f.svc.CreateBills(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, inserted)
	})

	t.Run("one bad request rolls back the batch", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateBills(ctx, []CreateBillRequest{
			{CustomerID: f.customerID, TotalCost: ptr(int64(100))},
			{CustomerID: f.customerID, TotalCost: ptr(int64(100)), RemainCost: ptr(int64(500))},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)

		bills, err := f.svc.ListByCustomer(ctx, f.customerID)
		require.NoError(t, err)
		assert.Empty(t, bills)
	})

	t.Run("missing total is invalid", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateBills(ctx, []CreateBillRequest{{CustomerID: f.customerID}})
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})
}

func TestBillService_ApplyReceive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	billID := f.bill(t, 1000)

	t.Run("partial payment", func(t *testing.T) {
		require.NoError(t, f.svc.ApplyReceive(ctx, billID, 400))
		got, err := f.svc.GetBill(ctx, billID)
		require.NoError(t, err)
		assert.Equal(t, int64(600), got.RemainCost)
		assert.Equal(t, int(domainbilling.BillStatusPartiallyReceived), got.Status)
	})

	t.Run("overpayment is rejected and changes nothing", func(t *testing.T) {
		err := f.svc.ApplyReceive(ctx, billID, 601)
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
		got, err := f.svc.GetBill(ctx, billID)
		require.NoError(t, err)
		assert.Equal(t, int64(600), got.RemainCost)
	})

	t.Run("exact remainder settles", func(t *testing.T) {
		require.NoError(t, f.svc.ApplyReceive(ctx, billID, 600))
		got, err := f.svc.GetBill(ctx, billID)
		require.NoError(t, err)
		assert.Zero(t, got.RemainCost)
		assert.Equal(t, int(domainbilling.BillStatusSettled), got.Status)
	})

	t.Run("non-positive amount is invalid", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.ApplyReceive(ctx, billID, 0), shared.ErrInvalidArgument)
	})

	t.Run("unknown bill is not found", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.ApplyReceive(ctx, 9999, 10), shared.ErrNotFound)
	})
}

func TestBillService_SettleAndRollback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	day := testutil.BusinessDay(t, "2024-01-10")
	testutil.SeedItem(t, f.db, 21, f.customerID, f.widgetID, 1, 100, day)
	billID := f.bill(t, 500, 21)

	require.NoError(t, f.svc.ApplyReceive(ctx, billID, 100))
	require.NoError(t, f.svc.SettleBill(ctx, billID))
	got, err := f.svc.GetBill(ctx, billID)
	require.NoError(t, err)
	assert.Zero(t, got.RemainCost)
	assert.Equal(t, int(domainbilling.BillStatusSettled), got.Status)

	require.NoError(t, f.svc.RollbackBill(ctx, billID))
	got, err = f.svc.GetBill(ctx, billID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.RemainCost)
	assert.Equal(t, int(domainbilling.BillStatusUnpaid), got.Status)

	// rollback leaves the order bound
	for _, row := range testutil.ActiveRows(t, f.db, 21) {
		assert.Equal(t, int(domaintrade.BillStatusBound), row.BillStatus)
	}

	assert.ErrorIs(t, f.svc.SettleBill(ctx, 9999), shared.ErrNotFound)
	assert.ErrorIs(t, f.svc.RollbackBill(ctx, 9999), shared.ErrNotFound)
}

func TestBillService_DeleteBillBySaleID(t *testing.T) {
	ctx := context.Background()

	t.Run("unbinds every mapped order and removes the bill", func(t *testing.T) {
		f := newFixture(t)
		day := testutil.BusinessDay(t, "2024-01-10")
		other := testutil.BusinessDay(t, "2024-01-11")
		testutil.SeedItem(t, f.db, 31, f.customerID, f.widgetID, 1, 100, day)
		testutil.SeedItem(t, f.db, 32, f.customerID, f.widgetID, 2, 200, other)
		billID := f.bill(t, 300, 31, 32)

		deleted, err := f.svc.DeleteBillBySaleID(ctx, 32)
		require.NoError(t, err)
		assert.True(t, deleted)

		for _, saleID := range []int64{31, 32} {
			rows := testutil.ActiveRows(t, f.db, saleID)
			require.NotEmpty(t, rows)
			for _, row := range rows {
				assert.Equal(t, int(domaintrade.BillStatusUnbound), row.BillStatus)
			}
		}

		_, err = f.svc.GetBill(ctx, billID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		ids, err := f.svc.ListSalesIDs(ctx, billID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("released order absorbs same-day open orders", func(t *testing.T) {
		f := newFixture(t)
		day := testutil.BusinessDay(t, "2024-01-10")
		testutil.SeedItem(t, f.db, 41, f.customerID, f.widgetID, 1, 100, day)
		f.bill(t, 100, 41)
		testutil.SeedItem(t, f.db, 42, f.customerID, f.widgetID, 4, 400, day)

		deleted, err := f.svc.DeleteBillBySaleID(ctx, 41)
		require.NoError(t, err)
		assert.True(t, deleted)

		active := testutil.ActiveRows(t, f.db, 41)
		require.Len(t, active, 1)
		assert.Equal(t, int64(5), active[0].Quantity)
		assert.Empty(t, testutil.ActiveRows(t, f.db, 42))
	})

	t.Run("order without a bill is a no-op", func(t *testing.T) {
		f := newFixture(t)
		deleted, err := f.svc.DeleteBillBySaleID(ctx, 77)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestBillService_Queries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	testutil.SeedItem(t, f.db, 51, f.customerID, f.widgetID, 1, 100, testutil.BusinessDay(t, "2024-01-10"))
	unpaid := f.bill(t, 100, 51)
	paid := f.bill(t, 200)
	require.NoError(t, f.svc.SettleBill(ctx, paid))

	rows, err := f.svc.ListBillsWithSales(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, unpaid, rows[0].BillID)
	assert.Equal(t, int64(51), rows[0].SalesID)

	today := shared.Now().Format("2006-01-02")
	listings, err := f.svc.ListBills(ctx, today, today)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	for _, l := range listings {
		assert.Equal(t, "Acme", l.CompanyName)
	}

	listings, err = f.svc.ListBills(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, listings, 2)

	_, err = f.svc.ListBills(ctx, "yesterday", "")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}
