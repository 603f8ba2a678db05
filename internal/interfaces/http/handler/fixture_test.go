package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	billingapp "github.com/moon8997/my-erp/internal/application/billing"
	catalogapp "github.com/moon8997/my-erp/internal/application/catalog"
	identityapp "github.com/moon8997/my-erp/internal/application/identity"
	"github.com/moon8997/my-erp/internal/application/lookup"
	partnerapp "github.com/moon8997/my-erp/internal/application/partner"
	tradeapp "github.com/moon8997/my-erp/internal/application/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence"
	"github.com/moon8997/my-erp/internal/interfaces/http/middleware"
	"github.com/moon8997/my-erp/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testAPI is a gin engine over the real services and an in-memory database
type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	txManager := persistence.NewTxManager(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	items := persistence.NewGormSaleItemRepository(db)

	ids, err := persistence.NewSnowflakeOrderIDGenerator(3)
	require.NoError(t, err)

	lookups := lookup.NewService(customerRepo, productRepo, nil, zap.NewNop())
	orders := tradeapp.NewOrderService(items, customerRepo, productRepo, txManager, ids)
	bills := billingapp.NewBillService(persistence.NewGormBillRepository(db), items, orders, txManager)

	sales := NewSalesHandler(orders)
	billH := NewBillHandler(bills)
	customers := NewCustomerHandler(partnerapp.NewCustomerService(customerRepo, txManager, lookups))
	products := NewProductHandler(catalogapp.NewProductService(productRepo, txManager, lookups))
	lookupH := NewLookupHandler(lookups)
	account := NewAccountHandler(
		identityapp.NewAccountService(persistence.NewGormAccountRepository(db), txManager, zap.NewNop()),
		identityapp.NewMenuService(persistence.NewGormMenuRepository(db)),
	)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/sales", sales.Create)
	api.GET("/sales", sales.List)
	api.GET("/sales/byId/:saleId", sales.GetItems)
	api.PUT("/sales/bill-status/reset/:saleId", sales.ResetBillStatus)
	api.PUT("/sales/:saleId", sales.Update)
	api.DELETE("/sales/:saleId/products/:productId", sales.DeleteItem)

	api.POST("/bills", billH.Create)
	api.GET("/bills", billH.List)
	api.GET("/bills/by-customer/:customerId", billH.ListByCustomer)
	api.GET("/bills/with-sales", billH.ListWithSales)
	api.GET("/bills/:billId/sales-ids", billH.SalesIDs)
	api.PUT("/bills/:billId/receive", billH.Receive)
	api.PUT("/bills/:billId/settle", billH.Settle)
	api.PUT("/bills/:billId/rollback", billH.Rollback)
	api.DELETE("/bills/by-sale/:saleId", billH.DeleteBySale)

	api.POST("/customers/add", customers.Create)
	api.GET("/customers", customers.List)
	api.GET("/customers/check-duplicate", customers.CheckDuplicate)
	api.GET("/customers/top-products", sales.TopProducts)
	api.GET("/customers/:id", customers.GetByID)
	api.PUT("/customers/:id", customers.Update)
	api.DELETE("/customers/:id", customers.Delete)

	api.POST("/products/add", products.Create)
	api.GET("/products", products.List)
	api.GET("/products/list", products.ListSummaries)
	api.GET("/products/check-duplicate", products.CheckDuplicate)
	api.GET("/products/:id", products.GetByID)
	api.PUT("/products/:id", products.Update)
	api.DELETE("/products/:id", products.Delete)

	api.GET("/lookup/bootstrap", lookupH.Bootstrap)
	api.POST("/lookup/refresh", lookupH.Refresh)

	api.POST("/account/register", account.Register)
	api.POST("/account/login", account.Login)
	api.GET("/menus", account.Menus)
	api.GET("/menus/:menuCode", account.Menu)

	return &testAPI{engine: r, db: db}
}

// do sends a request and decodes the JSON envelope
func (a *testAPI) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	return testutil.PerformJSON(t, a.engine, method, path, body)
}

func ginParam(key, value string) gin.Param {
	return gin.Param{Key: key, Value: value}
}
