// Package testutil provides shared test helpers: in-memory databases, seeded
// fixtures and gin test contexts.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/moon8997/my-erp/internal/infrastructure/logger"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewSQLiteDB opens an in-memory sqlite database with every table migrated.
// The pool is pinned to one connection so the database lives as long as the
// test; code under test must therefore run every statement of a transaction
// through the transaction's context.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), persistence.GormConfig(nil))
	require.NoError(t, err, "open sqlite")

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

// TestContext is a gin context bound to a response recorder
type TestContext struct {
	Context  *gin.Context
	Recorder *httptest.ResponseRecorder
}

// NewTestContext creates a gin context for calling a handler directly.
// Path parameters go into Context.Params.
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return &TestContext{Context: c, Recorder: w}
}

// SetRequestID stores a request id the way the RequestID middleware does
func (tc *TestContext) SetRequestID(id string) {
	tc.Context.Set(logger.RequestIDContextKey, id)
}

// ResponseCode returns the recorded status code
func (tc *TestContext) ResponseCode() int {
	return tc.Recorder.Code
}
