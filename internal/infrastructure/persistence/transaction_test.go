package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTxManager_WithinTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		db := setupTestDB(t)
		tm := NewTxManager(db)

		err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
			assert.NotZero(t, seedBillInCtx(t, ctx, db))
			return nil
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.BillModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db := setupTestDB(t)
		tm := NewTxManager(db)
		boom := errors.New("boom")

		err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
			seedBillInCtx(t, ctx, db)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int64
		require.NoError(t, db.Model(&models.BillModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("nested call joins the outer transaction", func(t *testing.T) {
		db := setupTestDB(t)
		tm := NewTxManager(db)
		boom := errors.New("boom")

		err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
			require.NoError(t, tm.WithinTransaction(ctx, func(ctx context.Context) error {
				seedBillInCtx(t, ctx, db)
				return nil
			}))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int64
		require.NoError(t, db.Model(&models.BillModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

// seedBillInCtx writes through the context. With a single pooled connection a
// write that bypassed the open transaction would block.
func seedBillInCtx(t *testing.T, ctx context.Context, db *gorm.DB) int64 {
	t.Helper()
	model := &models.BillModel{CustomerID: 1, TotalCost: 10, RemainCost: 10, CreatedAt: shared.Now()}
	require.NoError(t, dbFromContext(ctx, db).Create(model).Error)
	return model.BillID
}
