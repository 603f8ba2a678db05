package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCustomerRepository_FindByID_SQL(t *testing.T) {
	t.Run("filters out deleted customers", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		rows := sqlmock.NewRows([]string{"customer_id", "company_name", "phone", "address", "deleted"}).
			AddRow(int64(5), "Acme", "010", "Seoul", false)
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE deleted = \$1 AND customer_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(false, int64(5), 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), customer.ID)
		assert.Equal(t, "Acme", customer.CompanyName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates driver errors", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customers"`).WillReturnError(errors.New("connection refused"))

		_, err := repo.FindByID(context.Background(), 5)
		require.Error(t, err)
		assert.False(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestGormCustomerRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns id and finds by name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCustomerRepository(db)
		c := seedCustomer(t, db, "Acme")

		assert.NotZero(t, c.ID)
		found, err := repo.FindByCompanyName(ctx, "Acme")
		require.NoError(t, err)
		assert.Equal(t, c.ID, found.ID)
	})

	t.Run("missing customer is not found", func(t *testing.T) {
		repo := NewGormCustomerRepository(setupTestDB(t))

		_, err := repo.FindByCompanyName(ctx, "Nobody")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		_, err = repo.FindByID(ctx, 999)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("deleted customers disappear from reads", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCustomerRepository(db)
		c := seedCustomer(t, db, "Acme")
		seedCustomer(t, db, "Beta")

		require.NoError(t, repo.Delete(ctx, c.ID))

		exists, err := repo.ExistsByCompanyName(ctx, "Acme")
		require.NoError(t, err)
		assert.False(t, exists)

		names, err := repo.ListCompanyNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Beta"}, names)

		err = repo.Delete(ctx, c.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("update saves fields", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCustomerRepository(db)
		c := seedCustomer(t, db, "Acme")

		require.NoError(t, c.Update("Acme Corp", "02-123", "Busan"))
		require.NoError(t, repo.Update(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", found.CompanyName)
		assert.Equal(t, "Busan", found.Address)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		db := setupTestDB(t)
		seedCustomer(t, db, "Zeta")
		seedCustomer(t, db, "Alpha")

		all, err := NewGormCustomerRepository(db).FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Alpha", all[0].CompanyName)
	})
}
