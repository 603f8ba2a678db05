package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/moon8997/my-erp/internal/domain/identity"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"github.com/moon8997/my-erp/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestAccountService(t *testing.T) (*AccountService, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return NewAccountService(
		persistence.NewGormAccountRepository(db),
		persistence.NewTxManager(db),
		zap.NewNop(),
	), db
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestAccountService(t)

	require.NoError(t, svc.Register(ctx, RegisterRequest{ID: "clerk", Password: "s3cret", Name: "Clerk"}))

	var stored models.AccountModel
	require.NoError(t, db.First(&stored, "id = ?", "clerk").Error)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.Equal(t, "Clerk", stored.Name)

	err := svc.Register(ctx, RegisterRequest{ID: "clerk", Password: "other", Name: "Other"})
	assert.ErrorIs(t, err, shared.ErrConflict)

	err = svc.Register(ctx, RegisterRequest{ID: "short", Password: "abc"})
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestAccountService_Login(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestAccountService(t)
	require.NoError(t, svc.Register(ctx, RegisterRequest{ID: "clerk", Password: "s3cret", Name: "Clerk"}))
	require.NoError(t, db.Create(&models.AccountModel{
		ID:        "legacy",
		Password:  "plain",
		CreatedAt: shared.Now(),
	}).Error)

	tests := []struct {
		name     string
		req      LoginRequest
		wantUser string
		wantErr  bool
	}{
		{"hashed password", LoginRequest{ID: "clerk", Password: "s3cret"}, "clerk", false},
		{"legacy plain password", LoginRequest{ID: "legacy", Password: "plain"}, "legacy", false},
		{"wrong password", LoginRequest{ID: "clerk", Password: "nope"}, "", true},
		{"unknown id", LoginRequest{ID: "ghost", Password: "s3cret"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(ctx, tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidArgument)
				assert.Equal(t, invalidCredentialsMessage, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, result.UserID)
		})
	}
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func TestAccountService_Login_StoreFailure(t *testing.T) {
	repo := new(MockAccountRepository)
	storeErr := errors.New("connection reset")
	repo.On("FindByID", mock.Anything, "clerk").Return(nil, storeErr)

	svc := NewAccountService(repo, nil, zap.NewNop())
	_, err := svc.Login(context.Background(), LoginRequest{ID: "clerk", Password: "s3cret"})
	assert.ErrorIs(t, err, storeErr)
	repo.AssertExpectations(t)
}
