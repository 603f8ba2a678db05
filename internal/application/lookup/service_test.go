package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/moon8997/my-erp/internal/domain/catalog"
	"github.com/moon8997/my-erp/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCompanyName(ctx context.Context, companyName string) (*partner.Customer, error) {
	args := m.Called(ctx, companyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]partner.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCompanyNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByCompanyName(ctx context.Context, companyName string) (bool, error) {
	args := m.Called(ctx, companyName)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, productName string) (*catalog.Product, error) {
	args := m.Called(ctx, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListSummaries(ctx context.Context) ([]catalog.ProductSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductSummary), args.Error(1)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, productName string) (bool, error) {
	args := m.Called(ctx, productName)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type recordingNotifier struct {
	mu     sync.Mutex
	scopes []string
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, scope string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scopes = append(n.scopes, scope)
	return n.err
}

func newTestService() (*Service, *MockCustomerRepository, *MockProductRepository, *recordingNotifier) {
	customers := new(MockCustomerRepository)
	products := new(MockProductRepository)
	notifier := &recordingNotifier{}
	return NewService(customers, products, notifier, zap.NewNop()), customers, products, notifier
}

func TestService_CustomerNames(t *testing.T) {
	ctx := context.Background()

	t.Run("loads once and serves from the slot", func(t *testing.T) {
		svc, customers, _, _ := newTestService()
		customers.On("ListCompanyNames", ctx).Return([]string{"Acme", "Globex"}, nil).Once()

		first, err := svc.CustomerNames(ctx)
		require.NoError(t, err)
		second, err := svc.CustomerNames(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"Acme", "Globex"}, first)
		assert.Equal(t, first, second)
		customers.AssertNumberOfCalls(t, "ListCompanyNames", 1)
	})

	t.Run("a failed load leaves the slot empty", func(t *testing.T) {
		svc, customers, _, _ := newTestService()
		customers.On("ListCompanyNames", ctx).Return(nil, errors.New("db down")).Once()
		customers.On("ListCompanyNames", ctx).Return([]string{"Acme"}, nil).Once()

		_, err := svc.CustomerNames(ctx)
		require.Error(t, err)

		names, err := svc.CustomerNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Acme"}, names)
	})
}

func TestService_InvalidationDuringLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("customers loaded across an invalidation are not cached", func(t *testing.T) {
		svc, customers, _, _ := newTestService()
		customers.On("ListCompanyNames", ctx).Return([]string{"Acme"}, nil).Once().
			Run(func(mock.Arguments) { svc.InvalidateCustomers(ctx) })
		customers.On("ListCompanyNames", ctx).Return([]string{"Acme", "Initech"}, nil).Once()

		names, err := svc.CustomerNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Acme"}, names)

		names, err = svc.CustomerNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Acme", "Initech"}, names)
		customers.AssertNumberOfCalls(t, "ListCompanyNames", 2)
	})

	t.Run("products loaded across a remote invalidation are not cached", func(t *testing.T) {
		svc, _, products, _ := newTestService()
		products.On("ListSummaries", ctx).Return([]catalog.ProductSummary{{ID: 1, ProductName: "Widget", SalePrice: 100}}, nil).Once().
			Run(func(mock.Arguments) { svc.ApplyRemote(ScopeAll) })
		products.On("ListSummaries", ctx).Return([]catalog.ProductSummary{{ID: 1, ProductName: "Widget", SalePrice: 120}}, nil).Once()

		_, err := svc.Products(ctx)
		require.NoError(t, err)

		list, err := svc.Products(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(120), list[0].SalePrice)

		// the fresh list stays cached
		_, err = svc.Products(ctx)
		require.NoError(t, err)
		products.AssertNumberOfCalls(t, "ListSummaries", 2)
	})
}

func TestService_Invalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("customer invalidation reloads customers only", func(t *testing.T) {
		svc, customers, products, notifier := newTestService()
		customers.On("ListCompanyNames", ctx).Return([]string{"Acme"}, nil).Once()
		customers.On("ListCompanyNames", ctx).Return([]string{"Acme", "Initech"}, nil).Once()
		products.On("ListSummaries", ctx).Return([]catalog.ProductSummary{{ID: 1, ProductName: "Widget", SalePrice: 100}}, nil).Once()

		_, err := svc.Bootstrap(ctx)
		require.NoError(t, err)

		svc.InvalidateCustomers(ctx)

		boot, err := svc.Bootstrap(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Acme", "Initech"}, boot.Customers)
		assert.Len(t, boot.Products, 1)
		products.AssertNumberOfCalls(t, "ListSummaries", 1)
		assert.Equal(t, []string{ScopeCustomers}, notifier.scopes)
	})

	t.Run("invalidate all clears both slots and publishes once", func(t *testing.T) {
		svc, customers, products, notifier := newTestService()
		customers.On("ListCompanyNames", ctx).Return([]string{"Acme"}, nil).Twice()
		products.On("ListSummaries", ctx).Return([]catalog.ProductSummary{}, nil).Twice()

		_, err := svc.Bootstrap(ctx)
		require.NoError(t, err)
		svc.InvalidateAll(ctx)
		_, err = svc.Bootstrap(ctx)
		require.NoError(t, err)

		customers.AssertNumberOfCalls(t, "ListCompanyNames", 2)
		products.AssertNumberOfCalls(t, "ListSummaries", 2)
		assert.Equal(t, []string{ScopeAll}, notifier.scopes)
	})

	t.Run("publish failure still clears locally", func(t *testing.T) {
		svc, _, products, notifier := newTestService()
		notifier.err = errors.New("redis gone")
		products.On("ListSummaries", ctx).Return([]catalog.ProductSummary{}, nil).Twice()

		_, err := svc.Products(ctx)
		require.NoError(t, err)
		svc.InvalidateProducts(ctx)
		_, err = svc.Products(ctx)
		require.NoError(t, err)

		products.AssertNumberOfCalls(t, "ListSummaries", 2)
	})

	t.Run("nil notifier is local only", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc := NewService(customers, new(MockProductRepository), nil, zap.NewNop())
		assert.NotPanics(t, func() { svc.InvalidateAll(ctx) })
	})
}

func TestService_ApplyRemote(t *testing.T) {
	ctx := context.Background()
	svc, customers, products, notifier := newTestService()
	customers.On("ListCompanyNames", ctx).Return([]string{"Acme"}, nil).Twice()
	products.On("ListSummaries", ctx).Return([]catalog.ProductSummary{}, nil).Once()

	_, err := svc.Bootstrap(ctx)
	require.NoError(t, err)

	svc.ApplyRemote(ScopeCustomers)
	svc.ApplyRemote("bogus")

	_, err = svc.Bootstrap(ctx)
	require.NoError(t, err)

	customers.AssertNumberOfCalls(t, "ListCompanyNames", 2)
	products.AssertNumberOfCalls(t, "ListSummaries", 1)
	assert.Empty(t, notifier.scopes, "remote invalidations must not be re-published")
}

func TestService_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	svc, customers, _, _ := newTestService()
	customers.On("ListCompanyNames", ctx).Return([]string{"Acme"}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				svc.InvalidateCustomers(ctx)
				return
			}
			names, err := svc.CustomerNames(ctx)
			assert.NoError(t, err)
			assert.Equal(t, []string{"Acme"}, names)
		}(i)
	}
	wg.Wait()
}
