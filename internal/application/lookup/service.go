// Package lookup caches the customer and product lists used by entry-form
// autocompletes.
package lookup

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/moon8997/my-erp/internal/domain/catalog"
	"github.com/moon8997/my-erp/internal/domain/partner"
	"github.com/moon8997/my-erp/internal/infrastructure/logger"
	"github.com/moon8997/my-erp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Invalidation scopes, shared with the pub/sub payload
const (
	ScopeCustomers = "customers"
	ScopeProducts  = "products"
	ScopeAll       = "all"
)

// Notifier fans a local invalidation out to other instances
type Notifier interface {
	Publish(ctx context.Context, scope string) error
}

// slot is a single-value cache. Reads are lock-free; a nil value means "load
// on next read". Every clear bumps the generation, and a load only installs
// its result if no clear happened since it started.
type slot[T any] struct {
	mu  sync.Mutex
	gen uint64
	val atomic.Pointer[T]
}

func (s *slot[T]) get() *T {
	return s.val.Load()
}

func (s *slot[T]) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *slot[T]) install(gen uint64, v *T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.val.Store(v)
	return true
}

func (s *slot[T]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.val.Store(nil)
}

// Service holds two single-slot caches. A reader sees either the previous
// list or the reloaded one, never a mix.
type Service struct {
	customers partner.CustomerRepository
	products  catalog.ProductRepository
	notifier  Notifier
	metrics   *telemetry.Metrics
	logger    *zap.Logger

	customerNames slot[[]string]
	productList   slot[[]catalog.ProductSummary]
}

// NewService creates a lookup cache. notifier may be nil for a local-only cache.
func NewService(customers partner.CustomerRepository, products catalog.ProductRepository, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		customers: customers,
		products:  products,
		notifier:  notifier,
		logger:    logger.Named("lookup"),
	}
}

// SetMetrics attaches Prometheus counters
func (s *Service) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

// CustomerNames returns the active company names, loading them on a miss
func (s *Service) CustomerNames(ctx context.Context) ([]string, error) {
	if names := s.customerNames.get(); names != nil {
		return *names, nil
	}

	gen := s.customerNames.generation()
	names, err := s.customers.ListCompanyNames(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLookupLoad(ScopeCustomers)
	// a list loaded across an invalidation is returned but not cached
	s.customerNames.install(gen, &names)
	return names, nil
}

// Products returns id, name and sale price of active products, loading on a miss
func (s *Service) Products(ctx context.Context) ([]catalog.ProductSummary, error) {
	if list := s.productList.get(); list != nil {
		return *list, nil
	}

	gen := s.productList.generation()
	list, err := s.products.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLookupLoad(ScopeProducts)
	s.productList.install(gen, &list)
	return list, nil
}

// Bootstrap returns both lists for the entry forms
func (s *Service) Bootstrap(ctx context.Context) (*BootstrapResponse, error) {
	customers, err := s.CustomerNames(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return &BootstrapResponse{Customers: customers, Products: products}, nil
}

// InvalidateCustomers clears the customer slot here and on other instances
func (s *Service) InvalidateCustomers(ctx context.Context) {
	s.clear(ScopeCustomers)
	s.publish(ctx, ScopeCustomers)
}

// InvalidateProducts clears the product slot here and on other instances
func (s *Service) InvalidateProducts(ctx context.Context) {
	s.clear(ScopeProducts)
	s.publish(ctx, ScopeProducts)
}

// InvalidateAll clears both slots here and on other instances
func (s *Service) InvalidateAll(ctx context.Context) {
	s.clear(ScopeAll)
	s.publish(ctx, ScopeAll)
}

// ApplyRemote clears the slots named by an invalidation received from
// another instance. It does not publish again.
func (s *Service) ApplyRemote(scope string) {
	switch scope {
	case ScopeCustomers, ScopeProducts, ScopeAll:
		s.clear(scope)
		s.metrics.RecordLookupInvalidation(scope, "remote")
	default:
		s.logger.Warn("Ignoring unknown invalidation scope", zap.String("scope", scope))
	}
}

func (s *Service) clear(scope string) {
	if scope == ScopeCustomers || scope == ScopeAll {
		s.customerNames.clear()
	}
	if scope == ScopeProducts || scope == ScopeAll {
		s.productList.clear()
	}
}

func (s *Service) publish(ctx context.Context, scope string) {
	s.metrics.RecordLookupInvalidation(scope, "local")
	if s.notifier == nil {
		return
	}
	// the local slot is already clear; peers stay stale until their next invalidation
	if err := s.notifier.Publish(ctx, scope); err != nil {
		logger.L(ctx).Warn("Failed to publish lookup invalidation",
			zap.String("scope", scope),
			zap.Error(err),
		)
	}
}
