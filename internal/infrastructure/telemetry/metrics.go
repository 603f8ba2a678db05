package telemetry

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "erp"

// Metrics exposes Prometheus counters and histograms for the HTTP surface and
// the engines. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer            prometheus.Gatherer
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	operations          *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
	lookupLoads         *prometheus.CounterVec
	lookupInvalidations *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.NewRegistry()
// in tests so runs do not collide on the default registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Engine operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Engine operation latency including the transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		lookupLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_cache_loads_total",
			Help:      "Lookup cache slot loads from the database.",
		}, []string{"slot"}),
		lookupInvalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_cache_invalidations_total",
			Help:      "Lookup cache invalidations by scope and source.",
		}, []string{"scope", "source"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.operations,
		m.operationDuration,
		m.lookupLoads,
		m.lookupInvalidations,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one served request. route is the gin route
// template, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordOperation counts an engine operation by outcome.
func (m *Metrics) RecordOperation(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, Outcome(err)).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordLookupLoad counts a cache slot being filled from the database.
func (m *Metrics) RecordLookupLoad(slot string) {
	if m == nil {
		return
	}
	m.lookupLoads.WithLabelValues(slot).Inc()
}

// RecordLookupInvalidation counts a cleared scope; source is "local" or "remote".
func (m *Metrics) RecordLookupInvalidation(scope, source string) {
	if m == nil {
		return
	}
	m.lookupInvalidations.WithLabelValues(scope, source).Inc()
}

// Outcome maps an error to a low-cardinality label.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return strings.ToLower(domainErr.Code)
	}
	return "error"
}
