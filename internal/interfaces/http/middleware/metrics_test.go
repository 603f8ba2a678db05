package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/moon8997/my-erp/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	m := telemetry.NewMetrics(prometheus.NewRegistry())

	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/sales/byId/:saleId", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/sales/byId/1", "/api/sales/byId/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `erp_http_requests_total{method="GET",route="/api/sales/byId/:saleId",status="200"} 2`)
	assert.Contains(t, body, `erp_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.NotContains(t, body, `route="/api/sales/byId/1"`)
}

func TestMetrics_NilPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
