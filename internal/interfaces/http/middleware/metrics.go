package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moon8997/my-erp/internal/infrastructure/telemetry"
)

// Metrics records request counts and latency per route pattern.
// A nil Metrics disables the middleware.
func Metrics(m *telemetry.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
