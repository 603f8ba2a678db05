package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moon8997/my-erp/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider overrides the global provider when set
	TracerProvider trace.TracerProvider
}

// Tracing returns otelgin followed by a handler that runs inside the server
// span, tagging it with the request id. Span names follow
// "METHOD /route/:param". Responses of 400 and above mark the span failed.
func Tracing(cfg TracingConfig) gin.HandlersChain {
	if !cfg.Enabled {
		return nil
	}
	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	return gin.HandlersChain{otelgin.Middleware(cfg.ServiceName, opts...), enrichSpan}
}

func enrichSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	if requestID := c.GetString(logger.RequestIDContextKey); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}

	c.Next()

	if status := c.Writer.Status(); status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
