package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	_ "github.com/moon8997/my-erp/docs"
	"github.com/moon8997/my-erp/internal/infrastructure/config"
	"github.com/moon8997/my-erp/internal/infrastructure/logger"
	"github.com/moon8997/my-erp/internal/infrastructure/telemetry"
	"github.com/moon8997/my-erp/internal/interfaces/http/handler"
	"github.com/moon8997/my-erp/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig carries what the HTTP engine needs besides the handlers
type EngineConfig struct {
	HTTP        config.HTTPConfig
	Swagger     config.SwaggerConfig
	Tracing     middleware.TracingConfig
	Logger      *zap.Logger
	Metrics     *telemetry.Metrics // nil disables /metrics and request metrics
	MetricsPath string
	Health      handler.Pinger
	APIVersion  string
}

// New builds the gin engine with the middleware chain, the API routes,
// /health, the metrics endpoint and, when enabled, /swagger. The returned
// stop func releases the rate limiters and must be called on shutdown.
func New(cfg EngineConfig, h Handlers) (*gin.Engine, func(), error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, nil, fmt.Errorf("trusted proxies: %w", err)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	// request id first so tracing and logging can pick it up
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.Tracing)...)
	engine.Use(
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
	)
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	engine.Use(middleware.Metrics(cfg.Metrics))

	var limiters []*middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiters = append(limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
	}
	var loginGuard gin.HandlerFunc
	if cfg.HTTP.LoginRateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.LoginRateLimitRequests, cfg.HTTP.LoginRateLimitWindow)
		limiters = append(limiters, limiter)
		loginGuard = middleware.LoginRateLimit(limiter)
	}

	if cfg.Health != nil {
		engine.GET("/health", handler.HealthHandler(cfg.Health))
	}
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerAllowList(cfg.Swagger.AllowedIPs),
			ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var opts []RouterOption
	if cfg.APIVersion != "" {
		opts = append(opts, WithAPIVersion(cfg.APIVersion))
	}
	NewRouter(engine, opts...).Register(APIGroups(h, loginGuard)...).Setup()

	stop := func() {
		for _, l := range limiters {
			l.Stop()
		}
	}
	return engine, stop, nil
}
