package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/moon8997/my-erp/internal/application/billing"
	catalogapp "github.com/moon8997/my-erp/internal/application/catalog"
	identityapp "github.com/moon8997/my-erp/internal/application/identity"
	"github.com/moon8997/my-erp/internal/application/lookup"
	partnerapp "github.com/moon8997/my-erp/internal/application/partner"
	tradeapp "github.com/moon8997/my-erp/internal/application/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/cache"
	"github.com/moon8997/my-erp/internal/infrastructure/config"
	"github.com/moon8997/my-erp/internal/infrastructure/logger"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence"
	"github.com/moon8997/my-erp/internal/infrastructure/telemetry"
	"github.com/moon8997/my-erp/internal/interfaces/http/handler"
	"github.com/moon8997/my-erp/internal/interfaces/http/middleware"
	"github.com/moon8997/my-erp/internal/interfaces/http/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			ERP Backend API
//	@version		1.0
//	@description	Sales ledger, billing and catalog API for a wholesale shop
//	@BasePath		/api
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting ERP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.GormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = telemetry.NewMetrics(reg)
	}

	// Repositories
	txManager := persistence.NewTxManager(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	saleItemRepo := persistence.NewGormSaleItemRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	menuRepo := persistence.NewGormMenuRepository(db.DB)

	orderIDs, err := persistence.NewSnowflakeOrderIDGenerator(cfg.Snowflake.NodeID)
	if err != nil {
		log.Fatal("Failed to create order id generator", zap.Error(err))
	}

	// Lookup cache, invalidated across instances through Redis when configured
	invalidator := cache.NewLookupInvalidator(cfg.Redis, log)
	defer func() { _ = invalidator.Close() }()

	lookupService := lookup.NewService(customerRepo, productRepo, invalidator, log)
	lookupService.SetMetrics(metrics)
	go func() {
		if err := invalidator.Subscribe(ctx, lookupService.ApplyRemote); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Lookup invalidation subscription ended", zap.Error(err))
		}
	}()

	// Application services
	orderService := tradeapp.NewOrderService(saleItemRepo, customerRepo, productRepo, txManager, orderIDs)
	orderService.SetMetrics(metrics)
	billService := billingapp.NewBillService(billRepo, saleItemRepo, orderService, txManager)
	billService.SetMetrics(metrics)
	customerService := partnerapp.NewCustomerService(customerRepo, txManager, lookupService)
	productService := catalogapp.NewProductService(productRepo, txManager, lookupService)
	accountService := identityapp.NewAccountService(accountRepo, txManager, log)
	menuService := identityapp.NewMenuService(menuRepo)

	middleware.SetupValidator()
	engine, stopLimiters, err := router.New(router.EngineConfig{
		HTTP:    cfg.HTTP,
		Swagger: cfg.Swagger,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracer.IsEnabled(),
		},
		Logger:      log,
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
		Health:      db,
	}, router.Handlers{
		Sales:     handler.NewSalesHandler(orderService),
		Bills:     handler.NewBillHandler(billService),
		Customers: handler.NewCustomerHandler(customerService),
		Products:  handler.NewProductHandler(productService),
		Lookup:    handler.NewLookupHandler(lookupService),
		Account:   handler.NewAccountHandler(accountService, menuService),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}
	defer stopLimiters()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
