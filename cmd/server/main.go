package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/migration"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logCfg := &logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	}
	// Bootstrap logger, replaced below once the OTLP log bridge is known
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Background context for the lifetime of the process
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	loggerProvider, err := telemetry.NewLoggerProvider(appCtx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       serviceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		core, err := logger.NewCore(logCfg)
		if err != nil {
			log.Fatal("Failed to build log core", zap.Error(err))
		}
		level, _ := logger.ParseLevel(cfg.Log.Level)
		log = logger.Build(zapcore.NewTee(core, telemetry.NewZapOTELCore(loggerProvider, serviceName, level)), cfg.App.Name)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	tracerProvider, err := telemetry.NewTracerProvider(appCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(appCtx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       serviceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	// Database with GORM logging through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowQueryThresh),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get database handle", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		m, err := migration.New(sqlDB, db.Driver, log)
		if err != nil {
			log.Fatal("Failed to initialize migrations", zap.Error(err))
		}
		if err := m.Up(); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	dbSystem := "postgresql"
	if db.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Database.SlowQueryThresh,
		DBSystem:        dbSystem,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	meter := meterProvider.Meter(serviceName)
	if meterProvider.IsEnabled() {
		reg, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB)
		if err != nil {
			log.Fatal("Failed to register pool metrics", zap.Error(err))
		}
		defer func() { _ = reg.Unregister() }()
	}

	// Event bus: audit log for every catalog event, counters when metrics are on
	serializer := event.NewEventSerializer()
	event.RegisterCatalogEvents(serializer)

	bus := event.NewInMemoryEventBus(log)
	audit := event.NewAuditLogHandler(serializer, log)
	bus.Subscribe(audit, audit.EventTypes()...)
	if meterProvider.IsEnabled() {
		catalogMetrics, err := telemetry.NewCatalogMetrics(meter)
		if err != nil {
			log.Fatal("Failed to create catalog metrics", zap.Error(err))
		}
		bus.Subscribe(catalogMetrics, catalogMetrics.EventTypes()...)
	}
	if err := bus.Start(appCtx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Repositories and services
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	productTagRepo := persistence.NewGormProductTagRepository(db.DB)

	categoryService := catalogapp.NewCategoryService(categoryRepo, bus)
	tagService := catalogapp.NewTagService(tagRepo, bus)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, bus)
	productTagService := catalogapp.NewProductTagService(productTagRepo, productRepo, tagRepo, bus)

	// Admin authentication
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(appCtx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisBlacklist.Close() }()
		blacklist = redisBlacklist
		log.Info("Token revocation backed by Redis")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis disabled; token revocations are kept in memory")
	}

	engine, err := router.New(appCtx, router.Dependencies{
		Logger:        log,
		HTTP:          cfg.HTTP,
		ServiceName:   serviceName,
		MeterProvider: meterProvider,
		System:        handler.NewSystemHandler(db, cfg.App.Name),
		About:         handler.NewAboutHandler(cfg.App.Name, categoryService),
		Products:      handler.NewProductHandler(productService, productTagService),
		Categories:    handler.NewCategoryHandler(categoryService, productService),
		Auth:          handler.NewAuthHandler(auth.NewAuthenticator(cfg.Admin.Username, cfg.Admin.PasswordHash), jwtService, blacklist),
		Admin: router.NewCatalogAdmin(cfg.App.Name+" administration", router.CatalogServices{
			Categories:  categoryService,
			Tags:        tagService,
			Products:    productService,
			ProductTags: productTagService,
		}),
		JWT:       jwtService,
		Blacklist: blacklist,
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stopApp()
	if err := bus.Stop(ctx); err != nil {
		log.Warn("Event bus stop failed", zap.Error(err))
	}

	// Flush telemetry last so shutdown itself is exported
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := loggerProvider.Shutdown(ctx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}
}
