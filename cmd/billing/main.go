package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/richxcame/booking-platform/internal/billing"
	"github.com/richxcame/booking-platform/internal/partnerships"
	"github.com/richxcame/booking-platform/internal/places"
	"github.com/richxcame/booking-platform/internal/pricing"
	"github.com/richxcame/booking-platform/internal/settings"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/config"
	"github.com/richxcame/booking-platform/pkg/database"
	"github.com/richxcame/booking-platform/pkg/errors"
	"github.com/richxcame/booking-platform/pkg/eventbus"
	"github.com/richxcame/booking-platform/pkg/health"
	"github.com/richxcame/booking-platform/pkg/logger"
	"github.com/richxcame/booking-platform/pkg/middleware"
	redisclient "github.com/richxcame/booking-platform/pkg/redis"
	"github.com/richxcame/booking-platform/pkg/resilience"
	"github.com/richxcame/booking-platform/pkg/tracing"
	"github.com/richxcame/booking-platform/pkg/validation"
	"go.uber.org/zap"
)

const (
	serviceName = "billing-service"
	version     = "1.0.0"
)

func main() {
	if os.Getenv("PORT") == "" {
		os.Setenv("PORT", "8090")
	}

	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment, serviceName); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting billing service",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	// Initialize Sentry for error tracking
	sentryConfig := errors.DefaultSentryConfig(serviceName, cfg.Server.Environment)
	sentryConfig.Release = version
	if err := errors.InitSentry(sentryConfig); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else {
		defer errors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized successfully")
	}

	tp, err := tracing.InitTracer(tracing.FromConfig(cfg.Tracing, serviceName, version, cfg.Server.Environment), logger.Get())
	if err != nil {
		logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
	} else if tp != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Failed to shutdown tracer", zap.Error(err))
			}
		}()
	}

	if err := validation.RegisterGinValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	// Initialize database
	db, err := database.NewPostgresPool(&cfg.Database, cfg.Timeout.DatabaseQueryTimeout())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to database")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.URL()); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	deepChecker := health.NewDeepChecker(health.DeepCheckerConfig{Version: version, CacheTTL: 10 * time.Second})
	deepChecker.AddDependency("database", health.PostgresChecker(db), true)

	// Redis backs idempotent replays of fee and payment writes
	var idempotent []gin.HandlerFunc
	redisClient, redisErr := redisclient.NewRedisClient(&cfg.Redis)
	if redisErr != nil {
		logger.Warn("Failed to initialize Redis - idempotency keys disabled", zap.Error(redisErr))
	} else {
		defer redisClient.Close()
		idempotent = append(idempotent, middleware.Idempotency(redisClient))
		deepChecker.AddDependency("redis", health.RedisChecker(redisClient), false)
		logger.Info("Redis connected for idempotency keys")
	}

	gazetteer, err := places.NewGazetteer()
	if err != nil {
		logger.Fatal("Failed to load gazetteer", zap.Error(err))
	}

	var readBreaker *resilience.CircuitBreaker
	if cfg.Resilience.CircuitBreaker.Enabled {
		readBreaker = settings.NewReadBreaker(resilience.SettingsFromConfig("platform-configs", cfg.Resilience.CircuitBreaker))
		deepChecker.AddCircuitBreaker("platform-configs", readBreaker)
	}

	settingsService := settings.NewService(settings.NewRepository(db), readBreaker)
	pricingService := pricing.NewService(settingsService, gazetteer)
	billingService := billing.NewService(billing.NewRepository(db), settingsService)
	partnershipService := partnerships.NewService(partnerships.NewRepository(db))

	if cfg.NATS.Enabled && cfg.NATS.URL != "" {
		bus, err := eventbus.New(eventbus.Config{
			URL:        cfg.NATS.URL,
			Name:       serviceName,
			StreamName: cfg.NATS.StreamName,
		})
		if err != nil {
			logger.Warn("Failed to connect to NATS - billing events disabled", zap.Error(err))
		} else {
			defer bus.Close()
			settingsService.SetEventBus(bus)
			billingService.SetEventBus(bus)
			partnershipService.SetEventBus(bus)
			deepChecker.AddDependency("nats", health.NATSChecker(bus), false)
			logger.Info("NATS event bus connected for billing events")
		}
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryWithSentry())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestTimeout(&cfg.Timeout))
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins()))
	router.Use(middleware.Metrics(serviceName))

	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware(serviceName))
	}

	router.Use(middleware.ErrorHandler())

	// Health check endpoints
	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessProbe(serviceName, version))
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, deepChecker.Checks()))
	router.GET("/health/deep", deepChecker.GinHandler())

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": serviceName, "version": version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	places.NewHandler(gazetteer).RegisterRoutes(api)
	pricing.NewHandler(pricingService).RegisterRoutes(api)
	settings.NewHandler(settingsService).RegisterRoutes(api)
	billing.NewHandler(billingService).RegisterRoutes(api, idempotent...)
	partnerships.NewHandler(partnershipService).RegisterRoutes(api)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
