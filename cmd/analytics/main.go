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
	"github.com/richxcame/booking-platform/internal/analytics"
	"github.com/richxcame/booking-platform/pkg/cache"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/config"
	"github.com/richxcame/booking-platform/pkg/database"
	"github.com/richxcame/booking-platform/pkg/errors"
	"github.com/richxcame/booking-platform/pkg/eventbus"
	"github.com/richxcame/booking-platform/pkg/health"
	"github.com/richxcame/booking-platform/pkg/logger"
	"github.com/richxcame/booking-platform/pkg/middleware"
	redisclient "github.com/richxcame/booking-platform/pkg/redis"
	"github.com/richxcame/booking-platform/pkg/tracing"
	"go.uber.org/zap"
)

const (
	serviceName = "analytics-service"
	version     = "1.0.0"
)

func main() {
	// Set default port for analytics service if not set
	if os.Getenv("PORT") == "" {
		os.Setenv("PORT", "8091")
	}
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	if err := logger.Init(cfg.Server.Environment, serviceName); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting analytics service",
		zap.String("service", serviceName),
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

	db, err := database.NewPostgresPool(&cfg.Database, cfg.Timeout.DatabaseQueryTimeout())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to database")

	repo := analytics.NewRepository(db)
	service := analytics.NewService(repo)
	handler := analytics.NewHandler(service)

	deepChecker := health.NewDeepChecker(health.DeepCheckerConfig{Version: version, CacheTTL: 10 * time.Second})
	deepChecker.AddDependency("database", health.PostgresChecker(db), true)

	// Redis caches reports for closed windows
	redisClient, redisErr := redisclient.NewRedisClient(&cfg.Redis)
	if redisErr != nil {
		logger.Warn("Failed to initialize Redis - report caching disabled", zap.Error(redisErr))
	} else {
		defer redisClient.Close()
		service.SetCache(cache.NewManager(redisClient))
		deepChecker.AddDependency("redis", health.RedisChecker(redisClient), false)
	}

	// Billing events feed the running fee and revenue totals on /metrics
	if cfg.NATS.Enabled && cfg.NATS.URL != "" {
		bus, err := eventbus.New(eventbus.Config{
			URL:        cfg.NATS.URL,
			Name:       serviceName,
			StreamName: cfg.NATS.StreamName,
		})
		if err != nil {
			logger.Warn("Failed to connect to NATS - billing event consumer disabled", zap.Error(err))
		} else {
			defer bus.Close()
			if err := analytics.NewEventHandler().RegisterSubscriptions(rootCtx, bus); err != nil {
				logger.Warn("Failed to subscribe to billing events", zap.Error(err))
			}
			deepChecker.AddDependency("nats", health.NATSChecker(bus), false)
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

	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessProbe(serviceName, version))
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, deepChecker.Checks()))
	router.GET("/health/deep", deepChecker.GinHandler())

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterRoutes(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancelRoot()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
