package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/straye-as/sales-target-api/docs"
	"github.com/straye-as/sales-target-api/internal/auth"
	"github.com/straye-as/sales-target-api/internal/cache"
	"github.com/straye-as/sales-target-api/internal/config"
	"github.com/straye-as/sales-target-api/internal/database"
	"github.com/straye-as/sales-target-api/internal/http/handler"
	"github.com/straye-as/sales-target-api/internal/http/middleware"
	"github.com/straye-as/sales-target-api/internal/http/router"
	"github.com/straye-as/sales-target-api/internal/jobs"
	"github.com/straye-as/sales-target-api/internal/logger"
	"github.com/straye-as/sales-target-api/internal/repository"
	"github.com/straye-as/sales-target-api/internal/service"
	"go.uber.org/zap"
)

// @title Straye Sales Target API
// @version 1.0
// @description Sales target versus actuals roll-ups for zones and sales users
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@straye.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	switch basicCfg.App.Environment {
	case "staging", "production":
		if host := os.Getenv("SWAGGER_HOST"); host != "" {
			docs.SwaggerInfo.Host = host
		}
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets may come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	rollupCache, err := cache.NewRollupCache(cfg.Cache)
	if err != nil {
		// Roll-ups are still served uncached
		log.Warn("Roll-up cache unavailable, continuing without cache", zap.Error(err))
		rollupCache = cache.NewNoopRollupCache()
	}
	log.Info("Roll-up cache initialized", zap.Bool("enabled", rollupCache.Enabled()))

	// Repositories
	zoneRepo := repository.NewZoneRepository(db)
	userRepo := repository.NewUserRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	targetRepo := repository.NewTargetRepository(db)

	// Services
	actualService := service.NewActualService(offerRepo, log)
	metricsService := service.NewMetricsService(offerRepo, log)
	targetService := service.NewTargetService(targetRepo, log)
	performanceService := service.NewPerformanceService(
		zoneRepo,
		userRepo,
		actualService,
		metricsService,
		targetService,
		rollupCache,
		cfg.Engine.MaxConcurrency,
		log,
	)

	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	healthHandler := handler.NewHealthHandler(db, rollupCache, log)
	performanceHandler := handler.NewPerformanceHandler(performanceService, log)

	rt := router.NewRouter(cfg, log, authMiddleware, rateLimiter, healthHandler, performanceHandler)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.CacheWarmEnabled && rollupCache.Enabled() {
		scheduler = jobs.NewScheduler(log)
		_, err := jobs.RegisterCacheWarmJob(
			scheduler,
			performanceService,
			rollupCache,
			log,
			cfg.Jobs.CacheWarmSchedule,
			cfg.Jobs.CacheWarmTimeoutDuration(),
			true,
		)
		if err != nil {
			log.Error("Failed to register cache warm job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
			log.Info("Cache warm job scheduled",
				zap.String("cron_expr", cfg.Jobs.CacheWarmSchedule),
				zap.Duration("timeout", cfg.Jobs.CacheWarmTimeoutDuration()),
			)
		}
	} else {
		log.Info("Cache warm job disabled",
			zap.Bool("jobs_enabled", cfg.Jobs.CacheWarmEnabled),
			zap.Bool("cache_enabled", rollupCache.Enabled()),
		)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
