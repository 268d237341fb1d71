package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/straye-as/sales-target-api/internal/auth"
	"github.com/straye-as/sales-target-api/internal/config"
	"github.com/straye-as/sales-target-api/internal/http/handler"
	"github.com/straye-as/sales-target-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/straye-as/sales-target-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	authMiddleware     *auth.Middleware
	rateLimiter        *middleware.RateLimiter
	healthHandler      *handler.HealthHandler
	performanceHandler *handler.PerformanceHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	performanceHandler *handler.PerformanceHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		healthHandler:      healthHandler,
		performanceHandler: performanceHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer(rt.logger))
	r.Use(middleware.RequestLogging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))

	// Health probes
	r.Get("/health", rt.healthHandler.Live)
	r.Get("/health/db", rt.healthHandler.Database)
	r.Get("/health/ready", rt.healthHandler.Ready)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.rateLimiter.Limit)
		if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
			r.Use(chimiddleware.Timeout(timeout))
		}

		r.Route("/performance", func(r chi.Router) {
			r.Get("/zones", rt.performanceHandler.ListZones)
			r.Get("/zones/{id}", rt.performanceHandler.GetZone)
			r.Get("/users", rt.performanceHandler.ListUsers)
			r.Get("/users/{id}", rt.performanceHandler.GetUser)
		})
	})

	return r
}
