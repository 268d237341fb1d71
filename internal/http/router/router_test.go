package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/straye-as/sales-target-api/internal/auth"
	"github.com/straye-as/sales-target-api/internal/cache"
	"github.com/straye-as/sales-target-api/internal/config"
	"github.com/straye-as/sales-target-api/internal/http/handler"
	"github.com/straye-as/sales-target-api/internal/http/middleware"
	"github.com/straye-as/sales-target-api/internal/http/router"
	"github.com/straye-as/sales-target-api/internal/repository"
	"github.com/straye-as/sales-target-api/internal/service"
	"github.com/straye-as/sales-target-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.CreateZone(t, db, "North")

	log := zap.NewNop()
	cfg := &config.Config{
		App:  config.AppConfig{Environment: "test"},
		Auth: config.AuthConfig{APIKey: "admin-key", JWTSecret: "router-test-secret"},
	}

	offerRepo := repository.NewOfferRepository(db)
	rollupCache := cache.NewNoopRollupCache()
	performanceService := service.NewPerformanceService(
		repository.NewZoneRepository(db),
		repository.NewUserRepository(db),
		service.NewActualService(offerRepo, log),
		service.NewMetricsService(offerRepo, log),
		service.NewTargetService(repository.NewTargetRepository(db), log),
		rollupCache,
		2,
		log,
	)

	rt := router.NewRouter(
		cfg,
		log,
		auth.NewMiddleware(cfg, log),
		middleware.NewRateLimiter(&cfg.RateLimit, log),
		handler.NewHealthHandler(db, rollupCache, log),
		handler.NewPerformanceHandler(performanceService, log),
	)
	return rt.Setup()
}

func TestRouter_Routes(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		apiKey     string
		wantStatus int
	}{
		{name: "liveness", path: "/health", wantStatus: http.StatusOK},
		{name: "database health", path: "/health/db", wantStatus: http.StatusOK},
		{name: "readiness", path: "/health/ready", wantStatus: http.StatusOK},
		{name: "performance requires auth", path: "/api/v1/performance/zones?targetPeriod=2025-03&periodType=MONTHLY", wantStatus: http.StatusUnauthorized},
		{name: "zones with api key", path: "/api/v1/performance/zones?targetPeriod=2025-03&periodType=MONTHLY", apiKey: "admin-key", wantStatus: http.StatusOK},
		{name: "users with api key", path: "/api/v1/performance/users?targetPeriod=2025&periodType=YEARLY", apiKey: "admin-key", wantStatus: http.StatusOK},
		{name: "bad period", path: "/api/v1/performance/zones?targetPeriod=March&periodType=MONTHLY", apiKey: "admin-key", wantStatus: http.StatusBadRequest},
		{name: "unknown route", path: "/api/v1/deals", apiKey: "admin-key", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("x-api-key", tt.apiKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}
