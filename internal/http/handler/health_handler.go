package handler

import (
	"net/http"

	"github.com/straye-as/sales-target-api/internal/cache"
	"github.com/straye-as/sales-target-api/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	cache  cache.RollupCache
	logger *zap.Logger
}

func NewHealthHandler(db *gorm.DB, rollupCache cache.RollupCache, logger *zap.Logger) *HealthHandler {
	if rollupCache == nil {
		rollupCache = cache.NewNoopRollupCache()
	}
	return &HealthHandler{
		db:     db,
		cache:  rollupCache,
		logger: logger,
	}
}

// Live is the liveness probe
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Database reports database reachability with connection pool stats
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(h.db)
	if err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			"max_idle_closed":      stats.MaxIdleClosed,
			"max_lifetime_closed":  stats.MaxLifetimeClosed,
		},
	})
}

// Ready checks every dependency. The cache is only checked when enabled and
// its failure degrades the service without failing readiness.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]interface{})
	status := http.StatusOK

	if err := database.HealthCheck(h.db); err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]string{"status": "unhealthy", "error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = map[string]string{"status": "healthy"}
	}

	switch {
	case !h.cache.Enabled():
		checks["cache"] = map[string]string{"status": "disabled"}
	case h.cache.Ping(r.Context()) != nil:
		h.logger.Warn("Roll-up cache health check failed")
		checks["cache"] = map[string]string{"status": "degraded"}
	default:
		checks["cache"] = map[string]string{"status": "healthy"}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	respondJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": checks,
	})
}
