package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/straye-as/sales-target-api/internal/auth"
	"github.com/straye-as/sales-target-api/internal/config"
	"go.uber.org/zap"
)

// RateLimiter limits anonymous requests per client IP and authenticated
// requests per user
type RateLimiter struct {
	enabled       bool
	logger        *zap.Logger
	anonymous     func(http.Handler) http.Handler
	authenticated func(http.Handler) http.Handler
	whitelistIPs  map[string]struct{}
	exactPaths    map[string]struct{}
	prefixPaths   []string
}

// NewRateLimiter creates a new rate limiter with the given configuration.
// Whitelisted paths ending in /* match by prefix.
func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		enabled:      cfg.Enabled,
		logger:       logger,
		whitelistIPs: make(map[string]struct{}, len(cfg.WhitelistIPs)),
		exactPaths:   make(map[string]struct{}, len(cfg.WhitelistPaths)),
	}

	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = struct{}{}
	}
	for _, path := range cfg.WhitelistPaths {
		if prefix, ok := strings.CutSuffix(path, "/*"); ok {
			rl.prefixPaths = append(rl.prefixPaths, prefix)
			continue
		}
		rl.exactPaths[path] = struct{}{}
	}

	rl.anonymous = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return "ip:" + clientIP(r), nil
		}),
		httprate.WithLimitHandler(rl.exceeded),
	)
	rl.authenticated = httprate.Limit(
		cfg.RequestsPerMinuteAuth,
		time.Minute,
		httprate.WithKeyFuncs(keyByUserOrIP),
		httprate.WithLimitHandler(rl.exceeded),
	)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
		zap.Strings("whitelist_ips", cfg.WhitelistIPs),
		zap.Strings("whitelist_paths", cfg.WhitelistPaths),
	)

	return rl
}

// Limit picks the per-user limit when the request is authenticated and the
// per-IP limit otherwise. Mount it after auth to get per-user limits.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.enabled {
		return next
	}

	anonymous := rl.anonymous(next)
	authenticated := rl.authenticated(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := auth.FromContext(r.Context()); ok {
			authenticated.ServeHTTP(w, r)
			return
		}
		anonymous.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) exempt(r *http.Request) bool {
	if _, ok := rl.exactPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range rl.prefixPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	_, ok := rl.whitelistIPs[clientIP(r)]
	return ok
}

// keyByUserOrIP keys API key clients, which carry no user id, by IP
func keyByUserOrIP(r *http.Request) (string, error) {
	if userCtx, ok := auth.FromContext(r.Context()); ok && userCtx.UserID != 0 {
		return "user:" + strconv.FormatUint(uint64(userCtx.UserID), 10), nil
	}
	return "ip:" + clientIP(r), nil
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiter) exceeded(w http.ResponseWriter, r *http.Request) {
	rl.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", clientIP(r)),
		zap.String("request_id", RequestIDFromContext(r.Context())),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate_limit_exceeded","message":"Too many requests. Please try again later."}`))
}
