package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/straye-as/sales-target-api/internal/config"
	"github.com/straye-as/sales-target-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.SecurityConfig
		want   map[string]string
		absent []string
	}{
		{
			name: "defaults without hsts",
			cfg: config.SecurityConfig{
				ContentTypeNosniff:    true,
				FrameOptions:          "DENY",
				ContentSecurityPolicy: "default-src 'self'",
				ReferrerPolicy:        "strict-origin-when-cross-origin",
			},
			want: map[string]string{
				"X-Content-Type-Options":  "nosniff",
				"X-Frame-Options":         "DENY",
				"Content-Security-Policy": "default-src 'self'",
				"Referrer-Policy":         "strict-origin-when-cross-origin",
			},
			absent: []string{"Strict-Transport-Security", "Permissions-Policy"},
		},
		{
			name: "hsts with subdomains and preload",
			cfg: config.SecurityConfig{
				EnableHSTS:            true,
				HSTSMaxAge:            31536000,
				HSTSIncludeSubdomains: true,
				HSTSPreload:           true,
			},
			want: map[string]string{
				"Strict-Transport-Security": "max-age=31536000; includeSubDomains; preload",
			},
			absent: []string{"X-Content-Type-Options", "X-Frame-Options"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.SecurityHeaders(&tt.cfg)(okHandler())
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			for name, value := range tt.want {
				assert.Equal(t, value, rec.Header().Get(name), name)
			}
			for _, name := range tt.absent {
				assert.Empty(t, rec.Header().Get(name), name)
			}
		})
	}
}
