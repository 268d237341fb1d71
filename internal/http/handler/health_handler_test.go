package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/straye-as/sales-target-api/internal/http/handler"
	"github.com/straye-as/sales-target-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := handler.NewHealthHandler(db, nil, zap.NewNop())

	t.Run("live", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Live(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("database", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Database(rec, httptest.NewRequest(http.MethodGet, "/health/db", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Contains(t, body, "stats")
	})

	t.Run("ready with cache disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Status string                       `json:"status"`
			Checks map[string]map[string]string `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "disabled", body.Checks["cache"]["status"])
	})
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := handler.NewHealthHandler(db, nil, zap.NewNop())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	h.Database(rec, httptest.NewRequest(http.MethodGet, "/health/db", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
