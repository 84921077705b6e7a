package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepulse/internal/config"
	"homepulse/internal/services"
)

func newTestHealthHandler(t *testing.T, withData bool) *HealthHandler {
	t.Helper()

	dataDir := t.TempDir()
	t.Setenv("HOMEPULSE_PATHS_DATA_DIR", dataDir)

	ds, err := services.NewDataService(config.Default())
	require.NoError(t, err)

	if withData {
		csv := "RegionName,2020-01-31\nOhio,150000\n"
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, config.ZHVIStateFile), []byte(csv), 0644))
		require.NoError(t, ds.Reload(context.Background()))
	}

	return NewHealthHandler(services.NewHealthService(ds, "test", nil), slog.Default())
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHealthHandler(t, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["data_rows"])
}

func TestReadyEndpointBeforeLoad(t *testing.T) {
	handler := newTestHealthHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "loading", body["status"])
}

func TestReadyEndpointAfterLoad(t *testing.T) {
	handler := newTestHealthHandler(t, true)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
