package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepulse/internal/infrastructure"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.Default(), false)
}

func problemFor(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/data/observations", nil)
	rec := httptest.NewRecorder()
	newTestHandler().HandleError(rec, req, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	newTestHandler().HandleError(rec, req, nil)
	assert.Zero(t, rec.Body.Len())
}

func TestErrorToProblemAPIError(t *testing.T) {
	rec, body := problemFor(t, SchemaInvalidError(fmt.Errorf("no date columns")))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, TypeDatasetSchema, body["type"])
	assert.Equal(t, "SCHEMA_INVALID", body["error_code"])
	assert.Equal(t, "no date columns", body["details"])
	assert.Equal(t, "/api/data/observations", body["instance"])
}

func TestErrorToProblemUpstreamFetch(t *testing.T) {
	rec, body := problemFor(t, UpstreamFetchError(fmt.Errorf("status 503")))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, TypeUpstreamFetch, body["type"])
}

func TestErrorToProblemMissingFile(t *testing.T) {
	rec, body := problemFor(t, fmt.Errorf("open zhvi_by_state.csv: %w", os.ErrNotExist))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeDatasetNotFound, body["type"])
}

func TestErrorToProblemContextDeadline(t *testing.T) {
	rec, body := problemFor(t, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, TypeTimeout, body["type"])
}

func TestErrorToProblemUnknownError(t *testing.T) {
	rec, body := problemFor(t, fmt.Errorf("something broke"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, body["type"])
	// Internal errors never leak their message.
	assert.NotContains(t, body["detail"], "something broke")
}

func TestHandleErrorCarriesTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/data/observations", nil)
	req = req.WithContext(infrastructure.WithTraceID(req.Context(), "req-42"))

	rec := httptest.NewRecorder()
	newTestHandler().HandleError(rec, req, ErrDatasetNotFound)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body["trace_id"])
}

func TestHandlePanic(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/data/snapshot", nil)
	rec := httptest.NewRecorder()
	newTestHandler().HandlePanic(rec, req, "boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeInternal, body["type"])
}
