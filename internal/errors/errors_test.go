package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorImplementsError(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
}

func TestNewWithDetails(t *testing.T) {
	err := NewWithDetails(http.StatusUnprocessableEntity, "SCHEMA_INVALID", "bad file", "missing RegionName")
	assert.Equal(t, "missing RegionName", err.Details)
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err    *APIError
		status int
		code   string
	}{
		{ErrDatasetNotFound, http.StatusNotFound, "DATASET_NOT_FOUND"},
		{ErrSchemaInvalid, http.StatusUnprocessableEntity, "SCHEMA_INVALID"},
		{ErrUpstreamFetch, http.StatusBadGateway, "UPSTREAM_FETCH_FAILED"},
		{ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{ErrInternalServer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.code, tt.err.ErrorCode)
		})
	}
}

func TestHelperConstructors(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	fetchErr := UpstreamFetchError(cause)
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
	assert.Equal(t, "connection refused", fetchErr.Details)

	schemaErr := SchemaInvalidError(cause)
	assert.Equal(t, http.StatusUnprocessableEntity, schemaErr.StatusCode)

	notFoundErr := DatasetNotFoundError(cause)
	assert.Equal(t, http.StatusNotFound, notFoundErr.StatusCode)
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "from", Message: "must be a YYYY-MM-DD date"},
		{Field: "format", Message: "must be csv or xlsx"},
	})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	details, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, details.Errors, 2)
	assert.Equal(t, "from", details.Errors[0].Field)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrDatasetNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "DATASET_NOT_FOUND", resp.Error.ErrorCode)
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadGateway, TypeUpstreamFetch, "Bad Gateway", "download failed", "/api/operations/refresh").
		WithExtension("error_code", "UPSTREAM_FETCH_FAILED")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeUpstreamFetch, decoded["type"])
	assert.Equal(t, float64(http.StatusBadGateway), decoded["status"])
	assert.Equal(t, "download failed", decoded["detail"])
	assert.Equal(t, "UPSTREAM_FETCH_FAILED", decoded["error_code"])
}
