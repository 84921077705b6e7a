package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepulse/internal/config"
	"homepulse/internal/fetch"
)

const fetcherTestCSV = `RegionName,2020-01-31,2020-02-29
New Jersey,420000,425000
New York,380000,381000
`

func testResources(url string) []fetch.Resource {
	return []fetch.Resource{{
		Name:     config.ZHVIResourceName,
		URL:      url,
		Filename: config.ZHVIStateFile,
	}}
}

func TestRunDownloadsAndValidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fetcherTestCSV))
	}))
	defer srv.Close()

	outDir := t.TempDir()
	code := run(config.Default(), outDir, slog.Default(), testResources(srv.URL))
	assert.Equal(t, 0, code)

	saved, err := os.ReadFile(filepath.Join(outDir, config.ZHVIStateFile))
	require.NoError(t, err)
	assert.Equal(t, fetcherTestCSV, string(saved))
}

func TestRunFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	code := run(config.Default(), outDir, slog.Default(), testResources(srv.URL))
	assert.Equal(t, 1, code)

	_, err := os.Stat(filepath.Join(outDir, config.ZHVIStateFile))
	assert.True(t, os.IsNotExist(err), "no file should be written on a failed fetch")
}

func TestRunFailsOnSchemaValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A CSV without date columns downloads fine but fails validation.
		w.Write([]byte("RegionName,SizeRank\nNew Jersey,1\n"))
	}))
	defer srv.Close()

	outDir := t.TempDir()
	code := run(config.Default(), outDir, slog.Default(), testResources(srv.URL))
	assert.Equal(t, 1, code)
}

func TestRunFailsOnUnreachableHost(t *testing.T) {
	outDir := t.TempDir()
	code := run(config.Default(), outDir, slog.Default(), testResources("http://127.0.0.1:1/zhvi.csv"))
	assert.Equal(t, 1, code)
}
