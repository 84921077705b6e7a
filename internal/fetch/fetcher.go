package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"homepulse/internal/config"
	"homepulse/pkg/contracts/domain"
)

// maxConcurrentFetches bounds how many resources download at once. Each
// resource writes to its own destination path, so downloads never race on
// a file.
const maxConcurrentFetches = 4

// Resource is a named remote file and its destination under the data dir.
type Resource struct {
	Name     string
	URL      string
	Filename string
}

// DefaultResources returns the resource list the fetcher downloads when
// invoked with no arguments: the state-level ZHVI CSV.
func DefaultResources() []Resource {
	return []Resource{
		{
			Name:     config.ZHVIResourceName,
			URL:      config.ZHVIStateURL,
			Filename: config.ZHVIStateFile,
		},
	}
}

// FetchError reports a failed download of a single resource. It is not
// retried; the operator decides whether to re-run the fetch.
type FetchError struct {
	Resource   string
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d from %s", e.Resource, e.StatusCode, e.URL)
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying transport error, if any
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher downloads resources over HTTP with a shared rate limiter.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
	dataDir   string
	userAgent string
}

// New creates a fetcher writing into dataDir.
func New(cfg config.FetchConfig, dataDir string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		logger:    logger.With(slog.String("component", "fetcher")),
		dataDir:   dataDir,
		userAgent: cfg.UserAgent,
	}
}

// Fetch downloads a single resource, overwriting any existing file at the
// destination. The destination directory is created if needed.
func (f *Fetcher) Fetch(ctx context.Context, res Resource) (domain.RawDataset, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return domain.RawDataset{}, &FetchError{Resource: res.Name, URL: res.URL, Err: err}
	}

	dest := filepath.Join(f.dataDir, res.Filename)

	f.logger.InfoContext(ctx, "downloading resource",
		slog.String("resource", res.Name),
		slog.String("url", res.URL),
		slog.String("destination", dest))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
	if err != nil {
		return domain.RawDataset{}, &FetchError{Resource: res.Name, URL: res.URL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.RawDataset{}, &FetchError{Resource: res.Name, URL: res.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.RawDataset{}, &FetchError{Resource: res.Name, URL: res.URL, StatusCode: resp.StatusCode}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return domain.RawDataset{}, &FetchError{Resource: res.Name, URL: res.URL, Err: err}
	}

	file, err := os.Create(dest)
	if err != nil {
		return domain.RawDataset{}, &FetchError{Resource: res.Name, URL: res.URL, Err: err}
	}

	written, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return domain.RawDataset{}, &FetchError{Resource: res.Name, URL: res.URL, Err: err}
	}

	dataset := domain.RawDataset{
		Name:      res.Name,
		SourceURL: res.URL,
		LocalPath: dest,
		FetchedAt: time.Now().UTC(),
	}

	f.logger.InfoContext(ctx, "resource downloaded",
		slog.String("resource", res.Name),
		slog.Int64("bytes", written))

	return dataset, nil
}

// FetchAll downloads every resource independently. One resource failing
// does not stop the others; the joined error carries every failure and the
// returned slice contains the datasets that did succeed.
func (f *Fetcher) FetchAll(ctx context.Context, resources []Resource) ([]domain.RawDataset, error) {
	datasets := make([]domain.RawDataset, len(resources))
	errs := make([]error, len(resources))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, res := range resources {
		g.Go(func() error {
			datasets[i], errs[i] = f.Fetch(ctx, res)
			// Errors are collected per resource so the remaining
			// downloads keep going.
			return nil
		})
	}
	g.Wait()

	var fetched []domain.RawDataset
	for i := range resources {
		if errs[i] == nil {
			fetched = append(fetched, datasets[i])
		}
	}

	return fetched, errors.Join(errs...)
}
