package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"homepulse/internal/config"
	"homepulse/internal/dataprocessing"
	apierrors "homepulse/internal/errors"
	"homepulse/internal/fetch"
	"homepulse/pkg/contracts/domain"
)

// DataService owns the in-memory normalized table for the session. The
// table itself is immutable; Reload and Refresh swap the pointer under a
// write lock because the web process serves concurrent requests.
type DataService struct {
	config  *config.Config
	paths   *config.Paths
	logger  *slog.Logger
	fetcher *fetch.Fetcher

	mu        sync.RWMutex
	table     *domain.NormalizedTable
	resources []fetch.Resource
}

// NewDataService creates a new data service using the default logger
func NewDataService(cfg *config.Config) (*DataService, error) {
	return NewDataServiceWithLogger(cfg, slog.Default())
}

// NewDataServiceWithLogger creates a new data service with a specific logger
func NewDataServiceWithLogger(cfg *config.Config, logger *slog.Logger) (*DataService, error) {
	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("DataService initialized",
		slog.String("data_dir", paths.DataDir),
		slog.String("zhvi_file", paths.ZHVIFile))

	return &DataService{
		config:    cfg,
		paths:     paths,
		logger:    logger.With(slog.String("component", "data_service")),
		fetcher:   fetch.New(cfg.Fetch, paths.DataDir, logger),
		resources: fetch.DefaultResources(),
	}, nil
}

// SetResources overrides the resource list used by Refresh. Used by tests
// and by deployments mirroring the Zillow files elsewhere.
func (ds *DataService) SetResources(resources []fetch.Resource) {
	ds.resources = resources
}

// Reload rebuilds the normalized table from the raw file on disk. There
// is no incremental update: the previous table is replaced wholesale.
func (ds *DataService) Reload(ctx context.Context) error {
	table, err := dataprocessing.LoadZHVIFile(ds.paths.ZHVIFile)
	if err != nil {
		return err
	}

	ds.mu.Lock()
	ds.table = table
	ds.mu.Unlock()

	ds.logger.InfoContext(ctx, "normalized table reloaded",
		slog.Int("rows", table.Len()),
		slog.String("source", table.Source.LocalPath))

	return nil
}

// Refresh re-fetches the raw dataset from upstream and reloads the table.
// A failed download leaves the previous table in place.
func (ds *DataService) Refresh(ctx context.Context) error {
	if _, err := ds.fetcher.FetchAll(ctx, ds.resources); err != nil {
		return err
	}
	return ds.Reload(ctx)
}

// Table returns the current normalized table, or nil before the first
// successful load. Callers must treat the table as read-only.
func (ds *DataService) Table() *domain.NormalizedTable {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.table
}

// Loaded reports whether a table is available.
func (ds *DataService) Loaded() bool {
	return ds.Table() != nil
}

// Observations returns the filtered observation rows in table order.
func (ds *DataService) Observations(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ObservationRow, error) {
	table := ds.Table()
	if table == nil {
		return nil, apierrors.ErrDatasetNotFound
	}
	return dataprocessing.Filter(table, criteria), nil
}

// Regions returns the sorted distinct region names in the full table.
func (ds *DataService) Regions(ctx context.Context) ([]string, error) {
	table := ds.Table()
	if table == nil {
		return nil, apierrors.ErrDatasetNotFound
	}
	return dataprocessing.Regions(table.Rows), nil
}

// Snapshot returns the latest values for the filtered subset.
func (ds *DataService) Snapshot(ctx context.Context, criteria domain.FilterCriteria) ([]dataprocessing.SnapshotEntry, error) {
	rows, err := ds.Observations(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return dataprocessing.LatestSnapshot(rows), nil
}

// YoY returns the year-over-year change series for the filtered subset.
// The comparison point for each observation is looked up in the full
// table so a date-range filter does not distort the change values.
func (ds *DataService) YoY(ctx context.Context, criteria domain.FilterCriteria) ([]dataprocessing.YoYPoint, error) {
	table := ds.Table()
	if table == nil {
		return nil, apierrors.ErrDatasetNotFound
	}

	// Compute on region/metric scope only, then cut to the date range.
	scope := domain.FilterCriteria{Regions: criteria.Regions, Metric: criteria.Metric}
	points := dataprocessing.YoYChange(dataprocessing.Filter(table, scope))

	if criteria.From.IsZero() && criteria.To.IsZero() {
		return points, nil
	}

	var inRange []dataprocessing.YoYPoint
	for _, p := range points {
		if !criteria.From.IsZero() && p.Date.Before(criteria.From) {
			continue
		}
		if !criteria.To.IsZero() && p.Date.After(criteria.To) {
			continue
		}
		inRange = append(inRange, p)
	}
	return inRange, nil
}
