package http

import (
	"context"

	"homepulse/internal/dataprocessing"
	"homepulse/pkg/contracts/domain"
)

// DataServiceInterface is the contract the data handler depends on.
// Implemented by services.DataService; tests substitute fakes.
type DataServiceInterface interface {
	Observations(ctx context.Context, criteria domain.FilterCriteria) ([]domain.ObservationRow, error)
	Regions(ctx context.Context) ([]string, error)
	Snapshot(ctx context.Context, criteria domain.FilterCriteria) ([]dataprocessing.SnapshotEntry, error)
	YoY(ctx context.Context, criteria domain.FilterCriteria) ([]dataprocessing.YoYPoint, error)
}

// RefreshServiceInterface is the contract the operations handler depends on.
type RefreshServiceInterface interface {
	Refresh(ctx context.Context) error
	Table() *domain.NormalizedTable
	Regions(ctx context.Context) ([]string, error)
}
