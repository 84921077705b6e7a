package services

import (
	"context"
	"log/slog"
	"time"
)

// HealthStatus is the payload returned by the health endpoints.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	DataRows  int       `json:"data_rows"`
}

// HealthService reports liveness and readiness. The server is live as
// soon as it binds; it is ready once the normalized table has loaded.
type HealthService struct {
	data    *DataService
	version string
	logger  *slog.Logger
}

// NewHealthService creates a new health service
func NewHealthService(data *DataService, version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		data:    data,
		version: version,
		logger:  logger.With(slog.String("component", "health_service")),
	}
}

// Health returns the liveness status.
func (hs *HealthService) Health(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Version:   hs.version,
		Timestamp: time.Now().UTC(),
		DataRows:  hs.data.Table().Len(),
	}
}

// Ready reports whether the service can answer data queries.
func (hs *HealthService) Ready(ctx context.Context) (HealthStatus, bool) {
	status := hs.Health(ctx)
	if !hs.data.Loaded() {
		status.Status = "loading"
		return status, false
	}
	return status, true
}
