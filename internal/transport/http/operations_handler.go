package http

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"homepulse/internal/dataprocessing"
	apierrors "homepulse/internal/errors"
	"homepulse/internal/fetch"
	v1 "homepulse/pkg/contracts/api/v1"
)

// RefreshBroadcaster is notified after a successful refresh so connected
// dashboards can re-query.
type RefreshBroadcaster interface {
	BroadcastDataRefreshed(rows int)
}

// OperationsHandler handles dataset lifecycle operations
type OperationsHandler struct {
	service      RefreshServiceInterface
	broadcaster  RefreshBroadcaster
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewOperationsHandler creates a new operations handler
func NewOperationsHandler(service RefreshServiceInterface, broadcaster RefreshBroadcaster, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *OperationsHandler {
	return &OperationsHandler{
		service:      service,
		broadcaster:  broadcaster,
		logger:       logger.With(slog.String("component", "operations_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the operations routes
func (h *OperationsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/refresh", h.Refresh)

	return r
}

// Refresh handles POST /api/operations/refresh: re-fetch the raw dataset
// from upstream, rebuild the normalized table in place, and notify
// connected clients. The previous table survives a failed download.
func (h *OperationsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	jobID := uuid.New().String()

	h.logger.InfoContext(r.Context(), "dataset refresh requested",
		slog.String("job_id", jobID))

	if err := h.service.Refresh(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, refreshError(err))
		return
	}

	table := h.service.Table()
	regions, _ := h.service.Regions(r.Context())

	if h.broadcaster != nil {
		h.broadcaster.BroadcastDataRefreshed(table.Len())
	}

	h.logger.InfoContext(r.Context(), "dataset refresh complete",
		slog.String("job_id", jobID),
		slog.Int("rows", table.Len()))

	render.JSON(w, r, v1.RefreshResponse{
		JobID:     jobID,
		Rows:      table.Len(),
		Regions:   len(regions),
		FetchedAt: table.Source.FetchedAt.Format("2006-01-02T15:04:05Z"),
	})
}

// refreshError classifies a refresh failure: a failed download is a 502,
// a downloaded file with a bad schema is a 422, a missing raw file is a
// 404.
func refreshError(err error) error {
	var schemaErr *dataprocessing.SchemaError
	if errors.As(err, &schemaErr) {
		return apierrors.SchemaInvalidError(err)
	}

	var fetchErr *fetch.FetchError
	if errors.As(err, &fetchErr) {
		return apierrors.UpstreamFetchError(err)
	}

	if errors.Is(err, os.ErrNotExist) {
		return apierrors.DatasetNotFoundError(err)
	}

	return apierrors.UpstreamFetchError(err)
}
