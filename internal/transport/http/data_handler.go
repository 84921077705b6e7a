package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"homepulse/internal/config"
	apierrors "homepulse/internal/errors"
	"homepulse/internal/exporter"
	v1 "homepulse/pkg/contracts/api/v1"
	"homepulse/pkg/contracts/domain"
)

// DataHandler handles observation query requests
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDataHandler creates a new data handler
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/observations", h.GetObservations)
	r.Get("/regions", h.GetRegions)
	r.Get("/snapshot", h.GetSnapshot)
	r.Get("/yoy", h.GetYoY)
	r.Get("/export", h.Export)

	return r
}

// parseFilterRequest decodes and validates the filter query parameters.
func (h *DataHandler) parseFilterRequest(r *http.Request) (v1.FilterRequest, error) {
	query := r.URL.Query()

	req := v1.FilterRequest{
		From:   query.Get("from"),
		To:     query.Get("to"),
		Metric: query.Get("metric"),
	}

	// regions may repeat or arrive comma-separated.
	for _, raw := range query["regions"] {
		for _, region := range strings.Split(raw, ",") {
			if region = strings.TrimSpace(region); region != "" {
				req.Regions = append(req.Regions, region)
			}
		}
	}

	if err := h.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			var details []apierrors.ValidationError
			for _, fe := range fieldErrs {
				details = append(details, apierrors.ValidationError{
					Field:   strings.ToLower(fe.Field()),
					Message: fmt.Sprintf("failed %s validation", fe.Tag()),
				})
			}
			return req, apierrors.NewValidationErrors(details)
		}
		return req, apierrors.InvalidRequestWithError(err)
	}

	return req, nil
}

// toCriteria converts a validated request into domain filter criteria.
func toCriteria(req v1.FilterRequest) domain.FilterCriteria {
	criteria := domain.FilterCriteria{
		Regions: req.Regions,
		Metric:  req.Metric,
	}
	if req.From != "" {
		criteria.From, _ = time.Parse("2006-01-02", req.From)
	}
	if req.To != "" {
		criteria.To, _ = time.Parse("2006-01-02", req.To)
	}
	return criteria
}

// GetObservations handles GET /api/data/observations
func (h *DataHandler) GetObservations(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseFilterRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Observations(r.Context(), toCriteria(req))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if rows == nil {
		rows = []domain.ObservationRow{}
	}

	render.JSON(w, r, map[string]interface{}{
		"observations": rows,
		"count":        len(rows),
	})
}

// GetRegions handles GET /api/data/regions
func (h *DataHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.Regions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{"regions": regions})
}

// GetSnapshot handles GET /api/data/snapshot
func (h *DataHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseFilterRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	entries, err := h.service.Snapshot(r.Context(), toCriteria(req))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{"snapshot": entries})
}

// GetYoY handles GET /api/data/yoy
func (h *DataHandler) GetYoY(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseFilterRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	points, err := h.service.YoY(r.Context(), toCriteria(req))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{"points": points})
}

// Export handles GET /api/data/export, streaming the filtered subset as a
// CSV or Excel download.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseFilterRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	exportReq := v1.ExportRequest{
		FilterRequest: req,
		Format:        r.URL.Query().Get("format"),
	}
	if err := h.validate.Struct(exportReq); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "must be csv or xlsx"))
		return
	}

	format := exportReq.Format
	if format == "" {
		format = "csv"
	}

	rows, err := h.service.Observations(r.Context(), toCriteria(exportReq.FilterRequest))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.%s", config.ZHVIResourceName, time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = exporter.WriteObservationsXLSX(w, rows)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = exporter.WriteObservationsCSV(w, rows)
	}

	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			slog.String("format", format),
			slog.String("error", err.Error()))
	}
}
