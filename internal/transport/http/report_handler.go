package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "surveyetl/internal/errors"
	"surveyetl/internal/report"
	"surveyetl/pkg/contracts/domain"
)

// IngestService is the service surface the report handler drives.
type IngestService interface {
	Ingest(ctx context.Context, rawCSV, fallbackDate string) (*domain.IngestSummary, error)
	Preview(rawCSV, fallbackDate string) (domain.DateInfo, []domain.SurveyRecord, report.Stats, error)
}

// RecordReader lists persisted records for the read endpoints.
type RecordReader interface {
	RecordsByDate(ctx context.Context, date string) ([]domain.SurveyRecord, error)
}

// ReportHandler handles report ingestion HTTP requests.
type ReportHandler struct {
	service      IngestService
	records      RecordReader
	maxBodyBytes int64
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service IngestService, records RecordReader, maxBodyBytes int64, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service:      service,
		records:      records,
		maxBodyBytes: maxBodyBytes,
		validate:     validator.New(),
		logger:       logger.With(slog.String("handler", "report")),
	}
}

// ingestRequest is the JSON request body for the ingest endpoints. Raw
// text/csv bodies are also accepted, with the fallback date in a query
// parameter.
type ingestRequest struct {
	CSV          string `json:"csv" validate:"required"`
	FallbackDate string `json:"fallback_date" validate:"omitempty,datetime=2006-01-02"`
}

// Ingest handles POST /api/reports.
func (h *ReportHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.parseIngestRequest(r)
	if apiErr != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apiErr))
		return
	}

	summary, err := h.service.Ingest(r.Context(), req.CSV, req.FallbackDate)
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(h.mapError(err)))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

// Preview handles POST /api/reports/preview: transform without persistence.
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.parseIngestRequest(r)
	if apiErr != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apiErr))
		return
	}

	dateInfo, records, stats, err := h.service.Preview(req.CSV, req.FallbackDate)
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(h.mapError(err)))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"date_info": dateInfo,
		"stats":     stats,
		"records":   records,
	})
}

// Records handles GET /api/records?date=YYYY-MM-DD.
func (h *ReportHandler) Records(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if err := h.validate.Var(date, "required,datetime=2006-01-02"); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("date", "must be a YYYY-MM-DD date")))
		return
	}

	records, err := h.records.RecordsByDate(r.Context(), date)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to read records",
			slog.String("date", date), slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"date":    date,
		"count":   len(records),
		"records": records,
	})
}

// parseIngestRequest accepts either a JSON body or a raw CSV body.
func (h *ReportHandler) parseIngestRequest(r *http.Request) (*ingestRequest, *apierrors.APIError) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxBodyBytes)

	var req ingestRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if maxed := new(http.MaxBytesError); errors.As(err, &maxed) {
				return nil, apierrors.ErrPayloadTooLarge
			}
			return nil, apierrors.InvalidRequestWithError(err)
		}
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			if maxed := new(http.MaxBytesError); errors.As(err, &maxed) {
				return nil, apierrors.ErrPayloadTooLarge
			}
			return nil, apierrors.InvalidRequestWithError(err)
		}
		req.CSV = string(body)
		req.FallbackDate = r.URL.Query().Get("fallback_date")
	}

	if err := h.validate.Struct(&req); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := strings.ToLower(invalid[0].Field())
			if field == "csv" {
				return nil, apierrors.ErrValidation("csv", "report payload is required")
			}
			return nil, apierrors.ErrValidation("fallback_date", "must be a YYYY-MM-DD date")
		}
		return nil, apierrors.ErrValidationFailed
	}
	return &req, nil
}

// mapError converts service errors into API errors.
func (h *ReportHandler) mapError(err error) *apierrors.APIError {
	var formatErr *report.FormatError
	if errors.As(err, &formatErr) {
		return apierrors.ErrReportFormat(err)
	}
	return apierrors.IngestError(err)
}
