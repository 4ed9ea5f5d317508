package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"surveyetl/internal/metrics"
	"surveyetl/internal/report"
	"surveyetl/internal/stores"
	"surveyetl/pkg/contracts/domain"
)

// RecordStore is the persistence surface the ingest service needs; the
// sqlite registry satisfies it.
type RecordStore interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	InsertRecords(ctx context.Context, batchID string, records []domain.SurveyRecord) error
}

// IngestService runs the full path for one survey export: transform,
// resolve store identities, persist what resolved, and report the counts.
// The engine itself stays pure; all logging and I/O happens here.
type IngestService struct {
	store  RecordStore
	meter  *metrics.Set
	logger *slog.Logger

	mu   sync.Mutex
	last *domain.IngestSummary
}

// NewIngestService creates an ingest service.
func NewIngestService(store RecordStore, meter *metrics.Set, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{
		store:  store,
		meter:  meter,
		logger: logger.With(slog.String("service", "ingest")),
	}
}

// Preview transforms a raw export without resolving or persisting anything.
func (s *IngestService) Preview(rawCSV, fallbackDate string) (domain.DateInfo, []domain.SurveyRecord, report.Stats, error) {
	return report.Transform(rawCSV, fallbackDate)
}

// Ingest transforms rawCSV, resolves each record's store label against the
// registry, stores the resolved records as one batch, and returns the
// summary. Unresolved labels drop their records; that is a counted outcome,
// not an error. Only a structural *report.FormatError or a persistence
// failure aborts the call.
func (s *IngestService) Ingest(ctx context.Context, rawCSV, fallbackDate string) (*domain.IngestSummary, error) {
	batchID := uuid.New().String()
	logger := s.logger.With(slog.String("batch_id", batchID))

	dateInfo, records, stats, err := report.Transform(rawCSV, fallbackDate)
	if err != nil {
		s.meter.ReportsFailed.Inc()
		logger.WarnContext(ctx, "report rejected", slog.String("error", err.Error()))
		return nil, err
	}

	storeList, err := s.store.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load store reference table: %w", err)
	}
	resolver := stores.NewTableResolver(storeList)

	resolved := make([]domain.SurveyRecord, 0, len(records))
	unmappedByLabel := make(map[string]struct{})
	for _, rec := range records {
		id, ok := resolver.Resolve(rec.StoreLocation)
		if !ok {
			unmappedByLabel[rec.StoreLocation] = struct{}{}
			s.meter.UnmappedStores.Inc()
			continue
		}
		rec.StoreID = id
		resolved = append(resolved, rec)
	}

	if err := s.store.InsertRecords(ctx, batchID, resolved); err != nil {
		return nil, fmt.Errorf("failed to store record batch: %w", err)
	}

	summary := &domain.IngestSummary{
		BatchID:        batchID,
		Date:           report.CanonicalDate(dateInfo.StartDate),
		DateInfo:       dateInfo,
		RowsSeen:       stats.RowsSeen,
		RowsSkipped:    stats.RowsSkipped,
		Metrics:        stats.Metrics,
		RecordsEmitted: stats.RecordsEmitted,
		RecordsStored:  len(resolved),
		UnmappedStores: len(records) - len(resolved),
	}
	for label := range unmappedByLabel {
		summary.UnmappedLabels = append(summary.UnmappedLabels, label)
	}
	sort.Strings(summary.UnmappedLabels)

	s.meter.ReportsIngested.Inc()
	s.meter.RecordsEmitted.Add(float64(stats.RecordsEmitted))
	s.meter.RowsSkipped.Add(float64(stats.RowsSkipped))

	logger.InfoContext(ctx, "report ingested",
		slog.String("date", summary.Date),
		slog.Int("rows_seen", summary.RowsSeen),
		slog.Int("rows_skipped", summary.RowsSkipped),
		slog.Int("metrics", summary.Metrics),
		slog.Int("records_stored", summary.RecordsStored),
		slog.Int("unmapped_stores", summary.UnmappedStores))

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	return summary, nil
}

// LastSummary returns the most recent ingest summary, for the debug page.
func (s *IngestService) LastSummary() *domain.IngestSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
