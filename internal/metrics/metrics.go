// Package metrics holds the service's prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set bundles the counters the ingest path increments. Registering against
// an injected registry keeps tests free of global-state collisions.
type Set struct {
	ReportsIngested prometheus.Counter
	ReportsFailed   prometheus.Counter
	RecordsEmitted  prometheus.Counter
	RowsSkipped     prometheus.Counter
	UnmappedStores  prometheus.Counter
}

// New creates and registers the metric set on reg.
func New(reg prometheus.Registerer) *Set {
	factory := promauto.With(reg)
	return &Set{
		ReportsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "surveyetl_reports_ingested_total",
			Help: "Survey exports successfully transformed and stored.",
		}),
		ReportsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "surveyetl_reports_failed_total",
			Help: "Survey exports rejected for structural format errors.",
		}),
		RecordsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "surveyetl_records_emitted_total",
			Help: "Normalized records emitted by the transformation engine.",
		}),
		RowsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "surveyetl_rows_skipped_total",
			Help: "Data rows skipped for blank labels or leaked headers.",
		}),
		UnmappedStores: factory.NewCounter(prometheus.CounterOpts{
			Name: "surveyetl_unmapped_stores_total",
			Help: "Records dropped because their store label did not resolve.",
		}),
	}
}
