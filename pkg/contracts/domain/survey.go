package domain

// SurveyRecord is the normalized output unit of the transformation engine:
// one record per (store row, metric, score bucket).
//
// ResponsePercent is a true percentage in [0,100]. ResponseCount is
// reconstructed as round(TotalResponses * ResponsePercent / 100), rounding
// half away from zero. The vendor export only carries the percentage; the
// count is always derived.
type SurveyRecord struct {
	StoreLocation  string  `json:"store_location" db:"store_location" validate:"required"`
	StoreID        int64   `json:"store_id,omitempty" db:"store_id"`
	Date           string  `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	MetricName     string  `json:"metric_name" db:"metric_name" validate:"required"`
	Question       string  `json:"question" db:"question"`
	Score          int     `json:"score" db:"score" validate:"required,min=1,max=5"`
	ResponsePercent float64 `json:"response_percent" db:"response_percent"`
	ResponseCount  int     `json:"response_count" db:"response_count"`
	TotalResponses float64 `json:"total_responses" db:"total_responses"`
}

// DateInfo carries the reporting period recovered from a report title line,
// in the title's original formatting. The canonical YYYY-MM-DD form used for
// storage is derived separately.
type DateInfo struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Display   string `json:"display"`
}

// Store is one row of the store reference table used for identity resolution.
type Store struct {
	ID          int64  `json:"id" db:"id"`
	StoreNumber string `json:"store_number" db:"store_number" validate:"required"`
	Name        string `json:"name" db:"name" validate:"required"`
}

// IngestSummary is what the service reports back for one processed export.
type IngestSummary struct {
	BatchID        string   `json:"batch_id"`
	Date           string   `json:"date"`
	DateInfo       DateInfo `json:"date_info"`
	RowsSeen       int      `json:"rows_seen"`
	RowsSkipped    int      `json:"rows_skipped"`
	Metrics        int      `json:"metrics"`
	RecordsEmitted int      `json:"records_emitted"`
	RecordsStored  int      `json:"records_stored"`
	UnmappedStores int      `json:"unmapped_stores"`
	UnmappedLabels []string `json:"unmapped_labels,omitempty"`
}
