package report

import (
	"fmt"
	"math"
	"strings"

	"surveyetl/pkg/contracts/domain"
)

// headerLeakMarker flags data rows that are really a repeated header row.
// Vendor exports occasionally splice the header back in mid-file.
const headerLeakMarker = "store id"

// minReportLines is the structural minimum: title, two header rows, and at
// least one data row.
const minReportLines = 4

// FormatError reports a structural problem with the export itself. It is the
// only error class the engine raises; everything below the structural level
// defaults leniently instead of failing.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "report format: " + e.Reason
}

// Stats carries the diagnostic counts for one Transform call.
type Stats struct {
	RowsSeen       int `json:"rows_seen"`
	RowsSkipped    int `json:"rows_skipped"`
	Metrics        int `json:"metrics"`
	RecordsEmitted int `json:"records_emitted"`
}

// Transform converts one raw survey export into its normalized record set.
//
// The export's required shape: line 0 a title with an embedded
// "M/D/YYYY - M/D/YYYY" period, lines 1 and 2 the composite header, lines 3+
// the data rows with the store label in column 0. fallbackDate, when
// non-empty, is used if the title yields no period; M/D/YYYY and YYYY-MM-DD
// are both accepted and canonicalized to YYYY-MM-DD on the emitted records.
// The emitted order is a contract consumers group by: row outer,
// metric middle, score 5,4,3,2,1 inner.
//
// Score cells are treated as true percentages in [0,100]; each response
// count is reconstructed as round(total * percent / 100), half away from
// zero. Transform is deterministic: the same input always produces the same
// output.
func Transform(raw, fallbackDate string) (domain.DateInfo, []domain.SurveyRecord, Stats, error) {
	lines := splitLines(raw)
	if len(lines) < minReportLines {
		return domain.DateInfo{}, nil, Stats{}, &FormatError{
			Reason: fmt.Sprintf("expected at least %d non-blank lines (title, two header rows, data), got %d", minReportLines, len(lines)),
		}
	}

	dateInfo, ok := ExtractDateRange(lines[0])
	if !ok {
		if fallbackDate == "" {
			return domain.DateInfo{}, nil, Stats{}, &FormatError{
				Reason: "no date range in title line and no fallback date supplied",
			}
		}
		dateInfo = domain.DateInfo{StartDate: fallbackDate, EndDate: fallbackDate, Display: fallbackDate}
	}
	date := CanonicalDate(dateInfo.StartDate)

	metrics := ParseHeader(lines[1], lines[2])

	var (
		stats   = Stats{Metrics: len(metrics)}
		records []domain.SurveyRecord
	)
	for _, line := range lines[3:] {
		stats.RowsSeen++
		row := splitCells(line)
		label := row[0]
		if label == "" || strings.Contains(strings.ToLower(label), headerLeakMarker) {
			stats.RowsSkipped++
			continue
		}

		for _, m := range metrics {
			total := CleanValue(cellAt(row, m.ResponseCountCol))
			for _, score := range []int{5, 4, 3, 2, 1} {
				percent := CleanValue(cellAt(row, m.ScoreCols[score]))
				records = append(records, domain.SurveyRecord{
					StoreLocation:   label,
					Date:            date,
					MetricName:      m.Name,
					Question:        m.Name,
					Score:           score,
					ResponsePercent: percent,
					ResponseCount:   int(math.Round(total * percent / 100)),
					TotalResponses:  total,
				})
			}
		}
	}
	stats.RecordsEmitted = len(records)

	return dateInfo, records, stats, nil
}

// splitLines normalizes line endings and drops blank lines.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
