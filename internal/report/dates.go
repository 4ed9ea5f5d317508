package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"surveyetl/pkg/contracts/domain"
)

// dateRangePattern matches the period embedded in a report title line,
// e.g. "Full Scale Report: 6/26/2024 - 7/2/2024".
var dateRangePattern = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s*-\s*(\d{1,2}/\d{1,2}/\d{4})`)

// ExtractDateRange searches a report title line for two M/D/YYYY tokens
// separated by a hyphen. The second return value reports whether a range was
// found; absence is a signal for the caller to fall back to a supplied date,
// not an error.
func ExtractDateRange(title string) (domain.DateInfo, bool) {
	m := dateRangePattern.FindStringSubmatch(title)
	if m == nil {
		return domain.DateInfo{}, false
	}
	return domain.DateInfo{
		StartDate: m[1],
		EndDate:   m[2],
		Display:   m[1] + " - " + m[2],
	}, true
}

// CanonicalDate converts a date in either of the two accepted shapes to the
// canonical YYYY-MM-DD form:
//
//   - slash-delimited M/D/YYYY, month and day zero-padded on output
//   - hyphen-delimited YYYY-MM-DD, passed through field by field
//
// Any other shape is returned unchanged; the engine only ever feeds this
// function output of ExtractDateRange or an already-canonical fallback date.
func CanonicalDate(date string) string {
	date = strings.TrimSpace(date)

	if parts := strings.Split(date, "/"); len(parts) == 3 {
		month, _ := strconv.Atoi(parts[0])
		day, _ := strconv.Atoi(parts[1])
		return fmt.Sprintf("%s-%02d-%02d", parts[2], month, day)
	}

	if parts := strings.Split(date, "-"); len(parts) == 3 {
		return parts[0] + "-" + parts[1] + "-" + parts[2]
	}

	return date
}
