package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadWorkbook reads a survey export shipped as an Excel workbook and
// flattens it into the comma-delimited text shape Transform consumes.
//
// The vendor's workbook exports carry the same layout as the CSV: title line,
// two header rows, data rows. Sheet discovery mirrors the text contract: the
// first sheet whose leading rows contain the embedded date-range token wins,
// falling back to the first non-empty sheet so an undateable workbook still
// reaches Transform (where the fallback-date rule applies).
func LoadWorkbook(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var fallback [][]string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if fallback == nil {
			fallback = rows
		}
		for i := 0; i < len(rows) && i < 3; i++ {
			if _, ok := ExtractDateRange(strings.Join(rows[i], " ")); ok {
				return flattenRows(rows), nil
			}
		}
	}

	if fallback == nil {
		return "", fmt.Errorf("workbook %s has no non-empty sheets", path)
	}
	return flattenRows(fallback), nil
}

// flattenRows joins workbook cells back into the engine's line-oriented
// comma-delimited form.
func flattenRows(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}
