package report

import (
	"strconv"
	"strings"
)

// maskToken is the vendor's suppression marker for cells below the reporting
// threshold.
const maskToken = "**"

// CleanValue normalizes a single raw cell into a numeric value.
// The mask token, the empty string, and anything that fails to parse as a
// float all become 0. Thousands separators are tolerated. This function
// never returns an error; silent defaulting is the contract the rest of the
// engine is built on.
func CleanValue(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == maskToken {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// cellAt returns the cell at idx, or the empty string when idx is outside
// the row. Short rows are common in vendor exports (trailing columns get
// dropped), and an out-of-range read has to behave like an empty cell so
// CleanValue can default it to zero.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
