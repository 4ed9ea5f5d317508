package report

import "strings"

// responseCountMarker is the sub-header cell that starts a metric's column
// group: the "n" column, immediately followed by the five score columns.
const responseCountMarker = "n"

// Metric is one survey category recovered from the composite header: the
// column holding its respondent count and, per score bucket 1..5, the column
// holding that bucket's percentage. Metrics are rebuilt fresh on every
// Transform call and never shared.
type Metric struct {
	Name             string
	ResponseCountCol int
	ScoreCols        map[int]int
}

// ParseHeader reconstructs the metric list from the two header rows.
//
// The category row names each category once, above the first column of its
// group; every following column inherits the nearest non-empty label to its
// left. That implicit propagation is made explicit here as a left-to-right
// fold carrying a current-category accumulator. A metric is recorded at each
// column whose sub-header cell is exactly the response-count marker while a
// category is active; its score columns are the next five, in the export's
// fixed 5,4,3,2,1 order.
//
// Column 0 holds the row's store label and never starts a metric. A category
// that never receives a marker yields no metric. A dangling marker near the
// end of the row still yields a metric whose trailing score columns point
// past the row's width; reads there normalize to zero.
func ParseHeader(categoryLine, subHeaderLine string) []Metric {
	categories := splitCells(categoryLine)
	subHeaders := splitCells(subHeaderLine)

	width := len(subHeaders)
	if len(categories) > width {
		width = len(categories)
	}

	var metrics []Metric
	current := ""
	for col := 1; col < width; col++ {
		if label := cellAt(categories, col); label != "" {
			current = label
		}
		if cellAt(subHeaders, col) != responseCountMarker || current == "" {
			continue
		}
		m := Metric{
			Name:             current,
			ResponseCountCol: col,
			ScoreCols:        make(map[int]int, 5),
		}
		for i, score := range []int{5, 4, 3, 2, 1} {
			m.ScoreCols[score] = col + 1 + i
		}
		metrics = append(metrics, m)
	}
	return metrics
}

// splitCells splits a report line on commas and trims each cell.
func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
