package http

import (
	"html/template"
	"net/http"

	"surveyetl/pkg/contracts/domain"
)

// debugTemplate renders the last ingest summary as a plain status page.
var debugTemplate = template.Must(template.New("debug").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>surveyetl - debug</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        table { border-collapse: collapse; }
        td, th { border: 1px solid #ccc; padding: 6px 12px; text-align: left; }
        .empty { color: #666; }
    </style>
</head>
<body>
    <h1>surveyetl debug</h1>
    {{if .}}
    <table>
        <tr><th>Batch</th><td>{{.BatchID}}</td></tr>
        <tr><th>Date</th><td>{{.Date}}</td></tr>
        <tr><th>Period</th><td>{{.DateInfo.Display}}</td></tr>
        <tr><th>Rows seen</th><td>{{.RowsSeen}}</td></tr>
        <tr><th>Rows skipped</th><td>{{.RowsSkipped}}</td></tr>
        <tr><th>Metrics</th><td>{{.Metrics}}</td></tr>
        <tr><th>Records emitted</th><td>{{.RecordsEmitted}}</td></tr>
        <tr><th>Records stored</th><td>{{.RecordsStored}}</td></tr>
        <tr><th>Unmapped stores</th><td>{{.UnmappedStores}}</td></tr>
    </table>
    {{if .UnmappedLabels}}
    <h2>Unmapped labels</h2>
    <ul>{{range .UnmappedLabels}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
    {{else}}
    <p class="empty">No report ingested yet.</p>
    {{end}}
</body>
</html>`))

// SummarySource exposes the last ingest summary; the ingest service
// satisfies it.
type SummarySource interface {
	LastSummary() *domain.IngestSummary
}

// DebugHandler serves the debug status page.
type DebugHandler struct {
	source SummarySource
}

// NewDebugHandler creates a new debug handler.
func NewDebugHandler(source SummarySource) *DebugHandler {
	return &DebugHandler{source: source}
}

// Page handles GET /debug.
func (h *DebugHandler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := debugTemplate.Execute(w, h.source.LastSummary()); err != nil {
		http.Error(w, "failed to render debug page", http.StatusInternalServerError)
	}
}
