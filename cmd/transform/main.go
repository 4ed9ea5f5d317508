package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"surveyetl/internal/config"
	"surveyetl/internal/exporter"
	"surveyetl/internal/infrastructure"
	"surveyetl/internal/report"
)

func main() {
	inDir := flag.String("in", "data/raw", "input directory with .csv and .xlsx survey exports")
	outDir := flag.String("out", "data/exports", "output directory for normalized CSV files")
	fallbackDate := flag.String("fallback-date", "", "date (M/D/YYYY or YYYY-MM-DD) used when a report title has no date range")
	workers := flag.Int("workers", 4, "number of files to process concurrently")
	flag.Parse()

	logger, err := infrastructure.InitializeLogger(config.LoggingConfig{
		Level:  "info",
		Output: "stdout",
	})
	if err != nil {
		slog.Error("failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}

	files, err := listReportFiles(*inDir)
	if err != nil {
		logger.Error("failed to scan input directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Info("no report files found", slog.String("dir", *inDir))
		return
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("failed to create output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(*outDir)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return processFile(logger, writer, file, *fallbackDate)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("transform run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("transform run complete", slog.Int("files", len(files)))
}

// listReportFiles returns the .csv and .xlsx files directly under dir.
func listReportFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// processFile transforms one export and writes the normalized records next
// to the other outputs, named by report date.
func processFile(logger *slog.Logger, writer *exporter.CSVWriter, path, fallbackDate string) error {
	raw, err := loadReport(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	dateInfo, records, stats, err := report.Transform(raw, fallbackDate)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	outName := report.CanonicalDate(dateInfo.StartDate) + ".csv"
	if err := writer.WriteRecords(outName, records); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logger.Info("file transformed",
		slog.String("file", filepath.Base(path)),
		slog.String("date", dateInfo.StartDate),
		slog.Int("rows_seen", stats.RowsSeen),
		slog.Int("rows_skipped", stats.RowsSkipped),
		slog.Int("records", stats.RecordsEmitted),
		slog.String("output", outName))
	return nil
}

// loadReport reads a raw export, flattening workbooks into CSV text.
func loadReport(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return report.LoadWorkbook(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
