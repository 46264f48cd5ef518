package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jobharvest/pkg/models"
	"jobharvest/pkg/schema"
)

const timestampLayout = "2006-01-02T15:04:05"

// WriteCSV writes the collected rows to a timestamped file under dir and
// returns the path. Rows go to a temp file first and the final name appears
// only after a complete flush, so a failed write never leaves a partial
// output file behind.
func WriteCSV(dir, source string, rows []models.JobRecord, scrapedAt time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("jobs_%s_%s.csv", source, scrapedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.CreateTemp(dir, name+".tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := f.Name()
	cleanup := func() {
		f.Close()
		os.Remove(tmpPath)
	}

	w := csv.NewWriter(f)
	if err := w.Write(schema.Columns); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	stamp := scrapedAt.Format(timestampLayout)
	for _, rec := range rows {
		if err := w.Write(schema.Row(rec, stamp)); err != nil {
			cleanup()
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to flush output: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close output file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize output file: %w", err)
	}
	return path, nil
}
