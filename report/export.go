package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/bandwidth"
)

// Purpose: Write the aggregate as CSV, one row per month.
// Key aspects: Bytes are exported exactly, never humanized, so spreadsheets
// can sum them. Rows keep the chronological order of the aggregate.
// Upstream: Generate.
// Downstream: encoding/csv.
func WriteCSV(path string, agg Aggregate) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create csv: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Year-Month", "Bandwidth (Bytes)"}); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: write csv header: %w", err)
	}
	for _, e := range agg.Entries {
		if err := w.Write([]string{e.Period.Key(), strconv.FormatInt(e.Bytes, 10)}); err != nil {
			_ = f.Close()
			return fmt.Errorf("report: write csv row %s: %w", e.Period.Key(), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close csv: %w", err)
	}
	return nil
}

type jsonEntry struct {
	Period string `json:"period"`
	Bytes  int64  `json:"bytes"`
	Human  string `json:"human"`
}

// Purpose: Write the aggregate as JSON for downstream tooling.
// Key aspects: Ensures destination directory exists; writes indented JSON
// with both exact bytes and the human-readable size.
// Upstream: Generate, when a JSON path is configured.
// Downstream: os.WriteFile, json.MarshalIndent.
func WriteJSON(path string, agg Aggregate) error {
	entries := make([]jsonEntry, 0, len(agg.Entries))
	for _, e := range agg.Entries {
		entries = append(entries, jsonEntry{
			Period: e.Period.Key(),
			Bytes:  e.Bytes,
			Human:  bandwidth.Format(e.Bytes),
		})
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal json: %w", err)
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("report: write json: %w", err)
	}
	return nil
}
