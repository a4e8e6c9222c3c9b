package repositories

import (
	"encoding/json"
	"fmt"
	"os"

	"linkscraper/domain"
)

type ReportWriter interface {
	Write(results []domain.ScrapeResult) error
}

// FileReportWriter persists the run report as one indented JSON
// document at a fixed path, overwriting any previous run.
type FileReportWriter struct {
	path string
}

func NewFileReportWriter(path string) *FileReportWriter {
	return &FileReportWriter{path: path}
}

func (w *FileReportWriter) Write(results []domain.ScrapeResult) error {
	// Every link field serializes as a list, never null.
	out := make([]domain.ScrapeResult, len(results))
	copy(out, results)
	for i := range out {
		if out[i].Links == nil {
			out[i].Links = []string{}
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing report: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", w.path, err)
	}
	return nil
}
