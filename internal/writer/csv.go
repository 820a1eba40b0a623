package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

// CSVWriter writes an extraction report to CSV format: one row per
// metric, optionally followed by the audit trail.
type CSVWriter struct {
	IncludeAudit bool
}

// WriteToFile writes the report to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, report *models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, report)
}

// Write writes the report in CSV format to the given writer. Metric
// rows are sorted by name so output is byte-identical across runs.
func (w *CSVWriter) Write(out io.Writer, report *models.Report) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if report.PeriodMonths > 0 {
		writer.Write([]string{"# Period Months", strconv.Itoa(report.PeriodMonths)})
	}
	for _, warning := range report.Warnings {
		writer.Write([]string{"# Warning", warning})
	}

	header := []string{"Metric", "Value"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	names := make([]string, 0, len(report.Metrics))
	for name := range report.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		row := []string{name, formatValue(report.Metrics[name])}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if w.IncludeAudit && len(report.Audit) > 0 {
		writer.Write([]string{})
		if err := writer.Write([]string{"Metric", "Value", "Method", "Page", "Confidence", "Snippet"}); err != nil {
			return fmt.Errorf("failed to write audit header: %w", err)
		}
		for _, entry := range report.Audit {
			row := []string{
				entry.Metric,
				formatValue(entry.Value),
				string(entry.Method),
				strconv.Itoa(entry.Page),
				entry.Confidence,
				entry.Snippet,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write audit row: %w", err)
			}
		}
	}

	return nil
}

// WriteJSON writes the full report as indented JSON, the shape the
// dashboard layer consumes.
func WriteJSON(out io.Writer, report *models.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report JSON: %w", err)
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
