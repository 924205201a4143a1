// Package exporter renders analysis reports in structured formats (JSON,
// CSV, Markdown, HTML) and writes them to disk atomically.
package exporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aljabl/pvtstat/internal/filelock"
	"github.com/aljabl/pvtstat/internal/trial"
)

// Exporter defines the interface for exporting analysis results.
type Exporter interface {
	ExportReport(report *trial.Report) (string, error)
	ExportConditions(report *trial.ConditionReport) (string, error)
}

// NormalizeFormat lowercases a format name and resolves aliases.
func NormalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "md" {
		format = "markdown"
	}
	switch format {
	case "json", "csv", "markdown", "html":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, csv, markdown, html)", format)
	}
}

// New returns the exporter for a normalized format name.
func New(format string) (Exporter, error) {
	normalized, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	switch normalized {
	case "json":
		return &JSONExporter{Pretty: true}, nil
	case "csv":
		return &CSVExporter{}, nil
	case "markdown":
		return &MarkdownExporter{}, nil
	default:
		return &HTMLExporter{}, nil
	}
}

// ExportReportToString renders a directory report in the given format.
func ExportReportToString(report *trial.Report, format string) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}
	e, err := New(format)
	if err != nil {
		return "", err
	}
	return e.ExportReport(report)
}

// ExportConditionsToString renders a condition report in the given format.
func ExportConditionsToString(report *trial.ConditionReport, format string) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}
	e, err := New(format)
	if err != nil {
		return "", err
	}
	return e.ExportConditions(report)
}

// WriteFile writes rendered content to path atomically so a crashed run
// never leaves a truncated report behind.
func WriteFile(path, content string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	return filelock.AtomicWrite(path, []byte(content))
}

// JSONExporter exports reports as JSON. Uncomputed measures become null.
type JSONExporter struct {
	Pretty bool
}

// ExportReport converts a directory report to JSON.
func (je *JSONExporter) ExportReport(report *trial.Report) (string, error) {
	return je.marshal(report)
}

// ExportConditions converts a condition report to JSON.
func (je *JSONExporter) ExportConditions(report *trial.ConditionReport) (string, error) {
	return je.marshal(report)
}

func (je *JSONExporter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error
	if je.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// CSVExporter exports reports as CSV.
type CSVExporter struct{}

// ExportReport converts a directory report to CSV: one row per file plus a
// trailing aggregate row.
func (ce *CSVExporter) ExportReport(report *trial.Report) (string, error) {
	var sb strings.Builder

	sb.WriteString("source_file,row_count,valid_count,commission_count,lapse_count,mean_rt,std_dev_rt\n")
	for _, f := range report.Files {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%d,%d,%s,%s\n",
			escapeCSV(f.SourceFile), f.RowCount, f.ValidCount,
			f.CommissionCount, f.LapseCount,
			csvMeasure(f.MeanRT), csvMeasure(f.StdDevRT)))
	}

	agg := report.Aggregate
	sb.WriteString(fmt.Sprintf("%s,%d,%d,%d,%d,%s,%s\n",
		"TOTAL", agg.RowCount, agg.ValidCount,
		agg.CommissionCount, agg.LapseCount,
		csvMeasure(agg.MeanRT), csvMeasure(agg.StdDevRT)))

	return sb.String(), nil
}

// ExportConditions converts a condition report to CSV.
func (ce *CSVExporter) ExportConditions(report *trial.ConditionReport) (string, error) {
	var sb strings.Builder

	sb.WriteString("condition,file_count,mean_of_means,total_commissions,mean_commissions,total_lapses,mean_lapses\n")
	for _, c := range report.Conditions {
		sb.WriteString(fmt.Sprintf("%s,%d,%s,%.0f,%s,%.0f,%s\n",
			escapeCSV(c.Condition), c.FileCount, csvMeasure(c.MeanOfMeans),
			c.TotalCommissions, csvMeasure(c.MeanCommissions),
			c.TotalLapses, csvMeasure(c.MeanLapses)))
	}

	return sb.String(), nil
}

// csvMeasure renders a measure as a CSV cell, empty when absent.
func csvMeasure(m trial.Measure) string {
	if !m.Computed {
		return ""
	}
	return fmt.Sprintf("%.2f", m.Value)
}

// escapeCSV escapes special characters in CSV fields.
func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		s = strings.ReplaceAll(s, "\"", "\"\"")
		return "\"" + s + "\""
	}
	return s
}

// MarkdownExporter exports reports as Markdown.
// Timestamps are off by default so identical input renders identical output.
type MarkdownExporter struct {
	IncludeTimestamp bool
}

// ExportReport converts a directory report to Markdown.
func (me *MarkdownExporter) ExportReport(report *trial.Report) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Reaction Time Report\n\n")
	me.writeHeader(&sb, report.Root)

	sb.WriteString("## Files\n\n")
	sb.WriteString("| Source File | Rows | Valid | Commissions | Lapses | Mean RT | Std Dev |\n")
	sb.WriteString("|-------------|------|-------|-------------|--------|---------|--------|\n")
	for _, f := range report.Files {
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %s | %s |\n",
			f.SourceFile, f.RowCount, f.ValidCount, f.CommissionCount,
			f.LapseCount, f.MeanRT, f.StdDevRT))
	}
	sb.WriteString("\n")

	agg := report.Aggregate
	sb.WriteString("## Aggregate\n\n")
	sb.WriteString(fmt.Sprintf("- **Files**: %d\n", agg.FileCount))
	sb.WriteString(fmt.Sprintf("- **Rows**: %d\n", agg.RowCount))
	sb.WriteString(fmt.Sprintf("- **Valid**: %d\n", agg.ValidCount))
	sb.WriteString(fmt.Sprintf("- **Commissions**: %d\n", agg.CommissionCount))
	sb.WriteString(fmt.Sprintf("- **Lapses**: %d\n", agg.LapseCount))
	sb.WriteString(fmt.Sprintf("- **Pooled Mean RT**: %s ms\n", agg.MeanRT))
	sb.WriteString(fmt.Sprintf("- **Pooled Std Dev**: %s ms\n", agg.StdDevRT))

	return sb.String(), nil
}

// ExportConditions converts a condition report to Markdown.
func (me *MarkdownExporter) ExportConditions(report *trial.ConditionReport) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Condition Report\n\n")
	me.writeHeader(&sb, report.Root)

	sb.WriteString("| Condition | Files | Mean RT | Commissions (total/mean) | Lapses (total/mean) |\n")
	sb.WriteString("|-----------|-------|---------|--------------------------|---------------------|\n")
	for _, c := range report.Conditions {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %.0f / %s | %.0f / %s |\n",
			c.Condition, c.FileCount, c.MeanOfMeans,
			c.TotalCommissions, c.MeanCommissions,
			c.TotalLapses, c.MeanLapses))
	}

	return sb.String(), nil
}

func (me *MarkdownExporter) writeHeader(sb *strings.Builder, root string) {
	sb.WriteString(fmt.Sprintf("**Directory**: `%s`\n\n", root))
	if me.IncludeTimestamp {
		sb.WriteString(fmt.Sprintf("**Generated**: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	}
}
