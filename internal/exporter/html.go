package exporter

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/aljabl/pvtstat/internal/trial"
)

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em auto; max-width: 60em; color: #222; }
table { border-collapse: collapse; }
th, td { border: 1px solid #bbb; padding: 0.3em 0.8em; text-align: left; }
th { background: #eee; }
code { background: #f4f4f4; padding: 0.1em 0.3em; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLExporter exports reports as standalone HTML pages. The report is first
// rendered as Markdown and then converted, so both formats always agree.
type HTMLExporter struct{}

// ExportReport converts a directory report to HTML.
func (he *HTMLExporter) ExportReport(report *trial.Report) (string, error) {
	md, err := (&MarkdownExporter{}).ExportReport(report)
	if err != nil {
		return "", err
	}
	return renderHTML("Reaction Time Report", md)
}

// ExportConditions converts a condition report to HTML.
func (he *HTMLExporter) ExportConditions(report *trial.ConditionReport) (string, error) {
	md, err := (&MarkdownExporter{}).ExportConditions(report)
	if err != nil {
		return "", err
	}
	return renderHTML("Condition Report", md)
}

// renderHTML converts Markdown to a full HTML page. The GFM table extension
// is required because the reports use pipe tables.
func renderHTML(title, markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	return fmt.Sprintf(htmlPage, title, buf.String()), nil
}
