// Package display renders analysis results for the terminal: plain-text
// tables and horizontal bar charts, colorized when stdout is a TTY.
package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/aljabl/pvtstat/internal/trial"
)

// FormatFileTable formats per-file summaries as aligned table rows,
// including a header line and separator.
func FormatFileTable(files []trial.FileSummary, colorOutput bool) []string {
	if len(files) == 0 {
		return []string{"No data files found"}
	}

	header := []string{"SOURCE FILE", "ROWS", "VALID", "COMMISSIONS", "LAPSES", "MEAN RT", "STD DEV"}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.SourceFile,
			fmt.Sprintf("%d", f.RowCount),
			fmt.Sprintf("%d", f.ValidCount),
			fmt.Sprintf("%d", f.CommissionCount),
			fmt.Sprintf("%d", f.LapseCount),
			f.MeanRT.String(),
			f.StdDevRT.String(),
		})
	}

	return renderTable(header, rows, colorOutput)
}

// FormatAggregate formats the pooled run summary as labeled lines.
func FormatAggregate(agg trial.AggregateSummary, colorOutput bool) []string {
	title := "Aggregate (pooled over all valid RTs)"
	if colorOutput {
		title = color.New(color.FgCyan, color.Bold).Sprint(title)
	}

	return []string{
		title,
		fmt.Sprintf("  Files:        %d", agg.FileCount),
		fmt.Sprintf("  Rows:         %d", agg.RowCount),
		fmt.Sprintf("  Valid:        %d", agg.ValidCount),
		fmt.Sprintf("  Commissions:  %d", agg.CommissionCount),
		fmt.Sprintf("  Lapses:       %d", agg.LapseCount),
		fmt.Sprintf("  Mean RT:      %s ms", agg.MeanRT),
		fmt.Sprintf("  Std dev:      %s ms", agg.StdDevRT),
	}
}

// FormatConditionTable formats condition summaries as aligned table rows.
func FormatConditionTable(conditions []trial.ConditionSummary, colorOutput bool) []string {
	if len(conditions) == 0 {
		return []string{"No condition directories found"}
	}

	header := []string{"CONDITION", "FILES", "MEAN RT", "COMMISSIONS", "MEAN COMM", "LAPSES", "MEAN LAPSES"}
	rows := make([][]string, 0, len(conditions))
	for _, c := range conditions {
		rows = append(rows, []string{
			c.Condition,
			fmt.Sprintf("%d", c.FileCount),
			c.MeanOfMeans.String(),
			fmt.Sprintf("%.0f", c.TotalCommissions),
			c.MeanCommissions.String(),
			fmt.Sprintf("%.0f", c.TotalLapses),
			c.MeanLapses.String(),
		})
	}

	return renderTable(header, rows, colorOutput)
}

// renderTable pads every column to its widest cell and joins with two spaces.
func renderTable(header []string, rows [][]string, colorOutput bool) []string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	lines := make([]string, 0, len(rows)+2)

	headerLine := joinRow(header, widths)
	if colorOutput {
		headerLine = color.New(color.Bold).Sprint(headerLine)
	}
	lines = append(lines, headerLine)
	lines = append(lines, strings.Repeat("-", lineWidth(widths)))

	for _, row := range rows {
		lines = append(lines, joinRow(row, widths))
	}

	return lines
}

func joinRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func lineWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total + 2*(len(widths)-1)
}
