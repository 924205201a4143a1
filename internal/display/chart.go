package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/aljabl/pvtstat/internal/trial"
)

// defaultBarWidth is the maximum bar length in terminal cells.
const defaultBarWidth = 40

// BarChart renders a titled horizontal bar chart. Bars are scaled to the
// largest value; a zero or absent maximum renders empty bars. Labels are
// padded to a common width so bars align.
func BarChart(title string, labels []string, values []float64, colorOutput bool) []string {
	if len(labels) == 0 || len(labels) != len(values) {
		return nil
	}

	if colorOutput {
		title = color.New(color.Bold).Sprint(title)
	}
	lines := []string{title}

	labelWidth := 0
	for _, label := range labels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}

	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	for i, label := range labels {
		barLen := 0
		if max > 0 && values[i] > 0 {
			barLen = int(values[i] / max * defaultBarWidth)
			if barLen == 0 {
				barLen = 1 // non-zero values stay visible
			}
		}

		bar := strings.Repeat("█", barLen)
		if colorOutput {
			bar = color.New(color.FgCyan).Sprint(bar)
		}

		lines = append(lines, fmt.Sprintf("  %-*s %s %.2f", labelWidth, label, bar, values[i]))
	}

	return lines
}

// ConditionCharts renders the three per-condition charts the collection
// protocol calls for: mean RT, total commissions and total lapses.
// Conditions without a computed mean chart as zero.
func ConditionCharts(conditions []trial.ConditionSummary, colorOutput bool) []string {
	if len(conditions) == 0 {
		return nil
	}

	labels := make([]string, len(conditions))
	means := make([]float64, len(conditions))
	commissions := make([]float64, len(conditions))
	lapses := make([]float64, len(conditions))
	for i, c := range conditions {
		labels[i] = c.Condition
		if c.MeanOfMeans.Computed {
			means[i] = c.MeanOfMeans.Value
		}
		commissions[i] = c.TotalCommissions
		lapses[i] = c.TotalLapses
	}

	lines := BarChart("Mean Reaction Time by Condition (ms)", labels, means, colorOutput)
	lines = append(lines, "")
	lines = append(lines, BarChart("Total Commissions by Condition", labels, commissions, colorOutput)...)
	lines = append(lines, "")
	lines = append(lines, BarChart("Total Lapses by Condition", labels, lapses, colorOutput)...)

	return lines
}
