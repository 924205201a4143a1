package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aljabl/pvtstat/internal/trial"
)

func TestBarChartScaling(t *testing.T) {
	lines := BarChart("Mean RT", []string{"a1", "b1"}, []float64{200, 400}, false)

	require.Len(t, lines, 3)
	assert.Equal(t, "Mean RT", lines[0])

	// The largest value gets the full bar; half the value gets half the bar.
	longBar := strings.Count(lines[2], "█")
	shortBar := strings.Count(lines[1], "█")
	assert.Equal(t, defaultBarWidth, longBar)
	assert.Equal(t, defaultBarWidth/2, shortBar)

	assert.Contains(t, lines[1], "a1")
	assert.Contains(t, lines[1], "200.00")
}

func TestBarChartZeroValues(t *testing.T) {
	lines := BarChart("Commissions", []string{"a1", "b1"}, []float64{0, 0}, false)

	require.Len(t, lines, 3)
	assert.NotContains(t, lines[1], "█")
	assert.NotContains(t, lines[2], "█")
}

func TestBarChartSmallNonZeroStaysVisible(t *testing.T) {
	lines := BarChart("Lapses", []string{"a1", "b1"}, []float64{1, 1000}, false)

	assert.Equal(t, 1, strings.Count(lines[1], "█"))
}

func TestBarChartMismatchedInput(t *testing.T) {
	assert.Nil(t, BarChart("x", []string{"a"}, []float64{1, 2}, false))
	assert.Nil(t, BarChart("x", nil, nil, false))
}

func TestConditionCharts(t *testing.T) {
	conditions := []trial.ConditionSummary{
		{
			Condition:        "a1",
			FileCount:        2,
			MeanOfMeans:      trial.NewMeasure(250, 2),
			TotalCommissions: 5,
			TotalLapses:      2,
		},
		{
			Condition:   "b1",
			FileCount:   1,
			MeanOfMeans: trial.Measure{}, // no valid rows, charts as zero
		},
	}

	lines := ConditionCharts(conditions, false)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "Mean Reaction Time by Condition (ms)")
	assert.Contains(t, joined, "Total Commissions by Condition")
	assert.Contains(t, joined, "Total Lapses by Condition")
	assert.Contains(t, joined, "a1")
	assert.Contains(t, joined, "b1")
}

func TestConditionChartsEmpty(t *testing.T) {
	assert.Nil(t, ConditionCharts(nil, false))
}
