package trial

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureMarshalJSON(t *testing.T) {
	computed, err := json.Marshal(NewMeasure(123.45, 10))
	require.NoError(t, err)
	assert.Equal(t, "123.45", string(computed))

	absent, err := json.Marshal(Measure{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(absent))
}

func TestMeasureUnmarshalJSON(t *testing.T) {
	var m Measure
	require.NoError(t, json.Unmarshal([]byte("200.5"), &m))
	assert.True(t, m.Computed)
	assert.Equal(t, 200.5, m.Value)

	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.False(t, m.Computed)
}

func TestFileSummaryJSONRoundTrip(t *testing.T) {
	summary := Summarize("subject01.txt", rowsWithRTs(50, 600))

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	// Uncomputed measures serialize as null, not zero.
	assert.Contains(t, string(data), `"mean_rt":null`)
	assert.Contains(t, string(data), `"std_dev_rt":null`)

	var back FileSummary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.False(t, back.MeanRT.Computed)
	assert.Equal(t, summary.RowCount, back.RowCount)
}

func TestTrialRowValidate(t *testing.T) {
	valid := TrialRow{Trial: 1, RT: 250, Line: 1}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		row  TrialRow
	}{
		{name: "negative trial", row: TrialRow{Trial: -1, Line: 1}},
		{name: "missing line", row: TrialRow{Trial: 1}},
		{name: "negative commissions", row: TrialRow{Trial: 1, Line: 1, Commissions: -1}},
		{name: "negative lapses", row: TrialRow{Trial: 1, Line: 1, Lapses: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.row.Validate())
		})
	}
}
