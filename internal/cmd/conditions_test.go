package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studyRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	fixtures := map[string]string{
		"a1": "1 0 200 200.0 1 0\n2 0 300 250.0 0 1\n",
		"b1": "1 0 400 400.0 2 0\n",
		"a2": "1 0 50 50.0 3 0\n", // no valid rows
	}
	for cond, content := range fixtures {
		condDir := filepath.Join(root, cond)
		require.NoError(t, os.Mkdir(condDir, 0755))
		writeDataFile(t, condDir, "s1.txt", content)
	}

	return root
}

func TestConditionsCommandFlags(t *testing.T) {
	cmd := NewConditionsCommand()

	assert.Equal(t, "conditions <root>", cmd.Use)
	for _, flag := range []string{"lenient", "skip-bad-files", "format", "output", "no-history", "charts"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %s should exist", flag)
	}
	assert.Equal(t, "true", cmd.Flags().Lookup("charts").DefValue)
}

func TestConditionsTableOutput(t *testing.T) {
	out, _, err := execute(t, "conditions", studyRoot(t), "--no-history")
	require.NoError(t, err)

	assert.Contains(t, out, "CONDITION")

	// Default condition order: a1, b1, a2.
	a1 := strings.Index(out, "a1")
	b1 := strings.Index(out, "b1")
	a2 := strings.Index(out, "a2")
	require.True(t, a1 >= 0 && b1 >= 0 && a2 >= 0)
	assert.Less(t, a1, b1)
	assert.Less(t, b1, a2)

	// Condition with no valid rows shows the sentinel, not zero.
	assert.Contains(t, out, "n/a")

	// Charts are on by default.
	assert.Contains(t, out, "Mean Reaction Time by Condition (ms)")
	assert.Contains(t, out, "Total Commissions by Condition")
}

func TestConditionsNoCharts(t *testing.T) {
	out, _, err := execute(t, "conditions", studyRoot(t), "--charts=false", "--no-history")
	require.NoError(t, err)

	assert.Contains(t, out, "CONDITION")
	assert.NotContains(t, out, "Mean Reaction Time by Condition")
}

func TestConditionsCSVOutput(t *testing.T) {
	out, _, err := execute(t, "conditions", studyRoot(t), "--format", "csv", "--no-history")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header + three conditions
	assert.True(t, strings.HasPrefix(lines[1], "a1,1,250.00,1,"), "got %q", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "b1,1,400.00,2,"), "got %q", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "a2,1,,3,"), "got %q", lines[3])
}

func TestConditionsJSONOutput(t *testing.T) {
	out, _, err := execute(t, "conditions", studyRoot(t), "--format", "json", "--no-history")
	require.NoError(t, err)

	assert.Contains(t, out, `"condition": "a1"`)
	assert.Contains(t, out, `"mean_of_means": null`)
	// Pooled aggregate across all conditions: {200, 300, 400}.
	assert.Contains(t, out, `"valid_count": 3`)
}

func TestConditionsMissingRoot(t *testing.T) {
	_, _, err := execute(t, "conditions", filepath.Join(t.TempDir(), "missing"), "--no-history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path not found")
}

func TestConditionsEmptyRoot(t *testing.T) {
	out, _, err := execute(t, "conditions", t.TempDir(), "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "No condition directories found")
}

func TestConditionsMalformedRowNamesCondition(t *testing.T) {
	root := t.TempDir()
	condDir := filepath.Join(root, "a1")
	require.NoError(t, os.Mkdir(condDir, 0755))
	writeDataFile(t, condDir, "bad.txt", "1 0 oops 0.0 0 0\n")

	_, _, err := execute(t, "conditions", root, "--no-history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "condition a1")
	assert.Contains(t, err.Error(), "bad.txt:1")
}
