package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aljabl/pvtstat/internal/trial"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := &RunRecord{
		RecordedAt:      time.Now().UTC().Add(-time.Hour),
		RootDir:         "/data/a1",
		Mode:            "analyze",
		FileCount:       2,
		RowCount:        20,
		ValidCount:      15,
		CommissionCount: 3,
		LapseCount:      2,
		MeanRT:          trial.NewMeasure(245.5, 15),
		StdDevRT:        trial.NewMeasure(61.2, 15),
	}
	newer := &RunRecord{
		RecordedAt: time.Now().UTC(),
		RootDir:    "/data",
		Mode:       "conditions",
		FileCount:  8,
		RowCount:   80,
		ValidCount: 70,
	}

	require.NoError(t, store.RecordRun(ctx, older))
	require.NoError(t, store.RecordRun(ctx, newer))

	// IDs are assigned when absent.
	assert.NotEmpty(t, older.ID)
	assert.NotEmpty(t, newer.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, "conditions", runs[0].Mode)
	assert.Equal(t, older.ID, runs[1].ID)
	assert.InDelta(t, 245.5, runs[1].MeanRT.Value, 1e-9)
	assert.True(t, runs[1].StdDevRT.Computed)
}

func TestRecordRunNilMeasures(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := &RunRecord{RootDir: "/data/empty", Mode: "analyze"}
	require.NoError(t, store.RecordRun(ctx, run))

	runs, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	// Uncomputed measures round-trip as absent, never zero.
	assert.False(t, runs[0].MeanRT.Computed)
	assert.False(t, runs[0].StdDevRT.Computed)
}

func TestListRunsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := &RunRecord{
			RecordedAt: time.Now().UTC().Add(time.Duration(i) * time.Minute),
			RootDir:    "/data",
			Mode:       "analyze",
		}
		require.NoError(t, store.RecordRun(ctx, run))
	}

	runs, err := store.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, &RunRecord{RootDir: "/data", Mode: "analyze"}))
	require.NoError(t, store.RecordRun(ctx, &RunRecord{RootDir: "/data", Mode: "analyze"}))

	removed, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecordRunNil(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.RecordRun(context.Background(), nil))
}

func TestNewStoreCreatesParentDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deep", "history.db")
	store, err := NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.RecordRun(context.Background(), &RunRecord{RootDir: "/x", Mode: "analyze"}))
}
