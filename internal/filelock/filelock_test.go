package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, AtomicWrite(path, []byte("a,b,c\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n", string(data))

	// Overwrite replaces the content completely.
	require.NoError(t, AtomicWrite(path, []byte("x\n")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}

func TestAtomicWriteCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "report.json")

	require.NoError(t, AtomicWrite(path, []byte("{}")))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, AtomicWrite(filepath.Join(dir, "out.txt"), []byte("data")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.txt", entries[0].Name())
}

func TestFileLockTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "db.lock")

	first := NewFileLock(lockPath)
	acquired, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)
	require.NoError(t, first.Unlock())

	// Lock is reacquirable once released.
	second := NewFileLock(lockPath)
	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, second.Unlock())
}

func TestLockAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")

	require.NoError(t, LockAndWrite(path, []byte("run\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "run\n", string(data))
}
