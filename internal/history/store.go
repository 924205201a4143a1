// Package history persists a record of each analysis run in a SQLite
// database so earlier results can be listed and compared.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aljabl/pvtstat/internal/filelock"
	"github.com/aljabl/pvtstat/internal/trial"
)

//go:embed schema.sql
var schemaSQL string

// RunRecord is one recorded analysis run.
type RunRecord struct {
	ID              string
	RecordedAt      time.Time
	RootDir         string
	Mode            string // "analyze" or "conditions"
	FileCount       int
	RowCount        int
	ValidCount      int
	CommissionCount int
	LapseCount      int
	MeanRT          trial.Measure
	StdDevRT        trial.Measure
}

// Store manages the SQLite database of recorded runs.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a Store and initializes the database schema.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks held by
	// concurrent runs instead of failing immediately.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a SQL statement with exponential backoff on
// "database is locked" errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun inserts a run record, assigning a UUID when the record has no ID.
// An advisory file lock guards the insert against concurrent runs sharing
// the same database file.
func (s *Store) RecordRun(ctx context.Context, run *RunRecord) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.RecordedAt.IsZero() {
		run.RecordedAt = time.Now().UTC()
	}

	if s.dbPath != ":memory:" {
		lock := filelock.NewFileLock(s.dbPath + ".lock")
		if err := lock.Lock(); err != nil {
			return err
		}
		defer lock.Unlock()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, recorded_at, root_dir, mode, file_count, row_count,
			valid_count, commission_count, lapse_count, mean_rt, stddev_rt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.RecordedAt, run.RootDir, run.Mode,
		run.FileCount, run.RowCount, run.ValidCount,
		run.CommissionCount, run.LapseCount,
		measureToNull(run.MeanRT), measureToNull(run.StdDevRT))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, recorded_at, root_dir, mode, file_count, row_count,
		valid_count, commission_count, lapse_count, mean_rt, stddev_rt
		FROM runs ORDER BY recorded_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunRecord, 0)
	for rows.Next() {
		var run RunRecord
		var mean, stddev sql.NullFloat64
		if err := rows.Scan(&run.ID, &run.RecordedAt, &run.RootDir, &run.Mode,
			&run.FileCount, &run.RowCount, &run.ValidCount,
			&run.CommissionCount, &run.LapseCount, &mean, &stddev); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.MeanRT = nullToMeasure(mean, run.ValidCount)
		run.StdDevRT = nullToMeasure(stddev, run.ValidCount)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Clear deletes all recorded runs and returns the number removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return result.RowsAffected()
}

func measureToNull(m trial.Measure) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Computed}
}

func nullToMeasure(n sql.NullFloat64, sampleSize int) trial.Measure {
	if !n.Valid {
		return trial.Measure{}
	}
	return trial.NewMeasure(n.Float64, sampleSize)
}
