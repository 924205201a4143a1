package trial

import (
	"errors"
	"fmt"
)

// Sentinel errors for directory scanning failures. Both abort a run before
// any file is processed; wrap them with the offending path via %w.
var (
	// ErrNotFound indicates the requested path does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrNotADirectory indicates the requested path exists but is not a directory.
	ErrNotADirectory = errors.New("path is not a directory")
)

// MalformedRowError reports a data line that cannot be parsed into a trial
// row. It carries the source file and 1-based line number so callers can
// decide whether to abort the run or skip the file and report the location.
type MalformedRowError struct {
	File   string
	Line   int
	Reason string
}

// Error implements the error interface.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s:%d: malformed row: %s", e.File, e.Line, e.Reason)
}

// AsMalformedRow returns the MalformedRowError wrapped in err, if any.
func AsMalformedRow(err error) (*MalformedRowError, bool) {
	var mre *MalformedRowError
	if errors.As(err, &mre) {
		return mre, true
	}
	return nil, false
}
