package trial

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// columnCount is the fixed number of tokens on a data line:
// Trial, Error, RT, Average RT, Commissions, Lapses.
const columnCount = 6

// Policy controls how the parser treats malformed data lines.
type Policy int

const (
	// PolicyStrict aborts the file on the first malformed row.
	PolicyStrict Policy = iota
	// PolicyLenient skips malformed rows with a warning.
	PolicyLenient
)

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "":
		return PolicyStrict, nil
	case "lenient":
		return PolicyLenient, nil
	default:
		return PolicyStrict, fmt.Errorf("invalid policy %q, must be strict or lenient", s)
	}
}

// Logger is the subset of the console logger the parser needs.
type Logger interface {
	LogWarn(message string)
	LogDebug(message string)
}

// Parser reads whitespace-delimited trial data files.
// The zero value is a strict parser with warnings discarded.
type Parser struct {
	Policy Policy
	Logger Logger
}

// ParseFile opens and parses a single data file. The file handle is released
// on all exit paths, including parse failure.
func (p *Parser) ParseFile(path string) ([]TrialRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	return p.Parse(file, path)
}

// Parse reads trial rows from r. name identifies the source in errors and
// warnings, typically the file path.
//
// Blank lines are skipped. The first non-empty line is treated as a header
// and discarded when its first token does not parse as a number; header
// detection happens at most once per file. Every other line must have
// exactly six tokens with a numeric RT. Under PolicyStrict a malformed line
// aborts with a MalformedRowError; under PolicyLenient it is skipped with a
// warning. Values are never coerced: an unparseable token is always an
// error, never zero.
func (p *Parser) Parse(r io.Reader, name string) ([]TrialRow, error) {
	rows := make([]TrialRow, 0)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	headerChecked := false

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)

		if !headerChecked {
			headerChecked = true
			if _, err := strconv.ParseFloat(tokens[0], 64); err != nil {
				// Header line, discard once per file.
				continue
			}
		}

		row, err := parseRow(tokens, lineNum)
		if err != nil {
			mre := &MalformedRowError{File: name, Line: lineNum, Reason: err.Error()}
			if p.Policy == PolicyLenient {
				p.warn(fmt.Sprintf("skipping %v", mre))
				continue
			}
			return nil, mre
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}

	return rows, nil
}

// parseRow maps six tokens positionally onto a TrialRow.
func parseRow(tokens []string, lineNum int) (TrialRow, error) {
	if len(tokens) != columnCount {
		return TrialRow{}, fmt.Errorf("expected %d columns, got %d", columnCount, len(tokens))
	}

	trialF, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return TrialRow{}, fmt.Errorf("trial %q is not numeric", tokens[0])
	}

	errFlag, err := parseFlag(tokens[1])
	if err != nil {
		return TrialRow{}, fmt.Errorf("error flag %q is not parseable", tokens[1])
	}

	rt, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return TrialRow{}, fmt.Errorf("rt %q is not numeric", tokens[2])
	}

	avgRT, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return TrialRow{}, fmt.Errorf("average rt %q is not numeric", tokens[3])
	}

	commissions, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return TrialRow{}, fmt.Errorf("commissions %q is not numeric", tokens[4])
	}

	lapses, err := strconv.ParseFloat(tokens[5], 64)
	if err != nil {
		return TrialRow{}, fmt.Errorf("lapses %q is not numeric", tokens[5])
	}

	return TrialRow{
		Trial:       int(trialF),
		Error:       errFlag,
		RT:          rt,
		AverageRT:   avgRT,
		Commissions: commissions,
		Lapses:      lapses,
		Line:        lineNum,
	}, nil
}

// parseFlag accepts boolean literals as well as numeric flags (non-zero is true).
func parseFlag(token string) (bool, error) {
	if b, err := strconv.ParseBool(token); err == nil {
		return b, nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("not a boolean or numeric flag: %q", token)
}

func (p *Parser) warn(message string) {
	if p.Logger != nil {
		p.Logger.LogWarn(message)
	}
}
