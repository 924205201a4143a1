package trial

import (
	"fmt"
	"path/filepath"
	"sort"
)

// AnalyzerOptions configures an Analyzer.
type AnalyzerOptions struct {
	// DataExt is the data-file extension to scan for (default ".txt").
	DataExt string
	// Policy controls malformed-row handling within a file.
	Policy Policy
	// SkipBadFiles continues past files that fail to parse under
	// PolicyStrict, logging a warning, instead of aborting the run.
	SkipBadFiles bool
	// ConditionOrder is the preferred ordering of condition keys in
	// condition mode. Unknown conditions sort after known ones.
	ConditionOrder []string
	// Logger receives warnings and progress messages. May be nil.
	Logger Logger
}

// Analyzer runs the scan, parse, classify, summarize pipeline over a
// directory of trial data files.
type Analyzer struct {
	opts   AnalyzerOptions
	parser *Parser
}

// NewAnalyzer creates an Analyzer with the given options.
func NewAnalyzer(opts AnalyzerOptions) *Analyzer {
	if opts.DataExt == "" {
		opts.DataExt = DefaultDataExt
	}
	return &Analyzer{
		opts:   opts,
		parser: &Parser{Policy: opts.Policy, Logger: opts.Logger},
	}
}

// AnalyzeFile parses and summarizes a single data file.
func (a *Analyzer) AnalyzeFile(path string) (FileSummary, error) {
	rows, err := a.parser.ParseFile(path)
	if err != nil {
		return FileSummary{}, err
	}
	return Summarize(filepath.Base(path), rows), nil
}

// AnalyzeDirectory analyzes every matching data file directly inside dir and
// pools the results. A directory without matching files yields an empty
// report, not an error. Under SkipBadFiles a file that fails to parse is
// reported as a warning and excluded from the pool.
func (a *Analyzer) AnalyzeDirectory(dir string) (*Report, error) {
	files, err := ListDataFiles(dir, a.opts.DataExt)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Root:  dir,
		Files: make([]FileSummary, 0, len(files)),
	}

	for _, file := range files {
		summary, err := a.AnalyzeFile(file)
		if err != nil {
			if a.opts.SkipBadFiles {
				a.warn(fmt.Sprintf("skipping file: %v", err))
				continue
			}
			return nil, err
		}
		report.Files = append(report.Files, summary)
	}

	report.Aggregate = Aggregate(report.Files)
	return report, nil
}

// AnalyzeConditions analyzes a study root whose immediate subdirectories
// each hold the data files of one experimental condition. Conditions are
// ordered by ConditionOrder, with unknown keys after known ones.
func (a *Analyzer) AnalyzeConditions(root string) (*ConditionReport, error) {
	conditions, err := ListConditionDirs(root)
	if err != nil {
		return nil, err
	}

	sortConditions(conditions, a.opts.ConditionOrder)

	report := &ConditionReport{
		Root:       root,
		Conditions: make([]ConditionSummary, 0, len(conditions)),
	}

	allFiles := make([]FileSummary, 0)
	for _, condition := range conditions {
		dirReport, err := a.AnalyzeDirectory(filepath.Join(root, condition))
		if err != nil {
			return nil, fmt.Errorf("condition %s: %w", condition, err)
		}
		report.Conditions = append(report.Conditions, SummarizeCondition(condition, dirReport.Files))
		allFiles = append(allFiles, dirReport.Files...)
	}

	report.Aggregate = Aggregate(allFiles)
	return report, nil
}

// sortConditions orders condition keys by their position in order; keys not
// listed keep lexicographic order after the listed ones.
func sortConditions(conditions []string, order []string) {
	rank := make(map[string]int, len(order))
	for i, key := range order {
		rank[key] = i
	}

	sort.SliceStable(conditions, func(i, j int) bool {
		ri, iKnown := rank[conditions[i]]
		rj, jKnown := rank[conditions[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return conditions[i] < conditions[j]
		}
	})
}

func (a *Analyzer) warn(message string) {
	if a.opts.Logger != nil {
		a.opts.Logger.LogWarn(message)
	}
}
