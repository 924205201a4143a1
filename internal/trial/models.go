package trial

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TrialRow is one parsed line of a trial data file.
// A data line has exactly six whitespace-separated tokens mapped positionally
// to {Trial, Error, RT, Average RT, Commissions, Lapses}.
type TrialRow struct {
	Trial       int     `json:"trial"`       // ordinal trial index
	Error       bool    `json:"error"`       // error flag as reported by the source
	RT          float64 `json:"rt"`          // reaction time in milliseconds
	AverageRT   float64 `json:"average_rt"`  // running average as reported by the source
	Commissions float64 `json:"commissions"` // commission count as reported by the source
	Lapses      float64 `json:"lapses"`      // lapse count as reported by the source
	Line        int     `json:"line"`        // 1-based line number in the source file
}

// Validate checks structural invariants of a parsed row.
func (r *TrialRow) Validate() error {
	if r.Trial < 0 {
		return errors.New("trial index cannot be negative")
	}
	if r.Line <= 0 {
		return errors.New("line number is required")
	}
	if r.Commissions < 0 {
		return errors.New("commissions cannot be negative")
	}
	if r.Lapses < 0 {
		return errors.New("lapses cannot be negative")
	}
	return nil
}

// Measure is a descriptive statistic that may be absent. A Measure over zero
// samples is not computed: it is never zero, and never an error by itself.
// Uncomputed measures marshal to JSON null.
type Measure struct {
	Value      float64
	SampleSize int
	Computed   bool
}

// NewMeasure returns a computed Measure over n samples.
func NewMeasure(value float64, n int) Measure {
	return Measure{Value: value, SampleSize: n, Computed: true}
}

// MarshalJSON emits the value, or null when the measure was not computed.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Computed {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts either a number or null.
func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measure{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Measure{Value: v, Computed: true}
	return nil
}

// String renders the measure for tabular output, "n/a" when absent.
func (m Measure) String() string {
	if !m.Computed {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", m.Value)
}

// FileSummary holds the aggregated result for one input file.
// It is created after the file is fully parsed and is immutable afterwards.
// MeanRT and StdDevRT cover only rows classified valid; StdDevRT is the
// sample standard deviation (n-1) and requires at least two valid rows.
type FileSummary struct {
	SourceFile      string  `json:"source_file"`
	RowCount        int     `json:"row_count"`
	ValidCount      int     `json:"valid_count"`
	CommissionCount int     `json:"commission_count"`
	LapseCount      int     `json:"lapse_count"`
	MeanRT          Measure `json:"mean_rt"`
	StdDevRT        Measure `json:"std_dev_rt"`

	// Column sums carried through from the source file, used for
	// condition-level totals. Not part of the recomputed classification.
	ReportedCommissions float64 `json:"reported_commissions"`
	ReportedLapses      float64 `json:"reported_lapses"`

	// Running sums over valid RTs, retained so pooled statistics can be
	// derived without revisiting rows.
	SumValidRT   float64 `json:"-"`
	SumSqValidRT float64 `json:"-"`
}

// AggregateSummary pools FileSummary records across a whole run.
// The pooled mean and standard deviation are computed from the pooled sum
// and sum of squares over all valid RTs, never by averaging per-file values.
type AggregateSummary struct {
	FileCount       int     `json:"file_count"`
	RowCount        int     `json:"row_count"`
	ValidCount      int     `json:"valid_count"`
	CommissionCount int     `json:"commission_count"`
	LapseCount      int     `json:"lapse_count"`
	MeanRT          Measure `json:"mean_rt"`
	StdDevRT        Measure `json:"std_dev_rt"`
}

// Report is the result of analyzing one directory of data files.
type Report struct {
	Root      string           `json:"root"`
	Files     []FileSummary    `json:"files"`
	Aggregate AggregateSummary `json:"aggregate"`
}

// ConditionSummary aggregates all files of one experimental condition.
// MeanOfMeans follows the collection protocol: the mean of per-file mean
// RTs, not the pooled mean. Commission and lapse figures sum the reported
// source columns.
type ConditionSummary struct {
	Condition        string  `json:"condition"`
	FileCount        int     `json:"file_count"`
	MeanOfMeans      Measure `json:"mean_of_means"`
	TotalCommissions float64 `json:"total_commissions"`
	MeanCommissions  Measure `json:"mean_commissions"`
	TotalLapses      float64 `json:"total_lapses"`
	MeanLapses       Measure `json:"mean_lapses"`
}

// ConditionReport is the result of analyzing a study root in condition mode.
// Aggregate pools every file across all conditions.
type ConditionReport struct {
	Root       string             `json:"root"`
	Conditions []ConditionSummary `json:"conditions"`
	Aggregate  AggregateSummary   `json:"aggregate"`
}
