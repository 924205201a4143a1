// Package trial provides parsing, classification and descriptive statistics
// for PVT-B reaction-time trial data files.
//
// This package contains core models representing:
//   - Individual trial rows parsed from whitespace-delimited data files
//   - Reaction-time classification (valid, commission, lapse)
//   - Per-file and pooled summary statistics
//   - Per-condition summaries over a study directory tree
//
// A trial data file holds one row per trial with the fixed column order
// Trial, Error, RT, Average RT, Commissions, Lapses. Reaction times are
// in milliseconds. Classification is recomputed from the RT column alone;
// the Commissions and Lapses columns reported by the collection script are
// carried through for condition-level totals but never drive classification.
//
// Example usage:
//
//	analyzer := trial.NewAnalyzer(trial.AnalyzerOptions{DataExt: ".txt"})
//	report, err := analyzer.AnalyzeDirectory("data/a1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Aggregate.MeanRT)
package trial
