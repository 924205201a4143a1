package trial

import "math"

// Summarize classifies the rows of one file and computes its descriptive
// statistics. MeanRT covers only valid rows; StdDevRT is the sample standard
// deviation (n-1) over the same set and needs at least two valid rows. With
// zero valid rows both measures stay uncomputed.
func Summarize(sourceFile string, rows []TrialRow) FileSummary {
	summary := FileSummary{
		SourceFile: sourceFile,
		RowCount:   len(rows),
	}

	for _, row := range rows {
		summary.ReportedCommissions += row.Commissions
		summary.ReportedLapses += row.Lapses

		switch Classify(row.RT) {
		case Commission:
			summary.CommissionCount++
		case Lapse:
			summary.LapseCount++
		case Valid:
			summary.ValidCount++
			summary.SumValidRT += row.RT
			summary.SumSqValidRT += row.RT * row.RT
		}
	}

	summary.MeanRT, summary.StdDevRT = describe(summary.SumValidRT, summary.SumSqValidRT, summary.ValidCount)
	return summary
}

// Aggregate pools file summaries into one run-level summary. The pooled mean
// and standard deviation are derived from the pooled sum and sum of squares
// over all valid RTs across files; averaging per-file standard deviations
// would misweight files of different sizes.
func Aggregate(files []FileSummary) AggregateSummary {
	agg := AggregateSummary{FileCount: len(files)}

	var sum, sumSq float64
	for _, f := range files {
		agg.RowCount += f.RowCount
		agg.ValidCount += f.ValidCount
		agg.CommissionCount += f.CommissionCount
		agg.LapseCount += f.LapseCount
		sum += f.SumValidRT
		sumSq += f.SumSqValidRT
	}

	agg.MeanRT, agg.StdDevRT = describe(sum, sumSq, agg.ValidCount)
	return agg
}

// SummarizeCondition aggregates the file summaries of one condition
// directory. MeanOfMeans averages the per-file mean RTs, matching the
// collection protocol; files without a computed mean are excluded from it.
// Commission and lapse figures sum the reported source columns.
func SummarizeCondition(condition string, files []FileSummary) ConditionSummary {
	summary := ConditionSummary{
		Condition: condition,
		FileCount: len(files),
	}

	var meanSum float64
	meanCount := 0
	for _, f := range files {
		if f.MeanRT.Computed {
			meanSum += f.MeanRT.Value
			meanCount++
		}
		summary.TotalCommissions += f.ReportedCommissions
		summary.TotalLapses += f.ReportedLapses
	}

	if meanCount > 0 {
		summary.MeanOfMeans = NewMeasure(meanSum/float64(meanCount), meanCount)
	}
	if len(files) > 0 {
		n := len(files)
		summary.MeanCommissions = NewMeasure(summary.TotalCommissions/float64(n), n)
		summary.MeanLapses = NewMeasure(summary.TotalLapses/float64(n), n)
	}

	return summary
}

// describe computes mean and sample standard deviation from running sums.
func describe(sum, sumSq float64, n int) (mean, stdDev Measure) {
	if n == 0 {
		return Measure{}, Measure{}
	}

	m := sum / float64(n)
	mean = NewMeasure(m, n)

	if n >= 2 {
		// Sample variance from sums; clamp tiny negative values caused by
		// floating-point cancellation.
		variance := (sumSq - sum*sum/float64(n)) / float64(n-1)
		if variance < 0 {
			variance = 0
		}
		stdDev = NewMeasure(math.Sqrt(variance), n)
	}

	return mean, stdDev
}
