package consts

const (
	// TrendWindowSize is the centered moving-average window (in samples)
	// applied on top of the already-smoothed daily incidence.
	TrendWindowSize = 21

	// TrendMinPeriods is the minimum number of in-window samples needed
	// to produce a trend value; positions below it are treated as 0.
	TrendMinPeriods = 7

	// MinPeakDailyCases is the minimum trend value for a candidate peak.
	// Smaller bumps are not considered meaningful waves. This is a
	// sensitivity constant, not derived from data.
	MinPeakDailyCases = float64(1000)

	// PeakMergeWindowDays is the minimum separation between reported
	// waves; candidate peaks closer than this collapse into the larger.
	PeakMergeWindowDays = 30

	// MinWaveDurationDays drops waves too short to be meaningful.
	MinWaveDurationDays = 7

	// CoverageThresholdPercent is the cumulative vaccination coverage,
	// as a percentage of population, taken to mean intervention at
	// scale rather than initial rollout.
	CoverageThresholdPercent = float64(10)
)
