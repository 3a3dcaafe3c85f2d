package schema

import (
	"time"
)

// Period is a closed date range covered by a cohort.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MonthlyAggregate is one calendar-month bucket of a cohort. Month is
// the first day of the month. Months inside the cohort span with no
// rows still get a bucket with zero values.
type MonthlyAggregate struct {
	Month         time.Time `json:"month"`
	TotalCases    float64   `json:"total_cases"`
	TotalDeaths   float64   `json:"total_deaths"`
	AvgDailyCases float64   `json:"avg_daily_cases"`
}

// CohortStats summarizes one side of the before/after split.
type CohortStats struct {
	Period            Period             `json:"period"`
	TotalCases        float64            `json:"total_cases"`
	TotalDeaths       float64            `json:"total_deaths"`
	CaseFatalityRatio float64            `json:"case_fatality_ratio"`
	AvgDailyCases     float64            `json:"avg_daily_cases"`
	AvgDailyDeaths    float64            `json:"avg_daily_deaths"`
	MonthCount        int                `json:"month_count"`
	Monthly           []MonthlyAggregate `json:"monthly,omitempty"`
}

// ImpactStatistics is the before/after comparison of outcome metrics
// split at the date cumulative vaccination coverage first crosses the
// threshold. The change fields are percentage change of the post cohort
// relative to the pre cohort.
type ImpactStatistics struct {
	ThresholdCrossingDate   time.Time   `json:"threshold_crossing_date"`
	Pre                     CohortStats `json:"pre"`
	Post                    CohortStats `json:"post"`
	CaseFatalityRatioChange float64     `json:"case_fatality_ratio_change"`
	AvgDailyCasesChange     float64     `json:"avg_daily_cases_change"`
	AvgDailyDeathsChange    float64     `json:"avg_daily_deaths_change"`
}
