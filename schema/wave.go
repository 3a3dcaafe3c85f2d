package schema

import (
	"time"
)

// Wave is one detected epidemic wave, delimited trough-to-trough and
// containing exactly one qualifying peak. Totals and averages are
// aggregated from the raw daily columns over [StartDate, EndDate];
// PeakDailyCases is the maximum smoothed daily incidence over the same
// span.
type Wave struct {
	WaveNumber     int       `json:"wave_number"`
	StartDate      time.Time `json:"start_date"`
	PeakDate       time.Time `json:"peak_date"`
	EndDate        time.Time `json:"end_date"`
	PeakDailyCases float64   `json:"peak_daily_cases"`
	TotalCases     float64   `json:"total_cases"`
	TotalDeaths    float64   `json:"total_deaths"`
	DurationDays   int       `json:"duration_days"`
	AvgDailyCases  float64   `json:"avg_daily_cases"`
}
