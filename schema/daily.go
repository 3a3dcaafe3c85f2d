package schema

import (
	"time"
)

// DailyRecord is one row of a per-region daily epidemiological series.
// The series is expected to be already merged and filtered to a single
// region by the caller. Missing values are carried as NaN until they are
// resolved by the series package.
type DailyRecord struct {
	Date              time.Time `json:"date"`
	NewCases          float64   `json:"new_cases"`
	NewCasesSmoothed  float64   `json:"new_cases_smoothed"`
	NewDeaths         float64   `json:"new_deaths"`
	NewDeathsSmoothed float64   `json:"new_deaths_smoothed"`
	TotalCases        float64   `json:"total_cases"`
	TotalDeaths       float64   `json:"total_deaths"`
	Population        float64   `json:"population"`
	FullyVaccinated   float64   `json:"fully_vaccinated"`
	ReproductionRate  float64   `json:"reproduction_rate"`
}
