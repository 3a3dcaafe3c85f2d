package schema

import (
	"time"
)

// RegionSummary is the latest-row snapshot of a region: cumulative
// totals plus derived rates and the number of detected waves.
type RegionSummary struct {
	Date             time.Time `json:"date"`
	TotalCases       float64   `json:"total_cases"`
	TotalDeaths      float64   `json:"total_deaths"`
	FullyVaccinated  float64   `json:"fully_vaccinated"`
	NewCases         float64   `json:"new_cases"`
	NewDeaths        float64   `json:"new_deaths"`
	CaseFatalityRate float64   `json:"case_fatality_rate"`
	VaccinationRate  float64   `json:"vaccination_rate"`
	WavesDetected    int       `json:"waves_detected"`
	Population       float64   `json:"population"`
}
