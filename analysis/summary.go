package analysis

import (
	"math"

	"github.com/openepi/epiwave/schema"
)

// Summarize returns the latest-row snapshot of a region together with
// derived rates and the detected wave count. ok is false for an empty
// series.
func Summarize(rows []schema.DailyRecord, waves []schema.Wave) (schema.RegionSummary, bool) {
	df := sortedCopy(rows)
	if len(df) == 0 {
		return schema.RegionSummary{}, false
	}

	latest := df[len(df)-1]

	totalCases := orZero(latest.TotalCases)
	totalDeaths := orZero(latest.TotalDeaths)
	fullyVaccinated := orZero(latest.FullyVaccinated)
	population := orZero(latest.Population)

	cfr := float64(0)
	if totalCases > 0 {
		cfr = round2(totalDeaths / totalCases * 100)
	}

	vaccRate := float64(0)
	if population > 0 {
		vaccRate = round2(fullyVaccinated / population * 100)
	}

	return schema.RegionSummary{
		Date:             latest.Date,
		TotalCases:       totalCases,
		TotalDeaths:      totalDeaths,
		FullyVaccinated:  fullyVaccinated,
		NewCases:         orZero(latest.NewCases),
		NewDeaths:        orZero(latest.NewDeaths),
		CaseFatalityRate: cfr,
		VaccinationRate:  vaccRate,
		WavesDetected:    len(waves),
		Population:       population,
	}, true
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
