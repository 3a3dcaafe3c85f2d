package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/openepi/epiwave/consts"
	"github.com/openepi/epiwave/schema"
)

// ErrNotDeterminable is the umbrella condition for every expected
// reason the before/after comparison cannot be made. Callers branch
// with errors.Is and treat it as "impact analysis unavailable for this
// region", not a fault.
var (
	ErrNotDeterminable     = errors.New("impact not determinable")
	ErrInsufficientData    = fmt.Errorf("%w: empty series", ErrNotDeterminable)
	ErrMissingPopulation   = fmt.Errorf("%w: missing or non-positive population", ErrNotDeterminable)
	ErrNoVaccinationSignal = fmt.Errorf("%w: no vaccination activity recorded", ErrNotDeterminable)
	ErrDegenerateSplit     = fmt.Errorf("%w: threshold crossing leaves an empty cohort", ErrNotDeterminable)
)

// AnalyzeImpact splits the series at the date cumulative vaccination
// coverage first reaches the threshold and compares outcome metrics of
// the pre and post cohorts. When no row reaches the threshold, the
// first row with any recorded vaccination activity is used instead.
func AnalyzeImpact(rows []schema.DailyRecord) (schema.ImpactStatistics, error) {
	df := sortedCopy(rows)
	if len(df) == 0 {
		return schema.ImpactStatistics{}, ErrInsufficientData
	}

	population := df[0].Population
	if math.IsNaN(population) || population <= 0 {
		return schema.ImpactStatistics{}, ErrMissingPopulation
	}

	crossingIdx := -1
	for i, r := range df {
		if math.IsNaN(r.FullyVaccinated) {
			continue
		}
		if r.FullyVaccinated/population*100 >= consts.CoverageThresholdPercent {
			crossingIdx = i
			break
		}
	}
	if crossingIdx < 0 {
		// threshold never reached, fall back to the earliest recorded
		// vaccination activity
		for i, r := range df {
			if !math.IsNaN(r.FullyVaccinated) && r.FullyVaccinated > 0 {
				crossingIdx = i
				break
			}
		}
	}
	if crossingIdx < 0 {
		return schema.ImpactStatistics{}, ErrNoVaccinationSignal
	}

	pre := df[:crossingIdx]
	post := df[crossingIdx:]
	if len(pre) == 0 || len(post) == 0 {
		return schema.ImpactStatistics{}, ErrDegenerateSplit
	}

	preStats := cohortStats(pre)
	postStats := cohortStats(post)

	return schema.ImpactStatistics{
		ThresholdCrossingDate:   df[crossingIdx].Date,
		Pre:                     preStats,
		Post:                    postStats,
		CaseFatalityRatioChange: ChangeRate(postStats.CaseFatalityRatio, preStats.CaseFatalityRatio),
		AvgDailyCasesChange:     ChangeRate(postStats.AvgDailyCases, preStats.AvgDailyCases),
		AvgDailyDeathsChange:    ChangeRate(postStats.AvgDailyDeaths, preStats.AvgDailyDeaths),
	}, nil
}

func cohortStats(rows []schema.DailyRecord) schema.CohortStats {
	cases := make([]float64, len(rows))
	deaths := make([]float64, len(rows))
	casesSmoothed := make([]float64, len(rows))
	deathsSmoothed := make([]float64, len(rows))
	for i, r := range rows {
		cases[i] = r.NewCases
		deaths[i] = r.NewDeaths
		casesSmoothed[i] = r.NewCasesSmoothed
		deathsSmoothed[i] = r.NewDeathsSmoothed
	}

	totalCases := floats.Sum(dropNaN(cases))
	totalDeaths := floats.Sum(dropNaN(deaths))

	cfr := float64(0)
	if totalCases > 0 {
		cfr = round2(totalDeaths / totalCases * 100)
	}

	monthly := monthlyAggregates(rows)

	return schema.CohortStats{
		Period: schema.Period{
			Start: rows[0].Date,
			End:   rows[len(rows)-1].Date,
		},
		TotalCases:        totalCases,
		TotalDeaths:       totalDeaths,
		CaseFatalityRatio: cfr,
		AvgDailyCases:     nanMean(casesSmoothed),
		AvgDailyDeaths:    nanMean(deathsSmoothed),
		MonthCount:        len(monthly),
		Monthly:           monthly,
	}
}

// monthlyAggregates buckets a cohort by calendar month from the first
// to the last row's month, one bucket per month even across gaps.
func monthlyAggregates(rows []schema.DailyRecord) []schema.MonthlyAggregate {
	if len(rows) == 0 {
		return nil
	}

	first := monthStart(rows[0].Date)
	last := monthStart(rows[len(rows)-1].Date)

	span := (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month()) + 1
	out := make([]schema.MonthlyAggregate, span)
	smoothedByMonth := make([][]float64, span)
	for i := range out {
		out[i].Month = first.AddDate(0, i, 0)
	}

	for _, r := range rows {
		m := monthStart(r.Date)
		i := (m.Year()-first.Year())*12 + int(m.Month()) - int(first.Month())
		if !math.IsNaN(r.NewCases) {
			out[i].TotalCases += r.NewCases
		}
		if !math.IsNaN(r.NewDeaths) {
			out[i].TotalDeaths += r.NewDeaths
		}
		if !math.IsNaN(r.NewCasesSmoothed) {
			smoothedByMonth[i] = append(smoothedByMonth[i], r.NewCasesSmoothed)
		}
	}

	for i := range out {
		if len(smoothedByMonth[i]) > 0 {
			out[i].AvgDailyCases = stat.Mean(smoothedByMonth[i], nil)
		}
	}

	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func nanMean(values []float64) float64 {
	vs := dropNaN(values)
	if len(vs) == 0 {
		return 0
	}
	return stat.Mean(vs, nil)
}
