package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openepi/epiwave/schema"
)

var impactTestBase = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func impactDay(i int) time.Time {
	return impactTestBase.AddDate(0, 0, i)
}

// linearVaccinationSeries builds a 200-day series over a population of
// one million, vaccinating 1000 people per day: 10% coverage is reached
// exactly at day 100.
func linearVaccinationSeries() []schema.DailyRecord {
	rows := make([]schema.DailyRecord, 200)
	for i := range rows {
		rows[i] = schema.DailyRecord{
			Date:              impactDay(i),
			NewCases:          float64(100 + i%7),
			NewCasesSmoothed:  100,
			NewDeaths:         2,
			NewDeathsSmoothed: 2,
			Population:        1000000,
			FullyVaccinated:   float64(1000 * i),
		}
	}
	return rows
}

func TestAnalyzeImpactThresholdCrossing(t *testing.T) {
	rows := linearVaccinationSeries()

	stats, err := AnalyzeImpact(rows)
	require.NoError(t, err)

	assert.Equal(t, impactDay(100), stats.ThresholdCrossingDate)
	assert.Equal(t, impactDay(0), stats.Pre.Period.Start)
	assert.Equal(t, impactDay(99), stats.Pre.Period.End)
	assert.Equal(t, impactDay(100), stats.Post.Period.Start)
	assert.Equal(t, impactDay(199), stats.Post.Period.End)

	total := float64(0)
	for _, r := range rows {
		total += r.NewCases
	}
	assert.InDelta(t, total, stats.Pre.TotalCases+stats.Post.TotalCases, 1e-9)

	assert.InDelta(t, 200, stats.Pre.TotalDeaths, 1e-9)
	assert.InDelta(t, 200, stats.Post.TotalDeaths, 1e-9)
	assert.InDelta(t, 100, stats.Pre.AvgDailyCases, 1e-9)
	assert.InDelta(t, 2, stats.Post.AvgDailyDeaths, 1e-9)

	// Jan 1 - Apr 10 and Apr 11 - Jul 19
	assert.Equal(t, 4, stats.Pre.MonthCount)
	assert.Equal(t, 4, stats.Post.MonthCount)
	assert.Len(t, stats.Pre.Monthly, stats.Pre.MonthCount)
	assert.Len(t, stats.Post.Monthly, stats.Post.MonthCount)
}

func TestAnalyzeImpactCohortFatalityRatios(t *testing.T) {
	rows := linearVaccinationSeries()

	stats, err := AnalyzeImpact(rows)
	require.NoError(t, err)

	expectedPre := math.Round(stats.Pre.TotalDeaths/stats.Pre.TotalCases*100*100) / 100
	assert.Equal(t, expectedPre, stats.Pre.CaseFatalityRatio)

	assert.Equal(t, ChangeRate(stats.Post.CaseFatalityRatio, stats.Pre.CaseFatalityRatio), stats.CaseFatalityRatioChange)
	assert.Equal(t, float64(0), stats.AvgDailyCasesChange)
}

func TestAnalyzeImpactUnsortedInput(t *testing.T) {
	rows := linearVaccinationSeries()
	shuffled := make([]schema.DailyRecord, len(rows))
	copy(shuffled, rows)
	for i := 0; i+1 < len(shuffled); i += 2 {
		shuffled[i], shuffled[i+1] = shuffled[i+1], shuffled[i]
	}

	fromSorted, err := AnalyzeImpact(rows)
	require.NoError(t, err)
	fromShuffled, err := AnalyzeImpact(shuffled)
	require.NoError(t, err)

	assert.Equal(t, fromSorted, fromShuffled)
}

func TestAnalyzeImpactFallbackToFirstVaccinationActivity(t *testing.T) {
	rows := make([]schema.DailyRecord, 120)
	for i := range rows {
		rows[i] = schema.DailyRecord{
			Date:             impactDay(i),
			NewCases:         50,
			NewCasesSmoothed: 50,
			Population:       1000000,
		}
		if i >= 50 {
			// never anywhere near 10% coverage
			rows[i].FullyVaccinated = 5
		}
	}

	stats, err := AnalyzeImpact(rows)
	require.NoError(t, err)
	assert.Equal(t, impactDay(50), stats.ThresholdCrossingDate)
}

func TestAnalyzeImpactNoVaccinationSignal(t *testing.T) {
	rows := make([]schema.DailyRecord, 100)
	for i := range rows {
		rows[i] = schema.DailyRecord{
			Date:       impactDay(i),
			NewCases:   10,
			Population: 1000000,
		}
	}

	_, err := AnalyzeImpact(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoVaccinationSignal))
	assert.True(t, errors.Is(err, ErrNotDeterminable))
}

func TestAnalyzeImpactMissingPopulation(t *testing.T) {
	rows := []schema.DailyRecord{
		{Date: impactDay(0), FullyVaccinated: 100},
		{Date: impactDay(1), FullyVaccinated: 200},
	}

	_, err := AnalyzeImpact(rows)
	assert.True(t, errors.Is(err, ErrMissingPopulation))

	rows[0].Population = math.NaN()
	rows[1].Population = math.NaN()
	_, err = AnalyzeImpact(rows)
	assert.True(t, errors.Is(err, ErrMissingPopulation))
}

func TestAnalyzeImpactDegenerateSplit(t *testing.T) {
	rows := make([]schema.DailyRecord, 30)
	for i := range rows {
		rows[i] = schema.DailyRecord{
			Date:            impactDay(i),
			Population:      1000000,
			FullyVaccinated: 200000, // above threshold from the first row
		}
	}

	_, err := AnalyzeImpact(rows)
	assert.True(t, errors.Is(err, ErrDegenerateSplit))
	assert.True(t, errors.Is(err, ErrNotDeterminable))
}

func TestAnalyzeImpactEmptySeries(t *testing.T) {
	_, err := AnalyzeImpact(nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.True(t, errors.Is(err, ErrNotDeterminable))
}

func TestAnalyzeImpactZeroCaseCohortHasZeroFatalityRatio(t *testing.T) {
	rows := make([]schema.DailyRecord, 60)
	for i := range rows {
		rows[i] = schema.DailyRecord{
			Date:       impactDay(i),
			Population: 1000000,
		}
		if i >= 30 {
			rows[i].FullyVaccinated = 150000
			rows[i].NewCases = 10
			rows[i].NewDeaths = 1
		}
	}

	stats, err := AnalyzeImpact(rows)
	require.NoError(t, err)
	assert.Equal(t, float64(0), stats.Pre.TotalCases)
	assert.Equal(t, float64(0), stats.Pre.CaseFatalityRatio)
	assert.InDelta(t, 10, stats.Post.CaseFatalityRatio, 1e-9)
}

func TestMonthlyAggregatesBridgeGapMonths(t *testing.T) {
	rows := []schema.DailyRecord{
		{Date: time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), NewCases: 10, NewCasesSmoothed: 10},
		{Date: time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), NewCases: 30, NewCasesSmoothed: 30},
	}

	monthly := monthlyAggregates(rows)
	require.Len(t, monthly, 3)

	assert.Equal(t, time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC), monthly[1].Month)
	assert.Equal(t, float64(0), monthly[1].TotalCases)
	assert.Equal(t, float64(10), monthly[0].TotalCases)
	assert.Equal(t, float64(30), monthly[2].TotalCases)
	assert.Equal(t, float64(30), monthly[2].AvgDailyCases)
}
