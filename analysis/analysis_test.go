package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/openepi/epiwave/schema"
)

// RegionScenarioTestSuite runs both analyzers over one synthetic region
// and checks that their outputs stay coherent with each other.
type RegionScenarioTestSuite struct {
	suite.Suite
	rows []schema.DailyRecord
}

func (s *RegionScenarioTestSuite) SetupSuite() {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	// 400 days, one big wave peaking around day 120, vaccination
	// ramping up from day 200 over a population of ten million
	s.rows = make([]schema.DailyRecord, 400)
	for i := range s.rows {
		var cases float64
		switch {
		case i >= 60 && i <= 120:
			cases = 6000 * float64(i-60) / 60
		case i > 120 && i <= 200:
			cases = 6000 * float64(200-i) / 80
		}

		var vaccinated float64
		if i >= 200 {
			vaccinated = 25000 * float64(i-200)
		}

		s.rows[i] = schema.DailyRecord{
			Date:              base.AddDate(0, 0, i),
			NewCases:          cases,
			NewCasesSmoothed:  cases,
			NewDeaths:         cases * 0.02,
			NewDeathsSmoothed: cases * 0.02,
			TotalCases:        float64(i) * 1000,
			TotalDeaths:       float64(i) * 20,
			Population:        10000000,
			FullyVaccinated:   vaccinated,
		}
	}
}

func (s *RegionScenarioTestSuite) TestWaveSegmentation() {
	waves := DetectWaves(s.rows, nil)
	s.Require().Len(waves, 1)

	w := waves[0]
	s.Equal(1, w.WaveNumber)
	s.True(w.DurationDays >= 7)
	s.False(w.StartDate.After(w.PeakDate))
	s.False(w.PeakDate.After(w.EndDate))
	s.InDelta(6000, w.PeakDailyCases, 1e-9)
}

func (s *RegionScenarioTestSuite) TestImpactSplit() {
	stats, err := AnalyzeImpact(s.rows)
	s.Require().NoError(err)

	// 10% of ten million is one million: day 240
	s.Equal(s.rows[240].Date, stats.ThresholdCrossingDate)
	s.True(stats.Pre.TotalCases > 0)
	s.Equal(float64(0), stats.Post.TotalCases)
	s.Equal(float64(0), stats.Post.CaseFatalityRatio)
}

func (s *RegionScenarioTestSuite) TestSummaryCoherence() {
	waves := DetectWaves(s.rows, nil)
	summary, ok := Summarize(s.rows, waves)
	s.Require().True(ok)

	s.Equal(len(waves), summary.WavesDetected)
	s.Equal(s.rows[len(s.rows)-1].Date, summary.Date)
	s.InDelta(49.75, summary.VaccinationRate, 1e-9)
}

func TestRegionScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(RegionScenarioTestSuite))
}
