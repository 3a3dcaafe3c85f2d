package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/openepi/epiwave/consts"
	"github.com/openepi/epiwave/schema"
)

// WaveParams tunes wave segmentation. A nil value means package
// defaults from consts.
type WaveParams struct {
	TrendWindow         int
	TrendMinPeriods     int
	MinPeakDailyCases   float64
	PeakMergeWindowDays int
	MinWaveDurationDays int
}

func DefaultWaveParams() *WaveParams {
	return &WaveParams{
		TrendWindow:         consts.TrendWindowSize,
		TrendMinPeriods:     consts.TrendMinPeriods,
		MinPeakDailyCases:   consts.MinPeakDailyCases,
		PeakMergeWindowDays: consts.PeakMergeWindowDays,
		MinWaveDurationDays: consts.MinWaveDurationDays,
	}
}

// DetectWaves segments a daily series into epidemic waves. It smooths
// the daily incidence with a centered moving average, takes a sign
// change of the discrete derivative as a candidate peak, collapses
// near-duplicate peaks, and bounds each surviving peak by the enclosing
// troughs. An empty result means no qualifying wave, never an error.
func DetectWaves(rows []schema.DailyRecord, params *WaveParams) []schema.Wave {
	if params == nil {
		params = DefaultWaveParams()
	}

	waves := []schema.Wave{}

	df := sortedCopy(rows)
	if len(df) < params.TrendMinPeriods {
		return waves
	}

	smoothed := make([]float64, len(df))
	for i, r := range df {
		smoothed[i] = r.NewCasesSmoothed
	}

	trend := rollingMeanCentered(smoothed, params.TrendWindow, params.TrendMinPeriods)
	velocity := firstDifference(trend)

	// candidate peak: trend above the floor, rising immediately before,
	// flat or falling at the sample itself
	var candidates []int
	for i := 1; i < len(df)-1; i++ {
		if trend[i] > params.MinPeakDailyCases && velocity[i-1] > 0 && velocity[i] <= 0 {
			candidates = append(candidates, i)
		}
	}

	peaks := mergeNearbyPeaks(df, trend, candidates, params.PeakMergeWindowDays)

	for k, peakIdx := range peaks {
		searchStart := 0
		if k > 0 {
			searchStart = peaks[k-1]
		}
		startIdx := argminRange(trend, searchStart, peakIdx)

		searchEnd := len(df) - 1
		if k < len(peaks)-1 {
			searchEnd = peaks[k+1]
		}
		endIdx := argminRange(trend, peakIdx, searchEnd)

		duration := daysBetween(df[startIdx].Date, df[endIdx].Date)
		if duration < params.MinWaveDurationDays {
			continue
		}

		span := df[startIdx : endIdx+1]
		rawCases := make([]float64, len(span))
		rawDeaths := make([]float64, len(span))
		for i, r := range span {
			rawCases[i] = r.NewCases
			rawDeaths[i] = r.NewDeaths
		}
		rawCases = dropNaN(rawCases)
		rawDeaths = dropNaN(rawDeaths)

		peakCases := float64(0)
		if spanSmoothed := dropNaN(smoothed[startIdx : endIdx+1]); len(spanSmoothed) > 0 {
			peakCases = floats.Max(spanSmoothed)
		}

		avgCases := float64(0)
		if len(rawCases) > 0 {
			avgCases = stat.Mean(rawCases, nil)
		}

		waves = append(waves, schema.Wave{
			WaveNumber:     len(waves) + 1,
			StartDate:      df[startIdx].Date,
			PeakDate:       df[peakIdx].Date,
			EndDate:        df[endIdx].Date,
			PeakDailyCases: peakCases,
			TotalCases:     floats.Sum(rawCases),
			TotalDeaths:    floats.Sum(rawDeaths),
			DurationDays:   duration,
			AvgDailyCases:  avgCases,
		})
	}

	return waves
}

// mergeNearbyPeaks collapses candidate peaks closer than windowDays to
// the previously accepted peak, keeping whichever has the larger trend
// value. The comparison is pairwise against the last accepted peak
// only, scanning left to right; it is deliberately not a transitive
// clustering.
func mergeNearbyPeaks(df []schema.DailyRecord, trend []float64, candidates []int, windowDays int) []int {
	var peaks []int
	for _, c := range candidates {
		if len(peaks) > 0 {
			last := peaks[len(peaks)-1]
			if daysBetween(df[last].Date, df[c].Date) < windowDays {
				if trend[c] > trend[last] {
					peaks[len(peaks)-1] = c
				}
				continue
			}
		}
		peaks = append(peaks, c)
	}
	return peaks
}
