package series

import (
	"math"
	"sort"

	"github.com/openepi/epiwave/schema"
)

// SortByDate sorts rows ascending by date, in place. Equal dates keep
// their relative order; the analyzers treat duplicate dates as a caller
// contract violation and do not repair them.
func SortByDate(rows []schema.DailyRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
}

// Normalize returns a sorted copy of the series with missing values
// resolved the way the analyzers expect:
//   - smoothed and cumulative case/death columns: forward fill, then
//     backward fill for any leading gap
//   - cumulative vaccination counts: forward fill only, never filled
//     backward from future values
//   - sparse ratio columns (reproduction rate): linear interpolation
//     between recorded values
//
// Population gaps are filled from the first recorded value, since it is
// a constant per region.
func Normalize(rows []schema.DailyRecord) []schema.DailyRecord {
	out := make([]schema.DailyRecord, len(rows))
	copy(out, rows)
	SortByDate(out)

	bidirectional := []func(*schema.DailyRecord) *float64{
		func(r *schema.DailyRecord) *float64 { return &r.NewCasesSmoothed },
		func(r *schema.DailyRecord) *float64 { return &r.NewDeathsSmoothed },
		func(r *schema.DailyRecord) *float64 { return &r.TotalCases },
		func(r *schema.DailyRecord) *float64 { return &r.TotalDeaths },
	}
	for _, col := range bidirectional {
		forwardFill(out, col)
		backwardFill(out, col)
	}

	forwardFill(out, func(r *schema.DailyRecord) *float64 { return &r.FullyVaccinated })

	interpolateLinear(out, func(r *schema.DailyRecord) *float64 { return &r.ReproductionRate })

	popCol := func(r *schema.DailyRecord) *float64 { return &r.Population }
	forwardFill(out, popCol)
	backwardFill(out, popCol)

	return out
}

func forwardFill(rows []schema.DailyRecord, col func(*schema.DailyRecord) *float64) {
	last := math.NaN()
	for i := range rows {
		v := col(&rows[i])
		if math.IsNaN(*v) {
			if !math.IsNaN(last) {
				*v = last
			}
		} else {
			last = *v
		}
	}
}

func backwardFill(rows []schema.DailyRecord, col func(*schema.DailyRecord) *float64) {
	next := math.NaN()
	for i := len(rows) - 1; i >= 0; i-- {
		v := col(&rows[i])
		if math.IsNaN(*v) {
			if !math.IsNaN(next) {
				*v = next
			}
		} else {
			next = *v
		}
	}
}

// interpolateLinear fills interior gaps of a sparse column by linear
// interpolation between the surrounding recorded values, by position.
// Leading gaps have no left anchor and stay missing; trailing gaps
// carry the last recorded value forward.
func interpolateLinear(rows []schema.DailyRecord, col func(*schema.DailyRecord) *float64) {
	prev := -1
	for i := range rows {
		if math.IsNaN(*col(&rows[i])) {
			continue
		}

		if prev >= 0 && i-prev > 1 {
			left := *col(&rows[prev])
			right := *col(&rows[i])
			step := (right - left) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				*col(&rows[j]) = left + step*float64(j-prev)
			}
		}
		prev = i
	}

	if prev >= 0 {
		for j := prev + 1; j < len(rows); j++ {
			*col(&rows[j]) = *col(&rows[prev])
		}
	}
}

// AllMissing reports whether a column has no usable value at all, which
// the caller treats as "analysis not applicable" rather than an error.
func AllMissing(rows []schema.DailyRecord, col func(schema.DailyRecord) float64) bool {
	for _, r := range rows {
		if !math.IsNaN(col(r)) {
			return false
		}
	}
	return true
}
