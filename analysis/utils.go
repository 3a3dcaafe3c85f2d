package analysis

import (
	"math"
	"time"

	"github.com/openepi/epiwave/schema"
	"github.com/openepi/epiwave/series"
)

func ChangeRate(new, old float64) float64 {
	if old == 0 {
		if new == 0 {
			return float64(0)
		} else {
			return float64(100)
		}
	}

	return (new - old) / old * 100
}

// sortedCopy returns a date-ascending copy of the input series. Both
// analyzers sort defensively and never mutate caller-owned rows.
func sortedCopy(rows []schema.DailyRecord) []schema.DailyRecord {
	df := make([]schema.DailyRecord, len(rows))
	copy(df, rows)
	series.SortByDate(df)
	return df
}

// daysBetween returns whole days from `from` to `to`, truncated.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// dropNaN returns values with NaN entries removed, so sums and means
// skip missing samples instead of poisoning the aggregate.
func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
