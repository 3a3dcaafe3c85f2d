package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/openepi/epiwave/schema"
)

const dateLayout = "2006-01-02"

var (
	ErrEmptyInput       = fmt.Errorf("input has no header row")
	ErrMissingDate      = fmt.Errorf("input has no date column")
	ErrUnparsableRecord = fmt.Errorf("unparsable record")
)

// column header aliases accepted for each DailyRecord field; owid-style
// exports use people_fully_vaccinated
var columnAliases = map[string][]string{
	"new_cases":           {"new_cases"},
	"new_cases_smoothed":  {"new_cases_smoothed"},
	"new_deaths":          {"new_deaths"},
	"new_deaths_smoothed": {"new_deaths_smoothed"},
	"total_cases":         {"total_cases"},
	"total_deaths":        {"total_deaths"},
	"population":          {"population"},
	"fully_vaccinated":    {"fully_vaccinated", "people_fully_vaccinated"},
	"reproduction_rate":   {"reproduction_rate"},
}

// LoadFile reads one per-region daily series from a CSV file.
func LoadFile(path string) ([]schema.DailyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Load reads a daily series from CSV. The first row must be a header
// containing a date column; every other column is optional and absent
// or blank values load as NaN for the preprocessing step to resolve.
func Load(r io.Reader) ([]schema.DailyRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	dateIdx, ok := index["date"]
	if !ok {
		return nil, ErrMissingDate
	}

	colIdx := map[string]int{}
	for field, aliases := range columnAliases {
		colIdx[field] = -1
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				colIdx[field] = i
				break
			}
		}
		if colIdx[field] < 0 {
			log.WithFields(log.Fields{"prefix": "series", "column": field}).Debug("column absent, loading as missing")
		}
	}

	var rows []schema.DailyRecord
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(record[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrUnparsableRecord, line, err)
		}

		rows = append(rows, schema.DailyRecord{
			Date:              date,
			NewCases:          fieldValue(record, colIdx["new_cases"]),
			NewCasesSmoothed:  fieldValue(record, colIdx["new_cases_smoothed"]),
			NewDeaths:         fieldValue(record, colIdx["new_deaths"]),
			NewDeathsSmoothed: fieldValue(record, colIdx["new_deaths_smoothed"]),
			TotalCases:        fieldValue(record, colIdx["total_cases"]),
			TotalDeaths:       fieldValue(record, colIdx["total_deaths"]),
			Population:        fieldValue(record, colIdx["population"]),
			FullyVaccinated:   fieldValue(record, colIdx["fully_vaccinated"]),
			ReproductionRate:  fieldValue(record, colIdx["reproduction_rate"]),
		})
	}

	return rows, nil
}

func fieldValue(record []string, idx int) float64 {
	if idx < 0 || idx >= len(record) {
		return math.NaN()
	}
	s := strings.TrimSpace(record[idx])
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
