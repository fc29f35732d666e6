package world

import (
	"math"
	"strconv"

	"prunkit/internal/quantity"
)

// Report column prefixes per demographic; the feed uses singular names.
var reportPrefixes = map[quantity.Demographic]string{
	quantity.Pioneers:    "Pioneer",
	quantity.Settlers:    "Settler",
	quantity.Technicians: "Technician",
	quantity.Engineers:   "Engineer",
	quantity.Scientists:  "Scientist",
}

// DemographicReport is the derived state of one workforce tier on a planet.
type DemographicReport struct {
	Count              float64 // previous report's next-population
	Next               float64
	Difference         float64
	Happiness          float64
	UnemploymentRate   float64
	UnemploymentAmount float64 // ⌊Count × rate⌋
	OpenJobs           float64
}

// PopulationData is the per-demographic state derived from the two most
// recent infrastructure reports.
type PopulationData map[quantity.Demographic]DemographicReport

// BuildPopulationData derives per-demographic numbers from the two latest
// report rows for a planet. With fewer than two reports everything is zero.
func BuildPopulationData(prev, latest map[string]string) PopulationData {
	data := make(PopulationData, len(reportPrefixes))
	if prev == nil || latest == nil {
		for d := range reportPrefixes {
			data[d] = DemographicReport{}
		}
		return data
	}
	for d, prefix := range reportPrefixes {
		count := field(prev, "NextPopulation"+prefix)
		rate := field(latest, "UnemploymentRate"+prefix)
		data[d] = DemographicReport{
			Count:              count,
			Next:               field(latest, "NextPopulation"+prefix),
			Difference:         field(latest, "PopulationDifference"+prefix),
			Happiness:          field(latest, "AverageHappiness"+prefix),
			UnemploymentRate:   rate,
			UnemploymentAmount: math.Floor(count * rate),
			OpenJobs:           field(latest, "OpenJobs"+prefix),
		}
	}
	return data
}

func field(row map[string]string, key string) float64 {
	v, err := strconv.ParseFloat(row[key], 64)
	if err != nil {
		return 0
	}
	return v
}
