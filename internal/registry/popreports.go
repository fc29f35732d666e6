package registry

import (
	"context"
	"sort"

	"prunkit/internal/world"
)

// PopulationReports loads the infrastructure report table once, grouped by
// planet and sorted oldest-first within each group.
func (r *Registry) PopulationReports(ctx context.Context) (map[string][]map[string]string, error) {
	v, err := r.get("population-reports", func() (interface{}, error) {
		rows, err := r.client.FetchCSV(ctx, fioRequest("/csv/infrastructure/allreports", "population reports"))
		if err != nil {
			return nil, err
		}
		byPlanet := make(map[string][]map[string]string)
		for _, row := range rows {
			id := row["PlanetNaturalId"]
			if id == "" {
				continue
			}
			byPlanet[id] = append(byPlanet[id], row)
		}
		// Timestamps are ISO-8601, so the lexicographic order is the
		// chronological one.
		for _, reports := range byPlanet {
			sort.SliceStable(reports, func(i, j int) bool {
				return reports[i]["Timestamp"] < reports[j]["Timestamp"]
			})
		}
		return byPlanet, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string][]map[string]string), nil
}

// PopulationData derives the per-demographic state of a planet from its two
// most recent reports. With fewer than two reports everything reads zero.
func (r *Registry) PopulationData(ctx context.Context, planet *world.Planet) (world.PopulationData, error) {
	byPlanet, err := r.PopulationReports(ctx)
	if err != nil {
		return nil, err
	}
	reports := byPlanet[planet.NaturalID]
	if len(reports) < 2 {
		return world.BuildPopulationData(nil, nil), nil
	}
	return world.BuildPopulationData(reports[len(reports)-2], reports[len(reports)-1]), nil
}
