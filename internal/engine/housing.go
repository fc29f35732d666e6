package engine

import (
	"errors"
	"fmt"
	"math"

	"prunkit/internal/industry"
	"prunkit/internal/quantity"
)

// ErrInvalidObjective rejects unknown housing optimization objectives.
var ErrInvalidObjective = errors.New("invalid housing objective")

// HousingObjective selects what the optimizer minimizes.
type HousingObjective string

const (
	// HousingCost minimizes the construction bill valued at an exchange.
	HousingCost HousingObjective = "cost"
	// HousingArea minimizes occupied area.
	HousingArea HousingObjective = "area"
)

// InfeasibleError reports a population demand no housing mix can cover.
type InfeasibleError struct {
	Demand quantity.Population
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no housing mix covers %v", e.Demand)
}

// OptimizeHousing finds the cheapest (or smallest) mix of the nine housing
// variants whose capacity covers the demand in every demographic. Counts are
// fractional; callers round upward where whole buildings are required.
func OptimizeHousing(demand quantity.Population, src quantity.BuildingSource, ps quantity.PriceSource, objective HousingObjective) (quantity.BuildingBag, error) {
	if objective != HousingCost && objective != HousingArea {
		return nil, fmt.Errorf("%w: %q", ErrInvalidObjective, objective)
	}

	// Variables: every housing variant the catalog knows and, for the cost
	// objective, whose materials are actually purchasable.
	var vars []string
	var costs []float64
	for _, ticker := range industry.HousingTickers {
		pop, ok := src.BuildingPopulation(ticker)
		if !ok || len(pop) == 0 {
			continue
		}
		var cost float64
		switch objective {
		case HousingCost:
			mats, ok := src.BuildingMaterials(ticker)
			if !ok {
				continue
			}
			cost = mats.Value(ps, quantity.Buy)
			if math.IsInf(cost, 1) {
				continue
			}
		case HousingArea:
			area, ok := src.BuildingArea(ticker)
			if !ok {
				continue
			}
			cost = area
		}
		vars = append(vars, ticker)
		costs = append(costs, cost)
	}

	// One ≥ constraint per demanded demographic.
	var A [][]float64
	var b []float64
	for _, d := range quantity.Demographics {
		need := demand[d]
		if need <= 0 {
			continue
		}
		row := make([]float64, len(vars))
		for j, ticker := range vars {
			pop, _ := src.BuildingPopulation(ticker)
			row[j] = -pop[d] // housing demand is negative capacity
		}
		A = append(A, row)
		b = append(b, need)
	}
	if len(A) == 0 {
		return quantity.BuildingBag{}, nil
	}

	x, ok := solveMinLP(costs, A, b)
	if !ok {
		return nil, &InfeasibleError{Demand: demand}
	}
	bag := quantity.BuildingBag{}
	for j, ticker := range vars {
		bag[ticker] = x[j]
	}
	return bag.Prune(), nil
}

// IncludeHousing augments a building bag with the optimal housing for its
// net population demand. Bags that already house their crew come back
// unchanged.
func IncludeHousing(bag quantity.BuildingBag, src quantity.BuildingSource, ps quantity.PriceSource, objective HousingObjective) (quantity.BuildingBag, error) {
	demand := bag.TotalPopulation(src)
	open := quantity.Population{}
	for _, d := range quantity.Demographics {
		if demand[d] > 0 {
			open[d] = demand[d]
		}
	}
	if open.IsZero() {
		return bag.Copy(), nil
	}
	housing, err := OptimizeHousing(open, src, ps, objective)
	if err != nil {
		return nil, err
	}
	return bag.Add(housing), nil
}
