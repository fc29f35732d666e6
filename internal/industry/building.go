package industry

import (
	"prunkit/internal/quantity"
	"prunkit/internal/world"
)

// HousingCapacity lists what each housing variant houses. HB1–HB5 house one
// demographic, the mixed houses split across two adjacent ones.
var HousingCapacity = map[string]quantity.Population{
	"HB1": {quantity.Pioneers: 100},
	"HB2": {quantity.Settlers: 100},
	"HB3": {quantity.Technicians: 100},
	"HB4": {quantity.Engineers: 100},
	"HB5": {quantity.Scientists: 100},
	"HBB": {quantity.Pioneers: 75, quantity.Settlers: 75},
	"HBC": {quantity.Settlers: 75, quantity.Technicians: 75},
	"HBM": {quantity.Technicians: 75, quantity.Engineers: 75},
	"HBL": {quantity.Engineers: 75, quantity.Scientists: 75},
}

// HousingTickers lists all housing variants in a stable order.
var HousingTickers = []string{"HB1", "HB2", "HB3", "HB4", "HB5", "HBB", "HBC", "HBM", "HBL"}

// Building is one constructible building type. The planet context needed
// for construction surcharges and fertility is passed in, not owned.
type Building struct {
	Ticker    string
	Name      string
	Area      float64
	Expertise string // COGC specialty, e.g. AGRICULTURE
	// Workforce is the crew the building employs while running.
	Workforce quantity.Population
	// BaseCost is the planet-independent construction bill.
	BaseCost quantity.ResourceBag
	Recipes  []*Recipe
}

// IsHousing reports whether this building provides population capacity.
func (b *Building) IsHousing() bool {
	_, ok := HousingCapacity[b.Ticker]
	return ok
}

// IsExtractor reports whether this building runs deposit recipes.
func (b *Building) IsExtractor() bool {
	return b.Ticker == "COL" || b.Ticker == "RIG" || b.Ticker == "EXT"
}

// PopulationDemand returns the building's population effect: positive crew
// demand for production buildings, negative capacity for housing.
func (b *Building) PopulationDemand() quantity.Population {
	if c, ok := HousingCapacity[b.Ticker]; ok {
		return c.Neg()
	}
	return b.Workforce
}

// ConstructionMaterials is the full build bill on a planet: base cost plus
// environmental surcharges for the building's area.
func (b *Building) ConstructionMaterials(p *world.Planet) quantity.ResourceBag {
	if p == nil {
		return b.BaseCost.Copy()
	}
	return b.BaseCost.Add(p.EnvironmentCost(b.Area))
}

// COGCBonus is the production multiplier the active program grants this
// building: 1.25 on a specialty match, 1.1 when the program boosts a
// demographic the building employs, 1.0 otherwise.
func (b *Building) COGCBonus(program string) float64 {
	if program == "" {
		return 1.0
	}
	if program == b.Expertise {
		return 1.25
	}
	if b.Workforce[quantity.Demographic(program)] > 0 {
		return 1.1
	}
	return 1.0
}

// RecipesOn returns the building's recipes in the context of a planet.
// Extractors expose one recipe per matching deposit. Farms and orchards
// (FRM, ORC) produce nothing on infertile ground and otherwise carry the
// planet's fertility as a duration multiplier.
func (b *Building) RecipesOn(p *world.Planet) []*Recipe {
	if b.IsExtractor() {
		if p == nil {
			return nil
		}
		var out []*Recipe
		for _, res := range p.Resources {
			if res.Extractor == b.Ticker {
				out = append(out, ExtractionRecipe(res))
			}
		}
		return out
	}
	if b.Ticker == "FRM" || b.Ticker == "ORC" {
		if p == nil || p.Fertility <= 0 {
			return nil
		}
		out := make([]*Recipe, len(b.Recipes))
		for i, r := range b.Recipes {
			out[i] = r.WithMultiplier("fertility", 1+p.Fertility)
		}
		return out
	}
	return b.Recipes
}
