package industry

import (
	"prunkit/internal/quantity"
	"prunkit/internal/world"
)

// MaintenanceDays is the amortization horizon for building repairs: a base
// consumes its full construction bill again over this many days.
const MaintenanceDays = 180

// Catalog resolves building tickers. Implemented by the registry.
type Catalog interface {
	Building(ticker string) (*Building, bool)
}

// PlanetSource binds a catalog to one planet so building rollups include
// that planet's environmental surcharges. It satisfies
// quantity.BuildingSource.
type PlanetSource struct {
	Catalog Catalog
	Planet  *world.Planet
}

func (s PlanetSource) BuildingArea(ticker string) (float64, bool) {
	b, ok := s.Catalog.Building(ticker)
	if !ok {
		return 0, false
	}
	return b.Area, true
}

func (s PlanetSource) BuildingMaterials(ticker string) (quantity.ResourceBag, bool) {
	b, ok := s.Catalog.Building(ticker)
	if !ok {
		return nil, false
	}
	return b.ConstructionMaterials(s.Planet), true
}

func (s PlanetSource) BuildingPopulation(ticker string) (quantity.Population, bool) {
	b, ok := s.Catalog.Building(ticker)
	if !ok {
		return nil, false
	}
	return b.PopulationDemand(), true
}

// Base is a set of buildings on one planet. Every base carries one core
// module (CM) on top of the listed buildings.
type Base struct {
	Planet    *world.Planet
	Buildings quantity.BuildingBag
}

// NewBase copies the bag and adds the implicit core module.
func NewBase(p *world.Planet, buildings quantity.BuildingBag) *Base {
	bag := buildings.Copy()
	bag["CM"]++
	return &Base{Planet: p, Buildings: bag}
}

func (b *Base) source(cat Catalog) PlanetSource {
	return PlanetSource{Catalog: cat, Planet: b.Planet}
}

// Area is the total area the base occupies.
func (b *Base) Area(cat Catalog) float64 {
	return b.Buildings.TotalArea(b.source(cat))
}

// ConstructionMaterials is the full construction bill on the base's planet.
func (b *Base) ConstructionMaterials(cat Catalog) quantity.ResourceBag {
	return b.Buildings.TotalMaterials(b.source(cat))
}

// DailyMaintenance amortizes the construction bill over the repair horizon.
func (b *Base) DailyMaintenance(cat Catalog) quantity.ResourceBag {
	return b.ConstructionMaterials(cat).Div(MaintenanceDays)
}

// PopulationDemand nets crew demand against housing capacity.
func (b *Base) PopulationDemand(cat Catalog) quantity.Population {
	return b.Buildings.TotalPopulation(b.source(cat))
}

// DailyUpkeep converts the base's positive population demand into consumed
// materials per day using a per-100-heads needs table.
func (b *Base) DailyUpkeep(cat Catalog, needs map[quantity.Demographic]quantity.ResourceBag) quantity.ResourceBag {
	return b.PopulationDemand(cat).Upkeep(needs)
}

// AvailableRecipes lists every recipe the base's buildings can run on its
// planet, one entry per building owned (duplicates are intentional: two
// smelters can run two queues).
func (b *Base) AvailableRecipes(cat Catalog) []*Recipe {
	var out []*Recipe
	for _, ticker := range b.Buildings.Tickers() {
		bld, ok := cat.Building(ticker)
		if !ok {
			continue
		}
		count := int(b.Buildings[ticker])
		for i := 0; i < count; i++ {
			out = append(out, bld.RecipesOn(b.Planet)...)
		}
	}
	return out
}
