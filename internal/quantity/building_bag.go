package quantity

import (
	"math"
	"sort"
	"strings"
)

// BuildingSource resolves per-building attributes for rollups. Implemented
// by the registry, which carries the planet context needed for construction
// materials.
type BuildingSource interface {
	BuildingArea(ticker string) (float64, bool)
	// BuildingMaterials returns the full construction bag including
	// environmental surcharges for the source's planet context.
	BuildingMaterials(ticker string) (ResourceBag, bool)
	// BuildingPopulation returns the population demand; housing buildings
	// report negative values (capacity).
	BuildingPopulation(ticker string) (Population, bool)
}

// BuildingBag maps building tickers to counts. Counts may be fractional
// while planning; callers round where whole buildings are required.
type BuildingBag map[string]float64

// BagFromCounts copies a ticker→count mapping.
func BagFromCounts(m map[string]float64) BuildingBag {
	out := make(BuildingBag, len(m))
	for t, c := range m {
		out[t] = c
	}
	return out
}

// Copy returns an independent copy.
func (b BuildingBag) Copy() BuildingBag {
	out := make(BuildingBag, len(b))
	for t, c := range b {
		out[t] = c
	}
	return out
}

// Add returns b + o.
func (b BuildingBag) Add(o BuildingBag) BuildingBag {
	out := b.Copy()
	for t, c := range o {
		out[t] += c
	}
	return out
}

// Sub returns b − o.
func (b BuildingBag) Sub(o BuildingBag) BuildingBag {
	out := b.Copy()
	for t, c := range o {
		out[t] -= c
	}
	return out
}

// Scale returns b with every count multiplied by k.
func (b BuildingBag) Scale(k float64) BuildingBag {
	out := make(BuildingBag, len(b))
	for t, c := range b {
		out[t] = c * k
	}
	return out
}

// Ceil rounds every count up to a whole building.
func (b BuildingBag) Ceil() BuildingBag {
	out := make(BuildingBag, len(b))
	for t, c := range b {
		out[t] = math.Ceil(c)
	}
	return out
}

// Prune drops entries whose count is (nearly) zero.
func (b BuildingBag) Prune() BuildingBag {
	out := BuildingBag{}
	for t, c := range b {
		if math.Abs(c) > 1e-9 {
			out[t] = c
		}
	}
	return out
}

// Get returns the count for ticker (zero when absent).
func (b BuildingBag) Get(ticker string) float64 { return b[ticker] }

// Tickers returns the sorted tickers present in the bag.
func (b BuildingBag) Tickers() []string {
	out := make([]string, 0, len(b))
	for t := range b {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TotalArea sums area × count.
func (b BuildingBag) TotalArea(src BuildingSource) float64 {
	var sum float64
	for t, c := range b {
		if a, ok := src.BuildingArea(t); ok {
			sum += a * c
		}
	}
	return sum
}

// TotalMaterials sums construction materials across the bag.
func (b BuildingBag) TotalMaterials(src BuildingSource) ResourceBag {
	total := ResourceBag{}
	for t, c := range b {
		if mats, ok := src.BuildingMaterials(t); ok {
			total = total.Add(mats.Scale(c))
		}
	}
	return total
}

// TotalCost values the construction materials at an exchange (walked buy).
func (b BuildingBag) TotalCost(src BuildingSource, ps PriceSource) float64 {
	return b.TotalMaterials(src).Value(ps, Buy)
}

// TotalPopulation sums population demand; negative components are housing
// capacity.
func (b BuildingBag) TotalPopulation(src BuildingSource) Population {
	total := Population{}
	for t, c := range b {
		if pop, ok := src.BuildingPopulation(t); ok {
			total = total.Add(pop.Scale(c))
		}
	}
	return total
}

// isHousing reports whether a building contributes capacity rather than
// demand.
func isHousing(src BuildingSource, ticker string) bool {
	pop, ok := src.BuildingPopulation(ticker)
	if !ok {
		return false
	}
	for _, v := range pop {
		if v < 0 {
			return true
		}
	}
	return false
}

// ExpandToArea proportionally scales the bag to fill maxArea, then snaps it
// to whole buildings. The snap rule, kept deliberately simple and stable:
// non-housing counts are floored; housing counts start from the ceiling of
// their scaled value and are then decremented one building at a time (larger
// areas first) as long as total housing capacity still covers the floored
// bag's demand in every demographic.
func (b BuildingBag) ExpandToArea(src BuildingSource, maxArea float64) BuildingBag {
	current := b.TotalArea(src)
	if current <= 0 {
		return b.Copy()
	}
	scaled := b.Scale(maxArea / current)

	out := BuildingBag{}
	var housing []string
	for t, c := range scaled {
		if isHousing(src, t) {
			housing = append(housing, t)
			out[t] = math.Ceil(c)
		} else {
			out[t] = math.Floor(c)
		}
	}
	if len(housing) == 0 {
		return out.Prune()
	}

	// Demand of the floored production buildings.
	demand := Population{}
	for t, c := range out {
		if isHousing(src, t) {
			continue
		}
		if pop, ok := src.BuildingPopulation(t); ok {
			demand = demand.Add(pop.Scale(c))
		}
	}

	capacity := func(bag BuildingBag) Population {
		total := Population{}
		for _, t := range housing {
			if pop, ok := src.BuildingPopulation(t); ok {
				total = total.Add(pop.Scale(-bag[t]))
			}
		}
		return total
	}

	// Larger houses first so the cheap snap happens on the big entries.
	sort.Slice(housing, func(i, j int) bool {
		ai, _ := src.BuildingArea(housing[i])
		aj, _ := src.BuildingArea(housing[j])
		if ai != aj {
			return ai > aj
		}
		return housing[i] < housing[j]
	})
	for _, t := range housing {
		for out[t] > 0 {
			trial := out.Copy()
			trial[t]--
			if !capacity(trial).Covers(demand) {
				break
			}
			out = trial
		}
	}
	return out.Prune()
}

// String renders "<count> <TICKER>" pairs joined by commas.
func (b BuildingBag) String() string {
	parts := make([]string, 0, len(b))
	for _, t := range b.Tickers() {
		parts = append(parts, formatAmount(b[t])+" "+t)
	}
	return strings.Join(parts, ", ")
}
