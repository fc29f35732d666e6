package industry

import (
	"math"
	"strings"

	"prunkit/internal/quantity"
	"prunkit/internal/world"
)

// Recipe is one production option of a building. Inputs and outputs are per
// craft; multipliers shorten the raw duration.
type Recipe struct {
	Building string // owning building ticker
	Name     string // e.g. "SME:2xFEO-1xC-1xO=>1xFE"
	RawHours float64
	// Multipliers divide the raw duration: cogc, expert, fertility.
	Multipliers map[string]float64
	Inputs      quantity.ResourceBag
	Outputs     quantity.ResourceBag
	// PurchaseCost is the flat per-craft cost of synthetic purchase
	// recipes; zero for real recipes.
	PurchaseCost float64
}

// BuildingKey extracts the building ticker from a standard recipe name.
// Names are either colon-prefixed ("SME:...") or a bare ticker ("COL"); the
// first three characters with a trailing colon trimmed cover both.
func BuildingKey(standardName string) string {
	key := standardName
	if len(key) > 3 {
		key = key[:3]
	}
	return strings.TrimSuffix(key, ":")
}

// DurationHours is the effective craft time: raw divided by the product of
// all multipliers.
func (r *Recipe) DurationHours() float64 {
	d := r.RawHours
	for _, m := range r.Multipliers {
		if m > 0 {
			d /= m
		}
	}
	return d
}

// WithMultiplier returns a copy of the recipe with one more multiplier set.
func (r *Recipe) WithMultiplier(name string, value float64) *Recipe {
	out := *r
	out.Multipliers = make(map[string]float64, len(r.Multipliers)+1)
	for k, v := range r.Multipliers {
		out.Multipliers[k] = v
	}
	out.Multipliers[name] = value
	return &out
}

// Daily returns the recipe normalized to a 24-hour day: inputs and outputs
// scaled by 24/duration, duration pinned at 24.
func (r *Recipe) Daily() *Recipe {
	k := 24 / r.DurationHours()
	return &Recipe{
		Building:     r.Building,
		Name:         r.Name,
		RawHours:     24,
		Inputs:       r.Inputs.Scale(k),
		Outputs:      r.Outputs.Scale(k),
		PurchaseCost: r.PurchaseCost * k,
	}
}

// ProfitPerCraft is output revenue minus input cost at an exchange, both
// walked through the books.
func (r *Recipe) ProfitPerCraft(ps quantity.PriceSource) float64 {
	return r.Outputs.Value(ps, quantity.Sell) - r.CraftCost(ps)
}

// CraftCost is the walked input cost of one craft, including the flat cost
// of purchase recipes.
func (r *Recipe) CraftCost(ps quantity.PriceSource) float64 {
	return r.Inputs.Value(ps, quantity.Buy) + r.PurchaseCost
}

// ProfitPerHour normalizes profit by effective duration.
func (r *Recipe) ProfitPerHour(ps quantity.PriceSource) float64 {
	return r.ProfitPerCraft(ps) / r.DurationHours()
}

// ProfitRatio is output value over input value. Free outputs are infinitely
// profitable; a recipe that moves nothing has ratio 1.
func (r *Recipe) ProfitRatio(ps quantity.PriceSource) float64 {
	in := r.CraftCost(ps)
	out := r.Outputs.Value(ps, quantity.Sell)
	if in == 0 {
		if out > 0 {
			return math.Inf(1)
		}
		return 1
	}
	return out / in
}

// ExtractionRecipe builds the implicit recipe an extractor runs for one
// planetary deposit.
func ExtractionRecipe(res world.Resource) *Recipe {
	return &Recipe{
		Building: res.Extractor,
		Name:     res.Extractor + ":=>" + res.Ticker,
		RawHours: res.ProcessHours,
		Inputs:   quantity.ResourceBag{},
		Outputs:  quantity.ResourceBag{res.Ticker: res.ProcessAmount},
	}
}

// PurchaseBatch is the inflated batch size of synthetic purchase recipes,
// large enough that per-unit rounding noise stays negligible in downstream
// cost searches.
const PurchaseBatch = 1000

// PurchaseRecipe synthesizes a "recipe" that buys the material outright at
// the exchange's instant price. The cost lives in PurchaseCost rather than
// the input bag; there is no material to consume.
func PurchaseRecipe(ticker string, ps quantity.PriceSource) (*Recipe, bool) {
	price, ok := ps.TopSell(ticker)
	if !ok {
		return nil, false
	}
	return &Recipe{
		Name:         "BUY:" + ticker,
		RawHours:     24,
		Inputs:       quantity.ResourceBag{},
		Outputs:      quantity.ResourceBag{ticker: PurchaseBatch},
		PurchaseCost: price * PurchaseBatch,
	}, true
}
