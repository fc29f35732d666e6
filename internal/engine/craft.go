package engine

import (
	"math"

	"prunkit/internal/industry"
	"prunkit/internal/quantity"
)

// maxCraftDepth bounds the recipe recursion; FIO production chains are at
// most a dozen tiers deep.
const maxCraftDepth = 16

// CraftPlan is one node of a sourcing tree: how to obtain Amount units of
// Ticker, either bought outright or crafted from recursively planned inputs.
type CraftPlan struct {
	Ticker string
	Amount float64
	Buy    bool             // true when buying beats every recipe
	Recipe *industry.Recipe // set when crafted
	Cost   float64          // total cost of this subtree
	Inputs []*CraftPlan     // crafted only
}

// Crafter plans bulk production runs. Recipes returns the candidate
// producers for a ticker; Prices values the buy fallback and any leaf
// purchases.
type Crafter struct {
	Recipes func(ticker string) []*industry.Recipe
	Prices  quantity.PriceSource
}

// Plan costs acquiring amount units of ticker. Every recipe producing the
// ticker is costed by recursively planning its scaled inputs; the cheapest
// option wins, with a walked market buy as the baseline. Materials already
// being crafted higher up the chain are bought rather than recursed into,
// which also breaks recipe cycles.
func (c *Crafter) Plan(ticker string, amount float64) *CraftPlan {
	return c.plan(ticker, amount, map[string]bool{}, 0)
}

func (c *Crafter) plan(ticker string, amount float64, crafting map[string]bool, depth int) *CraftPlan {
	best := &CraftPlan{
		Ticker: ticker,
		Amount: amount,
		Buy:    true,
		Cost:   c.Prices.WalkedBuy(ticker, amount),
	}
	if crafting[ticker] || depth >= maxCraftDepth {
		return best
	}

	crafting[ticker] = true
	defer delete(crafting, ticker)

	for _, rec := range c.Recipes(ticker) {
		perCraft := rec.Outputs.Get(ticker)
		if perCraft <= 0 {
			continue
		}
		crafts := amount / perCraft
		candidate := &CraftPlan{
			Ticker: ticker,
			Amount: amount,
			Recipe: rec,
			Cost:   rec.PurchaseCost * crafts,
		}
		for _, input := range rec.Inputs.Tickers() {
			sub := c.plan(input, rec.Inputs.Get(input)*crafts, crafting, depth+1)
			candidate.Inputs = append(candidate.Inputs, sub)
			candidate.Cost += sub.Cost
		}
		if candidate.Cost < best.Cost {
			best = candidate
		}
	}
	return best
}

// UnitCost is the average cost per unit of the planned amount.
func (p *CraftPlan) UnitCost() float64 {
	if p.Amount <= 0 {
		return math.Inf(1)
	}
	return p.Cost / p.Amount
}
