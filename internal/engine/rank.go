package engine

import (
	"sort"

	"prunkit/internal/industry"
	"prunkit/internal/market"
	"prunkit/internal/quantity"
	"prunkit/internal/world"
)

// PlanetScore is one planet's suitability for extracting a material.
type PlanetScore struct {
	Planet         *world.Planet
	Resource       world.Resource
	RelativeFactor float64 // deposit abundance within the galaxy-wide range
	DailyYield     float64
	DailyRevenue   float64 // yield sold walked at the nearest exchange
	SetupCost      float64 // extractor construction priced there
	Exchange       *market.Exchange
	Jumps          int
	Score          float64
}

// PlanetRanker scores planets for extraction of one material. Nearest maps a
// planet to its closest exchange; planets with no reachable exchange are
// skipped.
type PlanetRanker struct {
	Catalog industry.Catalog
	Nearest func(p *world.Planet) (*market.Exchange, int, bool)
}

// Rank scores every planet holding a deposit of ticker. The score is the
// daily revenue discounted by shipping distance, revenue/(1+jumps), so a
// rich deposit deep in the frontier loses to a decent one next door.
// Results are sorted best first and truncated to maxResults when positive.
func (pr *PlanetRanker) Rank(planets []*world.Planet, ticker string, fr world.FactorRange, maxResults int) []PlanetScore {
	var scores []PlanetScore
	for _, p := range planets {
		res, ok := p.Resource(ticker)
		if !ok {
			continue
		}
		ex, jumps, ok := pr.Nearest(p)
		if !ok {
			continue
		}
		s := PlanetScore{
			Planet:         p,
			Resource:       res,
			RelativeFactor: fr.Relative(res.Factor),
			DailyYield:     res.DailyYield,
			DailyRevenue:   ex.WalkedSell(ticker, res.DailyYield),
			Exchange:       ex,
			Jumps:          jumps,
		}
		if b, ok := pr.Catalog.Building(res.Extractor); ok {
			s.SetupCost = b.ConstructionMaterials(p).Value(ex, quantity.Buy)
		}
		s.Score = s.DailyRevenue / float64(1+jumps)
		scores = append(scores, s)
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if maxResults > 0 && len(scores) > maxResults {
		scores = scores[:maxResults]
	}
	return scores
}

// ManufactureScore is one recipe's profitability at an exchange.
type ManufactureScore struct {
	Recipe        *industry.Recipe
	Bonus         float64 // COGC speed bonus applied
	ProfitPerHour float64
	ProfitRatio   float64
}

// RankManufacture orders recipes by profit per hour at ps. When program
// names an active COGC program, each recipe runs faster by its building's
// bonus for that program. Unprofitable recipes are kept so callers can see
// how far underwater a chain is; maxResults > 0 truncates.
func RankManufacture(recipes []*industry.Recipe, catalog industry.Catalog, program string, ps quantity.PriceSource, maxResults int) []ManufactureScore {
	scores := make([]ManufactureScore, 0, len(recipes))
	for _, rec := range recipes {
		bonus := 1.0
		if b, ok := catalog.Building(rec.Building); ok {
			bonus = b.COGCBonus(program)
		}
		scored := rec
		if bonus != 1 {
			scored = rec.WithMultiplier("cogc", bonus)
		}
		scores = append(scores, ManufactureScore{
			Recipe:        rec,
			Bonus:         bonus,
			ProfitPerHour: scored.ProfitPerHour(ps),
			ProfitRatio:   scored.ProfitRatio(ps),
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].ProfitPerHour > scores[j].ProfitPerHour
	})
	if maxResults > 0 && len(scores) > maxResults {
		scores = scores[:maxResults]
	}
	return scores
}
