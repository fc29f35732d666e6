package registry

import (
	"context"
	"fmt"

	"prunkit/internal/industry"
	"prunkit/internal/quantity"
	"prunkit/internal/world"
)

// Priority selects how BestRecipe ranks candidates.
type Priority string

const (
	// PriorityThroughput prefers the most output units per day.
	PriorityThroughput Priority = "throughput"
	// PriorityProfitPerHour prefers the highest absolute margin per hour.
	PriorityProfitPerHour Priority = "profit_per_hour"
	// PriorityProfitRatio prefers the highest output/input value ratio.
	PriorityProfitRatio Priority = "profit_ratio"
)

// AllRecipes returns the union of every building's recipe list.
func (r *Registry) AllRecipes(ctx context.Context) ([]*industry.Recipe, error) {
	v, err := r.get("all-recipes", func() (interface{}, error) {
		set, err := r.Buildings(ctx)
		if err != nil {
			return nil, err
		}
		var out []*industry.Recipe
		for _, ticker := range set.Tickers() {
			b, _ := set.Building(ticker)
			out = append(out, b.Recipes...)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*industry.Recipe), nil
}

// RecipeOptions augments MaterialRecipes with context-dependent candidates.
type RecipeOptions struct {
	// MiningPlanet contributes the planet's extractor recipe for the
	// material, when it has a matching deposit.
	MiningPlanet *world.Planet
	// PurchaseFrom contributes a synthetic recipe that buys the material
	// outright at this exchange's instant price.
	PurchaseFrom quantity.PriceSource
}

// MaterialRecipes returns every recipe producing ticker, optionally
// augmented per opts.
func (r *Registry) MaterialRecipes(ctx context.Context, ticker string, opts RecipeOptions) ([]*industry.Recipe, error) {
	all, err := r.AllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	var out []*industry.Recipe
	for _, rec := range all {
		if rec.Outputs.Contains(ticker) {
			out = append(out, rec)
		}
	}
	if opts.MiningPlanet != nil {
		if res, ok := opts.MiningPlanet.Resource(ticker); ok {
			out = append(out, industry.ExtractionRecipe(res))
		}
	}
	if opts.PurchaseFrom != nil {
		if rec, ok := industry.PurchaseRecipe(ticker, opts.PurchaseFrom); ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// BestRecipe picks the best producer of ticker under the given priority,
// priced at ps. Profit priorities need a price source; throughput does not.
func (r *Registry) BestRecipe(ctx context.Context, ticker string, priority Priority, ps quantity.PriceSource, opts RecipeOptions) (*industry.Recipe, error) {
	candidates, err := r.MaterialRecipes(ctx, ticker, opts)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, &NotFoundError{Kind: "recipe for", Key: ticker}
	}

	score, err := recipeScore(priority, ticker, ps)
	if err != nil {
		return nil, err
	}
	best := candidates[0]
	bestScore := score(best)
	for _, rec := range candidates[1:] {
		if s := score(rec); s > bestScore {
			best, bestScore = rec, s
		}
	}
	return best, nil
}

func recipeScore(priority Priority, ticker string, ps quantity.PriceSource) (func(*industry.Recipe) float64, error) {
	switch priority {
	case PriorityThroughput:
		return func(rec *industry.Recipe) float64 {
			return rec.Daily().Outputs.Get(ticker)
		}, nil
	case PriorityProfitPerHour:
		return func(rec *industry.Recipe) float64 {
			return rec.ProfitPerHour(ps)
		}, nil
	case PriorityProfitRatio:
		return func(rec *industry.Recipe) float64 {
			return rec.ProfitRatio(ps)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
}
