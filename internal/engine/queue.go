package engine

import (
	"fmt"
	"math"

	"prunkit/internal/industry"
)

// CapacityError reports an attempt to queue more recipes than slots.
type CapacityError struct {
	Recipes  int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%d recipes exceed queue capacity %d", e.Recipes, e.Capacity)
}

// QueueRecipe pairs a recipe with its ideal share of the queue.
type QueueRecipe struct {
	Recipe *industry.Recipe
	Ideal  float64 // target production ratio; normalized internally
}

// Allocation is one queue slot of the balanced result.
type Allocation struct {
	Recipe *industry.Recipe
	Count  int
}

// RecipeQueue balances order sizes across a production line's slots so the
// realized production ratios approach the ideals.
type RecipeQueue struct {
	Capacity int // total slots, default 5
	MaxOrder int // per-slot order size cap
}

// IdealRatios derives target shares for a recipe set: each recipe is
// weighted by 1/(daily produced / daily traded), so slow-moving goods get
// more queue share. Recipes whose output never trades get weight 0.
func IdealRatios(recipes []*industry.Recipe, dailyTraded func(ticker string) float64) []QueueRecipe {
	out := make([]QueueRecipe, len(recipes))
	var sum float64
	for i, r := range recipes {
		out[i].Recipe = r
		daily := r.Daily()
		var produced, traded float64
		for _, t := range daily.Outputs.Tickers() {
			produced += daily.Outputs.Get(t)
			traded += dailyTraded(t)
		}
		if produced > 0 && traded > 0 {
			out[i].Ideal = traded / produced // 1 / (produced/traded)
		}
		sum += out[i].Ideal
	}
	if sum > 0 {
		for i := range out {
			out[i].Ideal /= sum
		}
	}
	return out
}

// Balance searches the integer order-size assignment by hill climbing.
// Every recipe starts with one order of size one; each step takes the
// single increment that most reduces the Euclidean distance between the
// realized and ideal ratios, growing an entry past its size cap only by
// consuming one of the queue's reserved slots (the oversized bucket is
// split across the extra slot afterwards). The climb stops at the first
// state no increment improves, so the distance is strictly decreasing and
// termination is guaranteed.
func (q *RecipeQueue) Balance(recipes []QueueRecipe) ([]Allocation, error) {
	if len(recipes) == 0 {
		return nil, nil
	}
	if len(recipes) > q.Capacity {
		return nil, &CapacityError{Recipes: len(recipes), Capacity: q.Capacity}
	}

	n := len(recipes)
	ideal := make([]float64, n)
	var idealSum float64
	for i, r := range recipes {
		ideal[i] = r.Ideal
		idealSum += r.Ideal
	}
	if idealSum <= 0 {
		return nil, fmt.Errorf("no recipe has a positive ideal ratio")
	}
	for i := range ideal {
		ideal[i] /= idealSum
	}

	orders := make([]int, n)
	maxes := make([]int, n)
	for i := range orders {
		orders[i] = 1
		maxes[i] = q.MaxOrder
	}
	reserved := q.Capacity - n

	distance := func(orders []int) float64 {
		var total float64
		for _, o := range orders {
			total += float64(o)
		}
		var sum float64
		for i, o := range orders {
			d := float64(o)/total - ideal[i]
			sum += d * d
		}
		return math.Sqrt(sum)
	}

	current := distance(orders)
	for {
		bestIdx, bestDist := -1, current
		enlarges := false
		for i := range orders {
			needsSlot := orders[i] >= maxes[i]
			if needsSlot && reserved == 0 {
				continue
			}
			orders[i]++
			if d := distance(orders); d < bestDist-lpEps {
				bestIdx, bestDist = i, d
				enlarges = needsSlot
			}
			orders[i]--
		}
		if bestIdx < 0 {
			break
		}
		if enlarges {
			maxes[bestIdx] += q.MaxOrder
			reserved--
		}
		orders[bestIdx]++
		current = bestDist
	}

	return q.split(recipes, orders), nil
}

// split breaks each recipe's total into ≤MaxOrder buckets: full buckets
// first, then the remainder spread +1 left to right.
func (q *RecipeQueue) split(recipes []QueueRecipe, orders []int) []Allocation {
	var out []Allocation
	for i, total := range orders {
		buckets := (total + q.MaxOrder - 1) / q.MaxOrder
		base := total / buckets
		extra := total - base*buckets
		for b := 0; b < buckets; b++ {
			count := base
			if b < extra {
				count++
			}
			out = append(out, Allocation{Recipe: recipes[i].Recipe, Count: count})
		}
	}
	return out
}
