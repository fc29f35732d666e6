package engine

import (
	"errors"
	"math"
	"testing"

	"prunkit/internal/industry"
	"prunkit/internal/quantity"
)

func namedRecipe(name string, outputs quantity.ResourceBag) *industry.Recipe {
	return &industry.Recipe{
		Name:     name,
		RawHours: 24,
		Inputs:   quantity.ResourceBag{},
		Outputs:  outputs,
	}
}

func totals(allocs []Allocation) map[string]int {
	out := map[string]int{}
	for _, a := range allocs {
		out[a.Recipe.Name] += a.Count
	}
	return out
}

func TestBalanceTwoRecipes(t *testing.T) {
	q := &RecipeQueue{Capacity: 5, MaxOrder: 3}
	recipes := []QueueRecipe{
		{Recipe: namedRecipe("A", quantity.ResourceBag{"X": 1}), Ideal: 0.7},
		{Recipe: namedRecipe("B", quantity.ResourceBag{"Y": 1}), Ideal: 0.3},
	}
	allocs, err := q.Balance(recipes)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	// The climb stops at 2:1 — the realized ratio 0.667/0.333 is a local
	// optimum no single increment improves.
	got := totals(allocs)
	if got["A"] != 2 || got["B"] != 1 {
		t.Errorf("totals = %v, want A:2 B:1", got)
	}
	for _, a := range allocs {
		if a.Count < 1 || a.Count > q.MaxOrder {
			t.Errorf("slot count %d outside [1, %d]", a.Count, q.MaxOrder)
		}
	}
}

func TestBalanceEnlargesWithReservedSlots(t *testing.T) {
	q := &RecipeQueue{Capacity: 5, MaxOrder: 3}
	recipes := []QueueRecipe{
		{Recipe: namedRecipe("A", quantity.ResourceBag{"X": 1}), Ideal: 0.9},
		{Recipe: namedRecipe("B", quantity.ResourceBag{"Y": 1}), Ideal: 0.1},
	}
	allocs, err := q.Balance(recipes)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	// 9:1 hits the ideal exactly; the climb had to grow A past its size cap
	// twice, consuming two of the three reserved slots.
	got := totals(allocs)
	if got["A"] != 9 || got["B"] != 1 {
		t.Fatalf("totals = %v, want A:9 B:1", got)
	}
	if len(allocs) > q.Capacity {
		t.Errorf("used %d slots, capacity %d", len(allocs), q.Capacity)
	}
	for _, a := range allocs {
		if a.Count > q.MaxOrder {
			t.Errorf("slot count %d exceeds per-slot cap %d", a.Count, q.MaxOrder)
		}
	}
}

func TestBalanceCapacityExceeded(t *testing.T) {
	q := &RecipeQueue{Capacity: 5, MaxOrder: 3}
	var recipes []QueueRecipe
	for i := 0; i < 6; i++ {
		recipes = append(recipes, QueueRecipe{
			Recipe: namedRecipe(string(rune('A'+i)), quantity.ResourceBag{"X": 1}),
			Ideal:  1,
		})
	}
	_, err := q.Balance(recipes)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("err = %v, want *CapacityError", err)
	}
	if capErr.Recipes != 6 || capErr.Capacity != 5 {
		t.Errorf("error = %+v", capErr)
	}
}

func TestBalanceEmpty(t *testing.T) {
	q := &RecipeQueue{Capacity: 5, MaxOrder: 3}
	allocs, err := q.Balance(nil)
	if err != nil || allocs != nil {
		t.Errorf("Balance(nil) = %v, %v", allocs, err)
	}
}

func TestSplitSpreadsRemainder(t *testing.T) {
	q := &RecipeQueue{Capacity: 5, MaxOrder: 3}
	recipes := []QueueRecipe{{Recipe: namedRecipe("A", nil), Ideal: 1}}
	allocs := q.split(recipes, []int{7})
	want := []int{3, 2, 2}
	if len(allocs) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(allocs), len(want))
	}
	for i, a := range allocs {
		if a.Count != want[i] {
			t.Errorf("bucket %d = %d, want %d", i, a.Count, want[i])
		}
	}
}

func TestIdealRatios(t *testing.T) {
	fast := namedRecipe("FAST", quantity.ResourceBag{"X": 10}) // 10/day
	slow := namedRecipe("SLOW", quantity.ResourceBag{"Y": 4})  // 4/day
	traded := map[string]float64{"X": 5, "Y": 6}

	ratios := IdealRatios([]*industry.Recipe{fast, slow}, func(ticker string) float64 {
		return traded[ticker]
	})
	// FAST overproduces (10 made, 5 traded) so it gets the smaller share:
	// weights 0.5 and 1.5 normalize to 0.25 and 0.75.
	if math.Abs(ratios[0].Ideal-0.25) > 1e-9 {
		t.Errorf("fast ideal = %v, want 0.25", ratios[0].Ideal)
	}
	if math.Abs(ratios[1].Ideal-0.75) > 1e-9 {
		t.Errorf("slow ideal = %v, want 0.75", ratios[1].Ideal)
	}
}

func TestIdealRatiosUntraded(t *testing.T) {
	dead := namedRecipe("DEAD", quantity.ResourceBag{"X": 10})
	live := namedRecipe("LIVE", quantity.ResourceBag{"Y": 4})
	ratios := IdealRatios([]*industry.Recipe{dead, live}, func(ticker string) float64 {
		if ticker == "Y" {
			return 8
		}
		return 0
	})
	if ratios[0].Ideal != 0 {
		t.Errorf("untraded ideal = %v, want 0", ratios[0].Ideal)
	}
	if math.Abs(ratios[1].Ideal-1) > 1e-9 {
		t.Errorf("traded ideal = %v, want 1", ratios[1].Ideal)
	}
}
