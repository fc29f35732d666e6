package quantity

import (
	"math"
	"testing"
)

func TestPopulation_AddScaleNeg(t *testing.T) {
	p := Population{Pioneers: 100, Settlers: 50}
	q := Population{Settlers: 25, Engineers: 10}

	sum := p.Add(q)
	if sum[Pioneers] != 100 || sum[Settlers] != 75 || sum[Engineers] != 10 {
		t.Errorf("Add = %v", sum)
	}
	if got := p.Scale(2)[Settlers]; got != 100 {
		t.Errorf("Scale = %v, want 100", got)
	}
	if got := p.Neg()[Pioneers]; got != -100 {
		t.Errorf("Neg = %v, want -100", got)
	}
	if got := p.Total(); got != 150 {
		t.Errorf("Total = %v, want 150", got)
	}
}

func TestPopulation_Covers(t *testing.T) {
	capacity := Population{Pioneers: 150, Settlers: 50}
	if !capacity.Covers(Population{Pioneers: 150, Settlers: 50}) {
		t.Error("exact cover should pass")
	}
	if capacity.Covers(Population{Pioneers: 151}) {
		t.Error("shortfall should fail")
	}
	if !capacity.Covers(Population{}) {
		t.Error("empty demand is always covered")
	}
}

func TestPopulation_Upkeep(t *testing.T) {
	needs := map[Demographic]ResourceBag{
		Pioneers: {"RAT": 4, "DW": 4, "OVE": 0.5},
		Settlers: {"RAT": 6, "DW": 5},
	}
	p := Population{Pioneers: 200, Settlers: 50}
	up := p.Upkeep(needs)
	// 200 pioneers = 2 units of the per-100 table, 50 settlers = 0.5 units.
	if math.Abs(up["RAT"]-(2*4+0.5*6)) > 1e-9 {
		t.Errorf("RAT upkeep = %v, want 11", up["RAT"])
	}
	if math.Abs(up["OVE"]-1) > 1e-9 {
		t.Errorf("OVE upkeep = %v, want 1", up["OVE"])
	}
	// Capacity (negative) contributes nothing.
	neg := Population{Pioneers: -100}
	if got := neg.Upkeep(needs); len(got) != 0 {
		t.Errorf("negative population upkeep = %v, want empty", got)
	}
}

func TestPopulation_IsZero(t *testing.T) {
	if !(Population{}).IsZero() {
		t.Error("empty population should be zero")
	}
	if (Population{Scientists: 1}).IsZero() {
		t.Error("non-empty population should not be zero")
	}
}
