package engine

import (
	"errors"
	"math"
	"testing"

	"prunkit/internal/quantity"
)

// flatPrices is an exchange stub with unlimited depth at fixed unit prices.
type flatPrices map[string]float64

func (p flatPrices) WalkedBuy(ticker string, amount float64) float64 {
	price, ok := p[ticker]
	if !ok {
		return math.Inf(1)
	}
	return price * amount
}

func (p flatPrices) WalkedSell(ticker string, amount float64) float64 {
	return p[ticker] * amount
}

func (p flatPrices) TopBuy(ticker string) (float64, bool) {
	price, ok := p[ticker]
	return price, ok
}

func (p flatPrices) TopSell(ticker string) (float64, bool) {
	price, ok := p[ticker]
	return price, ok
}

// housingStub is a BuildingSource over a fixed variant table.
type housingStub struct {
	area      map[string]float64
	materials map[string]quantity.ResourceBag
	pop       map[string]quantity.Population
}

func (s *housingStub) BuildingArea(ticker string) (float64, bool) {
	a, ok := s.area[ticker]
	return a, ok
}

func (s *housingStub) BuildingMaterials(ticker string) (quantity.ResourceBag, bool) {
	m, ok := s.materials[ticker]
	return m, ok
}

func (s *housingStub) BuildingPopulation(ticker string) (quantity.Population, bool) {
	p, ok := s.pop[ticker]
	return p, ok
}

func testHousing() *housingStub {
	return &housingStub{
		area: map[string]float64{"HB1": 10, "HB2": 12, "HBB": 14},
		materials: map[string]quantity.ResourceBag{
			"HB1": {"BBH": 1000},
			"HB2": {"BBH": 1200},
			"HBB": {"BBH": 1600},
		},
		pop: map[string]quantity.Population{
			"HB1": {quantity.Pioneers: -100},
			"HB2": {quantity.Settlers: -100},
			"HBB": {quantity.Pioneers: -75, quantity.Settlers: -75},
		},
	}
}

func coverage(src quantity.BuildingSource, bag quantity.BuildingBag) quantity.Population {
	return bag.TotalPopulation(src).Neg()
}

func TestOptimizeHousingCost(t *testing.T) {
	src := testHousing()
	ps := flatPrices{"BBH": 1}
	demand := quantity.Population{quantity.Pioneers: 150, quantity.Settlers: 50}

	bag, err := OptimizeHousing(demand, src, ps, HousingCost)
	if err != nil {
		t.Fatalf("OptimizeHousing: %v", err)
	}
	if !coverage(src, bag).Covers(demand) {
		t.Fatalf("mix %v does not cover %v", bag, demand)
	}

	// The optimum mixes one HB1 with two thirds of an HBB: the mixed house
	// covers the settlers more cheaply than an HB2 would.
	if got := bag.Get("HB1"); math.Abs(got-1) > 1e-6 {
		t.Errorf("HB1 count = %v, want 1", got)
	}
	if got := bag.Get("HBB"); math.Abs(got-2.0/3) > 1e-6 {
		t.Errorf("HBB count = %v, want 2/3", got)
	}
	if bag.Get("HB2") != 0 {
		t.Errorf("HB2 count = %v, want 0", bag.Get("HB2"))
	}

	cost := bag.TotalCost(src, ps)
	want := 1000 + 1600*2.0/3
	if math.Abs(cost-want) > 1e-6 {
		t.Errorf("cost = %v, want %v", cost, want)
	}
	// Sanity: cheaper than the pure single-demographic mix.
	if alt := 1.5*1000 + 0.5*1200; cost >= alt {
		t.Errorf("cost %v not below pure mix %v", cost, alt)
	}
}

func TestOptimizeHousingArea(t *testing.T) {
	src := testHousing()
	demand := quantity.Population{quantity.Pioneers: 100}

	bag, err := OptimizeHousing(demand, src, nil, HousingArea)
	if err != nil {
		t.Fatalf("OptimizeHousing: %v", err)
	}
	// One HB1 (10 area) beats 4/3 HBB (18.67 area).
	if got := bag.Get("HB1"); math.Abs(got-1) > 1e-6 {
		t.Errorf("HB1 count = %v, want 1", got)
	}
	if bag.Get("HBB") != 0 {
		t.Errorf("HBB count = %v, want 0", bag.Get("HBB"))
	}
}

func TestOptimizeHousingSkipsUnpriceable(t *testing.T) {
	src := testHousing()
	// HB2's materials cannot be bought; the cost objective must fall back to
	// covering settlers with the mixed house.
	src.materials["HB2"] = quantity.ResourceBag{"UNOBTAINIUM": 1}
	ps := flatPrices{"BBH": 1}
	demand := quantity.Population{quantity.Settlers: 75}

	bag, err := OptimizeHousing(demand, src, ps, HousingCost)
	if err != nil {
		t.Fatalf("OptimizeHousing: %v", err)
	}
	if bag.Get("HB2") != 0 {
		t.Errorf("used unpriceable HB2: %v", bag)
	}
	if got := bag.Get("HBB"); math.Abs(got-1) > 1e-6 {
		t.Errorf("HBB count = %v, want 1", got)
	}
}

func TestOptimizeHousingInfeasible(t *testing.T) {
	src := testHousing()
	demand := quantity.Population{quantity.Engineers: 10}

	_, err := OptimizeHousing(demand, src, flatPrices{"BBH": 1}, HousingCost)
	var infErr *InfeasibleError
	if !errors.As(err, &infErr) {
		t.Fatalf("err = %v, want *InfeasibleError", err)
	}
	if infErr.Demand[quantity.Engineers] != 10 {
		t.Errorf("error demand = %v", infErr.Demand)
	}
}

func TestOptimizeHousingZeroDemand(t *testing.T) {
	bag, err := OptimizeHousing(quantity.Population{}, testHousing(), flatPrices{"BBH": 1}, HousingCost)
	if err != nil {
		t.Fatalf("OptimizeHousing: %v", err)
	}
	if len(bag) != 0 {
		t.Errorf("bag = %v, want empty", bag)
	}
}

func TestIncludeHousing(t *testing.T) {
	src := testHousing()
	src.area["SME"] = 20
	src.materials["SME"] = quantity.ResourceBag{"BBH": 500}
	src.pop["SME"] = quantity.Population{quantity.Pioneers: 80}
	ps := flatPrices{"BBH": 1}

	bag, err := IncludeHousing(quantity.BuildingBag{"SME": 1}, src, ps, HousingCost)
	if err != nil {
		t.Fatalf("IncludeHousing: %v", err)
	}
	if got := bag.Get("HB1"); math.Abs(got-0.8) > 1e-6 {
		t.Errorf("HB1 count = %v, want 0.8", got)
	}
	if bag.Get("SME") != 1 {
		t.Errorf("production building changed: %v", bag)
	}
	if cov := bag.TotalPopulation(src); cov[quantity.Pioneers] > 1e-9 {
		t.Errorf("net demand %v still positive", cov)
	}

	// Already housed: unchanged.
	again, err := IncludeHousing(bag, src, ps, HousingCost)
	if err != nil {
		t.Fatalf("IncludeHousing: %v", err)
	}
	if len(again) != len(bag) || math.Abs(again.Get("HB1")-bag.Get("HB1")) > 1e-9 {
		t.Errorf("housed bag changed: %v vs %v", again, bag)
	}
}

func TestOptimizeHousingInvalidObjective(t *testing.T) {
	_, err := OptimizeHousing(quantity.Population{quantity.Pioneers: 1}, testHousing(), nil, "fastest")
	if !errors.Is(err, ErrInvalidObjective) {
		t.Fatalf("err = %v, want ErrInvalidObjective", err)
	}
}
