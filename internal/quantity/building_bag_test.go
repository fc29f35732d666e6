package quantity

import (
	"math"
	"testing"
)

// stubBuildings implements BuildingSource with a fixed table.
type stubBuilding struct {
	area float64
	mats ResourceBag
	pop  Population
}

type stubBuildings map[string]stubBuilding

func (s stubBuildings) BuildingArea(t string) (float64, bool) {
	b, ok := s[t]
	return b.area, ok
}

func (s stubBuildings) BuildingMaterials(t string) (ResourceBag, bool) {
	b, ok := s[t]
	return b.mats, ok
}

func (s stubBuildings) BuildingPopulation(t string) (Population, bool) {
	b, ok := s[t]
	return b.pop, ok
}

func testBuildings() stubBuildings {
	return stubBuildings{
		// Housing: capacity is negative demand.
		"HB1": {area: 10, mats: ResourceBag{"BSE": 4}, pop: Population{Pioneers: -100}},
		"HBB": {area: 14, mats: ResourceBag{"BSE": 6}, pop: Population{Pioneers: -75, Settlers: -75}},
		// Production.
		"SME": {area: 17, mats: ResourceBag{"BSE": 6, "BBH": 4}, pop: Population{Pioneers: 50}},
		"FRM": {area: 30, mats: ResourceBag{"BBH": 3}, pop: Population{Pioneers: 40}},
	}
}

func TestBuildingBag_Totals(t *testing.T) {
	src := testBuildings()
	bag := BagFromCounts(map[string]float64{"SME": 2, "HB1": 1})

	if got := bag.TotalArea(src); got != 2*17+10 {
		t.Errorf("TotalArea = %v, want 44", got)
	}
	mats := bag.TotalMaterials(src)
	if mats["BSE"] != 2*6+4 || mats["BBH"] != 8 {
		t.Errorf("TotalMaterials = %v", mats)
	}
	pop := bag.TotalPopulation(src)
	if pop[Pioneers] != 2*50-100 {
		t.Errorf("TotalPopulation = %v, want net 0 pioneers", pop)
	}
}

func TestBuildingBag_TotalCost(t *testing.T) {
	src := testBuildings()
	prices := stubPrices{"BSE": {100, 90}, "BBH": {50, 40}}
	bag := BagFromCounts(map[string]float64{"SME": 1})
	if got, want := bag.TotalCost(src, prices), 6*100.0+4*50.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalCost = %v, want %v", got, want)
	}
}

func TestBuildingBag_ExpandToArea_SnapsHousing(t *testing.T) {
	src := testBuildings()
	// 1 SME (17) + 1 HB1 (10) = 27 area. Doubling the area scales to
	// 2 SME + 2 HB1; 2 SME demand 100 pioneers, exactly 1 HB1 worth... no:
	// HB1 houses 100, so 1 HB1 suffices and the snap should drop the second.
	bag := BagFromCounts(map[string]float64{"SME": 1, "HB1": 1})
	out := bag.ExpandToArea(src, 54)

	if out["SME"] != 2 {
		t.Errorf("SME = %v, want 2", out["SME"])
	}
	if out["HB1"] != 1 {
		t.Errorf("HB1 = %v, want snapped to 1 (covers 100 demand)", out["HB1"])
	}

	demand := Population{}
	for ticker, c := range out {
		if isHousing(src, ticker) {
			continue
		}
		pop, _ := src.BuildingPopulation(ticker)
		demand = demand.Add(pop.Scale(c))
	}
	capacity := Population{}
	for ticker, c := range out {
		if !isHousing(src, ticker) {
			continue
		}
		pop, _ := src.BuildingPopulation(ticker)
		capacity = capacity.Add(pop.Scale(-c))
	}
	if !capacity.Covers(demand) {
		t.Errorf("capacity %v does not cover demand %v", capacity, demand)
	}
}

func TestBuildingBag_ExpandToArea_EmptyBag(t *testing.T) {
	src := testBuildings()
	out := BuildingBag{}.ExpandToArea(src, 100)
	if len(out) != 0 {
		t.Errorf("expected empty result, got %v", out)
	}
}

func TestBuildingBag_Arithmetic(t *testing.T) {
	a := BagFromCounts(map[string]float64{"SME": 2})
	b := BagFromCounts(map[string]float64{"SME": 1, "FRM": 1})
	if got := a.Add(b).Get("SME"); got != 3 {
		t.Errorf("Add = %v, want 3", got)
	}
	if got := a.Sub(b).Prune(); got.Get("SME") != 1 || got.Get("FRM") != -1 {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(0.5).Get("SME"); got != 1 {
		t.Errorf("Scale = %v, want 1", got)
	}
}
