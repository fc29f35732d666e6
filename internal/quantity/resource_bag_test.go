package quantity

import (
	"math"
	"testing"
)

// stubMaterials implements MaterialSource with a fixed attribute table.
type stubMaterials map[string][2]float64 // ticker -> {weight, volume}

func (s stubMaterials) MaterialAttributes(t string) (float64, float64, bool) {
	a, ok := s[t]
	return a[0], a[1], ok
}

// stubPrices implements PriceSource with flat per-unit prices.
type stubPrices map[string][2]float64 // ticker -> {sell price (asks), buy price (bids)}

func (s stubPrices) WalkedBuy(t string, amount float64) float64 {
	p, ok := s[t]
	if !ok {
		return math.Inf(1)
	}
	return amount * p[0]
}

func (s stubPrices) WalkedSell(t string, amount float64) float64 {
	p, ok := s[t]
	if !ok {
		return 0
	}
	return amount * p[1]
}

func (s stubPrices) TopSell(t string) (float64, bool) {
	p, ok := s[t]
	return p[0], ok
}

func (s stubPrices) TopBuy(t string) (float64, bool) {
	p, ok := s[t]
	return p[1], ok
}

func TestResourceBag_Arithmetic(t *testing.T) {
	a := FromMapping(map[string]float64{"RAT": 10, "DW": 4})
	b := FromMapping(map[string]float64{"DW": 4, "OVE": 1})

	sum := a.Add(b)
	if sum["RAT"] != 10 || sum["DW"] != 8 || sum["OVE"] != 1 {
		t.Errorf("Add = %v", sum)
	}

	diff := sum.Sub(b).Prune()
	if diff["RAT"] != 10 || diff["DW"] != 4 || diff.Contains("OVE") {
		t.Errorf("(a+b)-b = %v, want a", diff)
	}

	if got := a.Scale(2).Get("DW"); got != 8 {
		t.Errorf("Scale(2)[DW] = %v, want 8", got)
	}
	if got := a.Div(2).Get("RAT"); got != 5 {
		t.Errorf("Div(2)[RAT] = %v, want 5", got)
	}
	if got := a.Neg().Get("RAT"); got != -10 {
		t.Errorf("Neg[RAT] = %v, want -10", got)
	}
	// Unknown tickers read as zero on either side.
	if a.Get("H2O") != 0 || a.Sub(FromMapping(map[string]float64{"H2O": 2}))["H2O"] != -2 {
		t.Error("unknown ticker should default to 0")
	}
}

func TestResourceBag_Rounding(t *testing.T) {
	b := FromMapping(map[string]float64{"C": 1.4, "FE": -1.4})
	if f := b.Floor(); f["C"] != 1 || f["FE"] != -2 {
		t.Errorf("Floor = %v", f)
	}
	if c := b.Ceil(); c["C"] != 2 || c["FE"] != -1 {
		t.Errorf("Ceil = %v", c)
	}
	if r := b.Round(); r["C"] != 1 || r["FE"] != -1 {
		t.Errorf("Round = %v", r)
	}
	if p := b.PruneNegatives(); p.Contains("FE") || !p.Contains("C") {
		t.Errorf("PruneNegatives = %v", p)
	}
	if rm := b.Remove("C"); rm.Contains("C") {
		t.Errorf("Remove = %v", rm)
	}
}

func TestResourceBag_WeightVolume(t *testing.T) {
	mats := stubMaterials{"RAT": {0.21, 0.1}, "DW": {0.1, 0.1}}
	b := FromMapping(map[string]float64{"RAT": 10, "DW": 4})
	if got, want := b.Weight(mats), 10*0.21+4*0.1; math.Abs(got-want) > 1e-9 {
		t.Errorf("Weight = %v, want %v", got, want)
	}
	if got, want := b.Volume(mats), 10*0.1+4*0.1; math.Abs(got-want) > 1e-9 {
		t.Errorf("Volume = %v, want %v", got, want)
	}
}

func TestResourceBag_ValueScalesLinearly(t *testing.T) {
	prices := stubPrices{"RAT": {100, 90}}
	b := FromMapping(map[string]float64{"RAT": 5})
	k := 3.0
	if got, want := b.Scale(k).Value(prices, Buy), k*b.Value(prices, Buy); math.Abs(got-want) > 1e-9 {
		t.Errorf("Value(k·a) = %v, want %v", got, want)
	}
	if got, want := b.Scale(k).Value(prices, Sell), k*b.Value(prices, Sell); math.Abs(got-want) > 1e-9 {
		t.Errorf("Value(k·a) sell = %v, want %v", got, want)
	}
}

func TestResourceBag_ValueUnfillableBuyIsInf(t *testing.T) {
	prices := stubPrices{"RAT": {100, 90}}
	b := FromMapping(map[string]float64{"RAT": 1, "MISSING": 1})
	if got := b.Value(prices, Buy); !math.IsInf(got, 1) {
		t.Errorf("Value buy with missing book = %v, want +Inf", got)
	}
	if got := b.Value(prices, Sell); got != 90 {
		t.Errorf("Value sell with missing book = %v, want 90", got)
	}
}

func TestResourceBag_InstantValue(t *testing.T) {
	prices := stubPrices{"DW": {75, 60}}
	b := FromMapping(map[string]float64{"DW": 2})
	if got := b.InstantValue(prices, Buy); got != 150 {
		t.Errorf("InstantValue buy = %v, want 150", got)
	}
	if got := b.InstantValue(prices, Sell); got != 120 {
		t.Errorf("InstantValue sell = %v, want 120", got)
	}
}

func TestFromRecords_KeyAliases(t *testing.T) {
	records := []map[string]interface{}{
		{"CommodityTicker": "RAT", "Amount": 10.0},
		{"MaterialTicker": "DW", "MaterialAmount": 4.0},
		{"Ticker": "OVE", "DailyConsumption": 0.5},
		{"Ticker": "RAT", "Amount": 5.0},
	}
	b, err := FromRecords(records)
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	if b["RAT"] != 15 || b["DW"] != 4 || b["OVE"] != 0.5 {
		t.Errorf("bag = %v", b)
	}
}

func TestFromRecords_MissingKeys(t *testing.T) {
	if _, err := FromRecords([]map[string]interface{}{{"Amount": 1.0}}); err == nil {
		t.Error("expected error for missing ticker")
	}
	if _, err := FromRecords([]map[string]interface{}{{"Ticker": "RAT"}}); err == nil {
		t.Error("expected error for missing amount")
	}
}

func TestFromText(t *testing.T) {
	known := []string{"RAT", "DW", "OVE", "O"}
	b, err := FromText("need 10 RAT, 4x DW and 2OVE", known)
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if b["RAT"] != 10 || b["DW"] != 4 || b["OVE"] != 2 {
		t.Errorf("bag = %v", b)
	}
}

func TestFromText_LongestTickerFirst(t *testing.T) {
	// "O" is a ticker too; "OVE" must win on "3 OVE".
	b, err := FromText("3 OVE", []string{"O", "OVE"})
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if b["OVE"] != 3 || b.Contains("O") {
		t.Errorf("bag = %v, want 3 OVE only", b)
	}
}

func TestFromText_NoMatch(t *testing.T) {
	if _, err := FromText("nothing here", []string{"RAT"}); err == nil {
		t.Error("expected ParseError")
	}
}

func TestResourceBag_String(t *testing.T) {
	b := FromMapping(map[string]float64{"RAT": 10.00004, "DW": 1.5})
	if got, want := b.String(), "1.50 DW, 10 RAT"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
