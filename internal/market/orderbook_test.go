package market

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestNewOrderBook_SortsAndFilters(t *testing.T) {
	buys := []RawOrder{
		{CompanyName: "A", ItemCount: ptr(10), ItemCost: 90},
		{CompanyName: "B", ItemCount: ptr(10), ItemCost: 100},
		{CompanyName: "C", ItemCount: ptr(10), ItemCost: 15}, // < 100/5, bogus
	}
	sells := []RawOrder{
		{CompanyName: "D", ItemCount: ptr(10), ItemCost: 120},
		{CompanyName: "E", ItemCount: ptr(10), ItemCost: 110},
		{CompanyName: "F", ItemCount: ptr(10), ItemCost: 800}, // > 110*5, bogus
	}
	b := NewOrderBook(buys, sells)

	if len(b.Buys) != 2 || len(b.Sells) != 2 {
		t.Fatalf("retained %d buys, %d sells; want 2, 2", len(b.Buys), len(b.Sells))
	}
	for i := 1; i < len(b.Buys); i++ {
		if b.Buys[i].Price > b.Buys[i-1].Price {
			t.Error("buys not descending")
		}
	}
	for i := 1; i < len(b.Sells); i++ {
		if b.Sells[i].Price < b.Sells[i-1].Price {
			t.Error("sells not ascending")
		}
	}
	top, _ := b.TopBuy()
	for _, o := range b.Buys {
		if o.Price < top/BogusRatio {
			t.Errorf("retained bogus buy at %v", o.Price)
		}
	}
	topS, _ := b.TopSell()
	for _, o := range b.Sells {
		if o.Price > topS*BogusRatio {
			t.Errorf("retained bogus sell at %v", o.Price)
		}
	}
}

func TestOrderBook_NullCountIsUnlimited(t *testing.T) {
	b := NewOrderBook(nil, []RawOrder{{CompanyName: "MM", ItemCount: nil, ItemCost: 75}})
	if !b.Sells[0].Count.Unlimited {
		t.Error("null count should be unlimited")
	}
	if !b.Supply().Unlimited {
		t.Error("supply with an unlimited order should be unlimited")
	}
}

func TestWalkedBuy_FixtureS3(t *testing.T) {
	// Sell book [{70, 100}, {75, ∞}]: walked_buy(150) = 70·100 + 75·50.
	b := NewOrderBook(nil, []RawOrder{
		{ItemCount: ptr(100), ItemCost: 70},
		{ItemCount: nil, ItemCost: 75},
	})
	if got := b.WalkedBuy(150); math.Abs(got-10750) > 1e-9 {
		t.Errorf("WalkedBuy(150) = %v, want 10750", got)
	}
}

func TestWalkedBuy_UnfillableIsInf(t *testing.T) {
	b := NewOrderBook(nil, []RawOrder{{ItemCount: ptr(100), ItemCost: 70}})
	if got := b.WalkedBuy(150); !math.IsInf(got, 1) {
		t.Errorf("WalkedBuy past supply = %v, want +Inf", got)
	}
	empty := NewOrderBook(nil, nil)
	if got := empty.WalkedBuy(1); !math.IsInf(got, 1) {
		t.Errorf("WalkedBuy on empty book = %v, want +Inf", got)
	}
}

func TestWalkedBuy_Monotonic(t *testing.T) {
	b := NewOrderBook(nil, []RawOrder{
		{ItemCount: ptr(50), ItemCost: 70},
		{ItemCount: ptr(50), ItemCost: 72},
		{ItemCount: ptr(200), ItemCost: 80},
	})
	prev := 0.0
	for n := 1.0; n <= 300; n += 7 {
		cost := b.WalkedBuy(n)
		if cost < prev {
			t.Fatalf("WalkedBuy not monotonic at n=%v: %v < %v", n, cost, prev)
		}
		prev = cost
	}
}

func TestWalkedSell(t *testing.T) {
	b := NewOrderBook([]RawOrder{
		{ItemCount: ptr(100), ItemCost: 60},
		{ItemCount: ptr(100), ItemCost: 50},
	}, nil)
	if got := b.WalkedSell(150); math.Abs(got-(100*60+50*50)) > 1e-9 {
		t.Errorf("WalkedSell(150) = %v, want 8500", got)
	}
	// Book absorbs at most 200; more yields 0.
	if got := b.WalkedSell(201); got != 0 {
		t.Errorf("WalkedSell past demand = %v, want 0", got)
	}
	if got := b.WalkedSell(0); got != 0 {
		t.Errorf("WalkedSell(0) = %v, want 0", got)
	}
}

func TestSupplyDemand_Bounded(t *testing.T) {
	b := NewOrderBook(
		[]RawOrder{{ItemCount: ptr(30), ItemCost: 50}, {ItemCount: ptr(20), ItemCost: 45}},
		[]RawOrder{{ItemCount: ptr(10), ItemCost: 60}},
	)
	if d := b.Demand(); d.Unlimited || d.Amount != 50 {
		t.Errorf("Demand = %+v, want 50", d)
	}
	if s := b.Supply(); s.Unlimited || s.Amount != 10 {
		t.Errorf("Supply = %+v, want 10", s)
	}
}

func TestExchange_PriceSource(t *testing.T) {
	ex := &Exchange{
		Code: "NC1",
		Books: map[string]*OrderBook{
			"RAT": NewOrderBook(
				[]RawOrder{{ItemCount: ptr(100), ItemCost: 90}},
				[]RawOrder{{ItemCount: ptr(100), ItemCost: 100}},
			),
		},
	}
	if got := ex.WalkedBuy("RAT", 10); got != 1000 {
		t.Errorf("WalkedBuy = %v, want 1000", got)
	}
	if got := ex.WalkedSell("RAT", 10); got != 900 {
		t.Errorf("WalkedSell = %v, want 900", got)
	}
	if got := ex.WalkedBuy("XXX", 1); !math.IsInf(got, 1) {
		t.Errorf("WalkedBuy missing book = %v, want +Inf", got)
	}
	if got := ex.WalkedSell("XXX", 1); got != 0 {
		t.Errorf("WalkedSell missing book = %v, want 0", got)
	}
	if _, ok := ex.TopBuy("XXX"); ok {
		t.Error("TopBuy on missing book should report !ok")
	}
}

func TestOrderCount_Add(t *testing.T) {
	if got := Exactly(5).Add(Exactly(7)); got.Unlimited || got.Amount != 12 {
		t.Errorf("Add = %+v", got)
	}
	if got := Exactly(5).Add(NoLimit()); !got.Unlimited {
		t.Errorf("Add unlimited = %+v", got)
	}
	if !NoLimit().AtLeast(1e18) || !Exactly(5).AtLeast(5) || Exactly(5).AtLeast(6) {
		t.Error("AtLeast misbehaves")
	}
}
