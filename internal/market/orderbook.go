package market

import (
	"math"
	"sort"
)

// BogusRatio bounds accepted order prices relative to the best order on the
// same side. Buys below top/5 and sells above top×5 are speculative noise.
const BogusRatio = 5

// OrderCount is an explicit "exact N or unlimited" amount. Market makers
// post orders with no count; treating those as +Inf floats would poison
// supply/demand aggregates.
type OrderCount struct {
	Amount    float64
	Unlimited bool
}

// Exactly wraps a bounded count.
func Exactly(n float64) OrderCount { return OrderCount{Amount: n} }

// NoLimit is the unbounded count.
func NoLimit() OrderCount { return OrderCount{Unlimited: true} }

// Add combines two counts; unlimited absorbs everything.
func (c OrderCount) Add(o OrderCount) OrderCount {
	if c.Unlimited || o.Unlimited {
		return NoLimit()
	}
	return Exactly(c.Amount + o.Amount)
}

// AtLeast reports whether the count covers n units.
func (c OrderCount) AtLeast(n float64) bool {
	return c.Unlimited || c.Amount >= n
}

// Order is one price level of an order book.
type Order struct {
	Price   float64
	Count   OrderCount
	Company string
}

// RawOrder mirrors the order shape of the exchange payloads. A null
// ItemCount marks a market-maker order with unlimited volume.
type RawOrder struct {
	CompanyName string   `json:"CompanyName"`
	ItemCount   *float64 `json:"ItemCount"`
	ItemCost    float64  `json:"ItemCost"`
}

// OrderBook holds the two filtered, sorted order queues for one material at
// one exchange: buys descending by price, sells ascending.
type OrderBook struct {
	Buys  []Order
	Sells []Order
}

// NewOrderBook normalizes raw orders: null counts become unlimited, each
// side is sorted, and bogus orders (§BogusRatio off the best price) are
// dropped.
func NewOrderBook(buys, sells []RawOrder) *OrderBook {
	book := &OrderBook{
		Buys:  convertOrders(buys),
		Sells: convertOrders(sells),
	}
	sort.SliceStable(book.Buys, func(i, j int) bool { return book.Buys[i].Price > book.Buys[j].Price })
	sort.SliceStable(book.Sells, func(i, j int) bool { return book.Sells[i].Price < book.Sells[j].Price })

	if len(book.Buys) > 0 {
		floor := book.Buys[0].Price / BogusRatio
		book.Buys = filterOrders(book.Buys, func(o Order) bool { return o.Price >= floor })
	}
	if len(book.Sells) > 0 {
		ceil := book.Sells[0].Price * BogusRatio
		book.Sells = filterOrders(book.Sells, func(o Order) bool { return o.Price <= ceil })
	}
	return book
}

func convertOrders(raw []RawOrder) []Order {
	out := make([]Order, 0, len(raw))
	for _, r := range raw {
		count := NoLimit()
		if r.ItemCount != nil {
			count = Exactly(*r.ItemCount)
		}
		out = append(out, Order{Price: r.ItemCost, Count: count, Company: r.CompanyName})
	}
	return out
}

func filterOrders(orders []Order, keep func(Order) bool) []Order {
	out := orders[:0]
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// TopBuy returns the highest bid.
func (b *OrderBook) TopBuy() (float64, bool) {
	if len(b.Buys) == 0 {
		return 0, false
	}
	return b.Buys[0].Price, true
}

// TopSell returns the lowest ask.
func (b *OrderBook) TopSell() (float64, bool) {
	if len(b.Sells) == 0 {
		return 0, false
	}
	return b.Sells[0].Price, true
}

// WalkedBuy returns the total cost of acquiring n units by consuming sell
// levels in price order. Returns +Inf when the book cannot fill n.
func (b *OrderBook) WalkedBuy(n float64) float64 {
	if n <= 0 {
		return 0
	}
	remaining := n
	var cost float64
	for _, o := range b.Sells {
		if o.Count.Unlimited {
			return cost + remaining*o.Price
		}
		take := math.Min(remaining, o.Count.Amount)
		cost += take * o.Price
		remaining -= take
		if remaining <= 1e-9 {
			return cost
		}
	}
	return math.Inf(1)
}

// WalkedSell returns the revenue from offloading n units into the buy book.
// Returns 0 when the book cannot absorb the full amount.
func (b *OrderBook) WalkedSell(n float64) float64 {
	if n <= 0 {
		return 0
	}
	remaining := n
	var revenue float64
	for _, o := range b.Buys {
		if o.Count.Unlimited {
			return revenue + remaining*o.Price
		}
		take := math.Min(remaining, o.Count.Amount)
		revenue += take * o.Price
		remaining -= take
		if remaining <= 1e-9 {
			return revenue
		}
	}
	return 0
}

// Supply is the summed sell-side count.
func (b *OrderBook) Supply() OrderCount {
	total := Exactly(0)
	for _, o := range b.Sells {
		total = total.Add(o.Count)
	}
	return total
}

// Demand is the summed buy-side count.
func (b *OrderBook) Demand() OrderCount {
	total := Exactly(0)
	for _, o := range b.Buys {
		total = total.Add(o.Count)
	}
	return total
}
