package quantity

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MaterialSource resolves per-unit material attributes for rollups.
type MaterialSource interface {
	MaterialAttributes(ticker string) (weight, volume float64, ok bool)
}

// PriceSource walks one exchange's order books.
type PriceSource interface {
	// WalkedBuy returns the total cost of acquiring amount units from the
	// sell book, or +Inf when it cannot be filled.
	WalkedBuy(ticker string, amount float64) float64
	// WalkedSell returns the revenue from offloading amount units into the
	// buy book, or 0 when the book is empty.
	WalkedSell(ticker string, amount float64) float64
	// TopBuy and TopSell return the best order price on each side.
	TopBuy(ticker string) (float64, bool)
	TopSell(ticker string) (float64, bool)
}

// Side selects which side of the market a valuation uses.
type Side int

const (
	// Buy values the bag as the cost of acquiring it (walks sell orders).
	Buy Side = iota
	// Sell values the bag as the revenue of offloading it (walks buy orders).
	Sell
)

// ResourceBag maps material tickers to (possibly fractional or negative)
// amounts. Missing tickers read as zero. Operations return new bags.
type ResourceBag map[string]float64

// ParseError reports freeform text that could not be read as a resource bag.
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Msg)
}

// FromMapping copies a ticker→amount mapping.
func FromMapping(m map[string]float64) ResourceBag {
	out := make(ResourceBag, len(m))
	for t, a := range m {
		out[t] = a
	}
	return out
}

// Record key aliases seen across the service's payload shapes.
var (
	recordTickerKeys = []string{"CommodityTicker", "MaterialTicker", "Ticker"}
	recordAmountKeys = []string{"MaterialAmount", "DailyConsumption", "Amount"}
)

// FromRecords reads a list of loosely-shaped records, accepting the ticker
// and amount key aliases used by different endpoints. Amounts for repeated
// tickers accumulate.
func FromRecords(records []map[string]interface{}) (ResourceBag, error) {
	out := ResourceBag{}
	for i, rec := range records {
		ticker := ""
		for _, k := range recordTickerKeys {
			if v, ok := rec[k].(string); ok && v != "" {
				ticker = v
				break
			}
		}
		if ticker == "" {
			return nil, &ParseError{Input: fmt.Sprintf("record %d", i), Msg: "no ticker key"}
		}
		amount := math.NaN()
		for _, k := range recordAmountKeys {
			switch v := rec[k].(type) {
			case float64:
				amount = v
			case int:
				amount = float64(v)
			}
			if !math.IsNaN(amount) {
				break
			}
		}
		if math.IsNaN(amount) {
			return nil, &ParseError{Input: fmt.Sprintf("record %d (%s)", i, ticker), Msg: "no amount key"}
		}
		out[ticker] += amount
	}
	return out, nil
}

// FromText parses freeform text like "10 RAT, 4x DW 1 OVE". The known-ticker
// list is matched longest-first so e.g. "BSE" never shadows inside "10 BSES".
func FromText(text string, knownTickers []string) (ResourceBag, error) {
	if len(knownTickers) == 0 {
		return nil, &ParseError{Input: text, Msg: "empty ticker list"}
	}
	tickers := append([]string(nil), knownTickers...)
	sort.Slice(tickers, func(i, j int) bool {
		if len(tickers[i]) != len(tickers[j]) {
			return len(tickers[i]) > len(tickers[j])
		}
		return tickers[i] < tickers[j]
	})
	quoted := make([]string, len(tickers))
	for i, t := range tickers {
		quoted[i] = regexp.QuoteMeta(t)
	}
	re := regexp.MustCompile(`\b(\d+)\s*x?\s*(` + strings.Join(quoted, "|") + `)\b`)
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, &ParseError{Input: text, Msg: "no recognizable amounts"}
	}
	out := ResourceBag{}
	for _, m := range matches {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, &ParseError{Input: text, Msg: err.Error()}
		}
		out[m[2]] += n
	}
	return out, nil
}

// Copy returns an independent copy.
func (b ResourceBag) Copy() ResourceBag { return FromMapping(b) }

// Add returns b + o.
func (b ResourceBag) Add(o ResourceBag) ResourceBag {
	out := b.Copy()
	for t, a := range o {
		out[t] += a
	}
	return out
}

// Sub returns b − o.
func (b ResourceBag) Sub(o ResourceBag) ResourceBag {
	out := b.Copy()
	for t, a := range o {
		out[t] -= a
	}
	return out
}

// Neg returns −b.
func (b ResourceBag) Neg() ResourceBag { return b.Scale(-1) }

// Scale returns b with every amount multiplied by k.
func (b ResourceBag) Scale(k float64) ResourceBag {
	out := make(ResourceBag, len(b))
	for t, a := range b {
		out[t] = a * k
	}
	return out
}

// Div returns b with every amount divided by k.
func (b ResourceBag) Div(k float64) ResourceBag { return b.Scale(1 / k) }

func (b ResourceBag) apply(f func(float64) float64) ResourceBag {
	out := make(ResourceBag, len(b))
	for t, a := range b {
		out[t] = f(a)
	}
	return out
}

// Floor rounds every amount down.
func (b ResourceBag) Floor() ResourceBag { return b.apply(math.Floor) }

// Ceil rounds every amount up.
func (b ResourceBag) Ceil() ResourceBag { return b.apply(math.Ceil) }

// Round rounds every amount to the nearest integer.
func (b ResourceBag) Round() ResourceBag { return b.apply(math.Round) }

// Prune drops entries whose amount is (nearly) zero.
func (b ResourceBag) Prune() ResourceBag {
	out := ResourceBag{}
	for t, a := range b {
		if math.Abs(a) > 1e-9 {
			out[t] = a
		}
	}
	return out
}

// PruneNegatives drops entries with negative amounts.
func (b ResourceBag) PruneNegatives() ResourceBag {
	out := ResourceBag{}
	for t, a := range b {
		if a > 0 {
			out[t] = a
		}
	}
	return out
}

// Remove returns b without the given ticker.
func (b ResourceBag) Remove(ticker string) ResourceBag {
	out := b.Copy()
	delete(out, ticker)
	return out
}

// Contains reports whether the ticker has a non-zero amount.
func (b ResourceBag) Contains(ticker string) bool { return b[ticker] != 0 }

// Get returns the amount for ticker (zero when absent).
func (b ResourceBag) Get(ticker string) float64 { return b[ticker] }

// Tickers returns the sorted tickers present in the bag.
func (b ResourceBag) Tickers() []string {
	out := make([]string, 0, len(b))
	for t := range b {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Weight sums amount × per-unit weight. Unknown materials contribute zero.
func (b ResourceBag) Weight(src MaterialSource) float64 {
	var sum float64
	for t, a := range b {
		if w, _, ok := src.MaterialAttributes(t); ok {
			sum += a * w
		}
	}
	return sum
}

// Volume sums amount × per-unit volume.
func (b ResourceBag) Volume(src MaterialSource) float64 {
	var sum float64
	for t, a := range b {
		if _, v, ok := src.MaterialAttributes(t); ok {
			sum += a * v
		}
	}
	return sum
}

// Value prices the whole bag at an exchange by walking order levels.
// Buy returns +Inf as soon as any position cannot be filled; Sell returns
// whatever the books absorb.
func (b ResourceBag) Value(ps PriceSource, side Side) float64 {
	var total float64
	for t, a := range b {
		if a == 0 {
			continue
		}
		switch side {
		case Buy:
			cost := ps.WalkedBuy(t, a)
			if math.IsInf(cost, 1) {
				return math.Inf(1)
			}
			total += cost
		case Sell:
			total += ps.WalkedSell(t, a)
		}
	}
	return total
}

// InstantValue prices the bag using only best-order prices: best sell for
// Buy valuations, best buy for Sell. Missing books behave like Value.
func (b ResourceBag) InstantValue(ps PriceSource, side Side) float64 {
	var total float64
	for t, a := range b {
		if a == 0 {
			continue
		}
		switch side {
		case Buy:
			p, ok := ps.TopSell(t)
			if !ok {
				return math.Inf(1)
			}
			total += a * p
		case Sell:
			if p, ok := ps.TopBuy(t); ok {
				total += a * p
			}
		}
	}
	return total
}

// String renders "<amount> <TICKER>" pairs joined by commas, with integer
// display when the amount is within 1e-4 of an integer.
func (b ResourceBag) String() string {
	parts := make([]string, 0, len(b))
	for _, t := range b.Tickers() {
		parts = append(parts, formatAmount(b[t])+" "+t)
	}
	return strings.Join(parts, ", ")
}

func formatAmount(a float64) string {
	if math.Abs(a-math.Round(a)) < 1e-4 {
		return strconv.FormatFloat(math.Round(a), 'f', 0, 64)
	}
	return strconv.FormatFloat(a, 'f', 2, 64)
}
