package market

import "math"

// Exchange is one commodity exchange station: its identity plus the order
// books for every material traded there. It satisfies quantity.PriceSource.
type Exchange struct {
	Code     string // e.g. NC1
	Name     string
	Currency string
	SystemID string
	Books    map[string]*OrderBook // ticker -> book
}

// Book returns the order book for a ticker, if the material trades here.
func (e *Exchange) Book(ticker string) (*OrderBook, bool) {
	b, ok := e.Books[ticker]
	return b, ok
}

// WalkedBuy prices acquiring amount units of ticker; +Inf without a book.
func (e *Exchange) WalkedBuy(ticker string, amount float64) float64 {
	b, ok := e.Books[ticker]
	if !ok {
		return math.Inf(1)
	}
	return b.WalkedBuy(amount)
}

// WalkedSell prices offloading amount units of ticker; 0 without a book.
func (e *Exchange) WalkedSell(ticker string, amount float64) float64 {
	b, ok := e.Books[ticker]
	if !ok {
		return 0
	}
	return b.WalkedSell(amount)
}

// TopBuy returns the best bid for ticker.
func (e *Exchange) TopBuy(ticker string) (float64, bool) {
	b, ok := e.Books[ticker]
	if !ok {
		return 0, false
	}
	return b.TopBuy()
}

// TopSell returns the best ask for ticker.
func (e *Exchange) TopSell(ticker string) (float64, bool) {
	b, ok := e.Books[ticker]
	if !ok {
		return 0, false
	}
	return b.TopSell()
}
