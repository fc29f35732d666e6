package registry

import (
	"context"
	"fmt"

	"prunkit/internal/db"
	"prunkit/internal/fio"
	"prunkit/internal/market"
)

// UseDB attaches the optional SQLite price-history store. When set, it is
// consulted before the network and refreshed after each fetch.
func (r *Registry) UseDB(store *db.DB) { r.db = store }

// PriceHistory returns the daily price intervals for a ticker at an
// exchange, newest last.
func (r *Registry) PriceHistory(ctx context.Context, ticker, exchange string) ([]market.PriceHistoryEntry, error) {
	if r.db != nil {
		if entries, ok := r.db.GetPriceHistory(ticker, exchange); ok {
			return entries, nil
		}
	}
	var entries []market.PriceHistoryEntry
	req := fio.Request{
		Endpoint: fmt.Sprintf("/exchange/cxpc/%s.%s", ticker, exchange),
		Policy:   fio.TTL(referenceTTL),
		Label:    "price history " + ticker,
	}
	if err := r.client.FetchJSON(ctx, req, &entries); err != nil {
		return nil, err
	}
	if r.db != nil {
		r.db.SetPriceHistory(ticker, exchange, entries)
	}
	return entries, nil
}

// DailyTraded averages the units traded per interval over the stored
// history; zero when no history exists.
func (r *Registry) DailyTraded(ctx context.Context, ticker, exchange string) (float64, error) {
	entries, err := r.PriceHistory(ctx, ticker, exchange)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	var total float64
	for _, e := range entries {
		total += e.Traded
	}
	return total / float64(len(entries)), nil
}
