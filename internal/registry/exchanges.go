package registry

import (
	"context"
	"math"
	"sort"
	"strings"

	"prunkit/internal/fio"
	"prunkit/internal/logger"
	"prunkit/internal/market"
	"prunkit/internal/world"
)

type stationPayload struct {
	ComexCode    string `json:"ComexCode"`
	ComexName    string `json:"ComexName"`
	CurrencyCode string `json:"CurrencyCode"`
	SystemID     string `json:"SystemId"`
}

type tickerBookPayload struct {
	MaterialTicker string            `json:"MaterialTicker"`
	ExchangeCode   string            `json:"ExchangeCode"`
	BuyingOrders   []market.RawOrder `json:"BuyingOrders"`
	SellingOrders  []market.RawOrder `json:"SellingOrders"`
}

// ExchangeSet is the loaded exchange catalog with all order books.
type ExchangeSet struct {
	byCode map[string]*market.Exchange
}

// ByCode looks an exchange up by its code (e.g. NC1).
func (s *ExchangeSet) ByCode(code string) (*market.Exchange, bool) {
	e, ok := s.byCode[strings.ToUpper(code)]
	return e, ok
}

// Codes returns all exchange codes, sorted.
func (s *ExchangeSet) Codes() []string {
	out := make([]string, 0, len(s.byCode))
	for c := range s.byCode {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// All iterates every exchange in code order.
func (s *ExchangeSet) All() []*market.Exchange {
	out := make([]*market.Exchange, 0, len(s.byCode))
	for _, c := range s.Codes() {
		out = append(out, s.byCode[c])
	}
	return out
}

// Exchanges loads the stations and then fills every order book from one bulk
// fetch. Order books are ephemeral market state, so the bulk payload is
// never cached.
func (r *Registry) Exchanges(ctx context.Context) (*ExchangeSet, error) {
	v, err := r.get("exchanges", func() (interface{}, error) {
		var stations []stationPayload
		if err := r.client.FetchJSON(ctx, fioRequest("/exchange/station", "exchange stations"), &stations); err != nil {
			return nil, err
		}
		set := &ExchangeSet{byCode: make(map[string]*market.Exchange, len(stations))}
		for _, st := range stations {
			set.byCode[st.ComexCode] = &market.Exchange{
				Code:     st.ComexCode,
				Name:     st.ComexName,
				Currency: st.CurrencyCode,
				SystemID: st.SystemID,
				Books:    make(map[string]*market.OrderBook),
			}
		}

		var books []tickerBookPayload
		req := fioRequest("/exchange/full", "order books")
		req.Policy = fio.NoCache()
		if err := r.client.FetchJSON(ctx, req, &books); err != nil {
			return nil, err
		}
		for _, b := range books {
			ex, ok := set.byCode[b.ExchangeCode]
			if !ok {
				continue
			}
			ex.Books[b.MaterialTicker] = market.NewOrderBook(b.BuyingOrders, b.SellingOrders)
		}
		logger.Stats("Exchanges", len(set.byCode))
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ExchangeSet), nil
}

// Exchange resolves one exchange by code.
func (r *Registry) Exchange(ctx context.Context, code string) (*market.Exchange, error) {
	set, err := r.Exchanges(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := set.ByCode(code)
	if !ok {
		return nil, &NotFoundError{Kind: "exchange", Key: code}
	}
	return e, nil
}

// NearestExchange returns the exchange reachable from the planet's system in
// the fewest jumps, together with that jump count.
func (r *Registry) NearestExchange(ctx context.Context, planet *world.Planet) (*market.Exchange, int, error) {
	set, err := r.Exchanges(ctx)
	if err != nil {
		return nil, 0, err
	}
	pf, err := r.Pathfinder(ctx)
	if err != nil {
		return nil, 0, err
	}
	var best *market.Exchange
	bestJumps := math.MaxInt
	for _, ex := range set.All() {
		j, ok := pf.Jumps(planet.SystemID, ex.SystemID)
		if !ok || j >= bestJumps {
			continue
		}
		best, bestJumps = ex, j
	}
	if best == nil {
		return nil, 0, &NotFoundError{Kind: "exchange near", Key: planet.NaturalID}
	}
	return best, bestJumps, nil
}
