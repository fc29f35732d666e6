package registry

import (
	"context"
	"sort"
	"strings"

	"prunkit/internal/market"
)

// Tradables with no real market use; dropped from the catalog.
var excludedTickers = map[string]bool{"CMK": true}

type materialPayload struct {
	Ticker       string  `json:"Ticker"`
	MaterialID   string  `json:"MaterialId"`
	Name         string  `json:"Name"`
	CategoryName string  `json:"CategoryName"`
	CategoryID   string  `json:"CategoryId"`
	Weight       float64 `json:"Weight"`
	Volume       float64 `json:"Volume"`
}

// MaterialSet is the loaded material catalog, indexed by ticker and by hash.
// It satisfies quantity.MaterialSource.
type MaterialSet struct {
	byTicker map[string]*market.Material
	byHash   map[string]*market.Material
	tickers  []string
}

// ByTicker looks a material up by its ticker.
func (s *MaterialSet) ByTicker(ticker string) (*market.Material, bool) {
	m, ok := s.byTicker[strings.ToUpper(ticker)]
	return m, ok
}

// ByHash looks a material up by its stable id.
func (s *MaterialSet) ByHash(hash string) (*market.Material, bool) {
	m, ok := s.byHash[hash]
	return m, ok
}

// Tickers returns all tickers, sorted.
func (s *MaterialSet) Tickers() []string { return s.tickers }

// Len returns the catalog size.
func (s *MaterialSet) Len() int { return len(s.byTicker) }

// MaterialAttributes returns per-unit weight and volume for bag rollups.
func (s *MaterialSet) MaterialAttributes(ticker string) (weight, volume float64, ok bool) {
	m, ok := s.byTicker[strings.ToUpper(ticker)]
	if !ok {
		return 0, 0, false
	}
	return m.Weight, m.Volume, true
}

// Materials loads the material catalog once.
func (r *Registry) Materials(ctx context.Context) (*MaterialSet, error) {
	v, err := r.get("materials", func() (interface{}, error) {
		var payload []materialPayload
		req := fioRequest("/material/allmaterials", "materials")
		if err := r.client.FetchJSON(ctx, req, &payload); err != nil {
			return nil, err
		}
		set := &MaterialSet{
			byTicker: make(map[string]*market.Material, len(payload)),
			byHash:   make(map[string]*market.Material, len(payload)),
		}
		for _, p := range payload {
			if excludedTickers[p.Ticker] {
				continue
			}
			m := &market.Material{
				Ticker:   p.Ticker,
				Hash:     p.MaterialID,
				Name:     p.Name,
				Category: p.CategoryName,
				Weight:   p.Weight,
				Volume:   p.Volume,
			}
			set.byTicker[m.Ticker] = m
			set.byHash[m.Hash] = m
			set.tickers = append(set.tickers, m.Ticker)
		}
		sort.Strings(set.tickers)
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MaterialSet), nil
}

// MaterialByTicker resolves one material or fails with a NotFoundError.
func (r *Registry) MaterialByTicker(ctx context.Context, ticker string) (*market.Material, error) {
	set, err := r.Materials(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := set.ByTicker(ticker)
	if !ok {
		return nil, &NotFoundError{Kind: "material", Key: ticker}
	}
	return m, nil
}

// MaterialByHash resolves one material by its stable id.
func (r *Registry) MaterialByHash(ctx context.Context, hash string) (*market.Material, error) {
	set, err := r.Materials(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := set.ByHash(hash)
	if !ok {
		return nil, &NotFoundError{Kind: "material", Key: hash}
	}
	return m, nil
}

// ResolveMaterial turns freeform user input into one material: an exact
// ticker match wins, otherwise a case-insensitive name substring search.
// Multiple name matches fail with an AmbiguityError.
func (r *Registry) ResolveMaterial(ctx context.Context, input string) (*market.Material, error) {
	set, err := r.Materials(ctx)
	if err != nil {
		return nil, err
	}
	if m, ok := set.ByTicker(input); ok {
		return m, nil
	}
	needle := strings.ToLower(input)
	var matches []*market.Material
	for _, t := range set.tickers {
		m := set.byTicker[t]
		if strings.Contains(strings.ToLower(m.Name), needle) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Kind: "material", Key: input}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Ticker
		}
		return nil, &AmbiguityError{Input: input, Matches: names}
	}
}

// MaterialTickers returns every known ticker, sorted.
func (r *Registry) MaterialTickers(ctx context.Context) ([]string, error) {
	set, err := r.Materials(ctx)
	if err != nil {
		return nil, err
	}
	return set.Tickers(), nil
}
