package registry

import (
	"context"
	"sort"
	"strings"

	"prunkit/internal/industry"
	"prunkit/internal/quantity"
)

type costPayload struct {
	CommodityTicker string  `json:"CommodityTicker"`
	Amount          float64 `json:"Amount"`
}

type recipePayload struct {
	StandardRecipeName string        `json:"StandardRecipeName"`
	DurationMs         float64       `json:"DurationMs"`
	Inputs             []costPayload `json:"Inputs"`
	Outputs            []costPayload `json:"Outputs"`
}

type buildingPayload struct {
	Ticker        string          `json:"Ticker"`
	Name          string          `json:"Name"`
	Expertise     *string         `json:"Expertise"`
	AreaCost      float64         `json:"AreaCost"`
	Pioneers      float64         `json:"Pioneers"`
	Settlers      float64         `json:"Settlers"`
	Technicians   float64         `json:"Technicians"`
	Engineers     float64         `json:"Engineers"`
	Scientists    float64         `json:"Scientists"`
	BuildingCosts []costPayload   `json:"BuildingCosts"`
	Recipes       []recipePayload `json:"Recipes"`
}

// BuildingSet is the loaded building catalog. It satisfies industry.Catalog.
type BuildingSet struct {
	byTicker map[string]*industry.Building
	tickers  []string
}

// Building looks a building up by ticker.
func (s *BuildingSet) Building(ticker string) (*industry.Building, bool) {
	b, ok := s.byTicker[strings.ToUpper(ticker)]
	return b, ok
}

// Tickers returns all building tickers, sorted.
func (s *BuildingSet) Tickers() []string { return s.tickers }

// Len returns the catalog size.
func (s *BuildingSet) Len() int { return len(s.byTicker) }

func costBag(costs []costPayload) quantity.ResourceBag {
	bag := quantity.ResourceBag{}
	for _, c := range costs {
		bag[c.CommodityTicker] += c.Amount
	}
	return bag
}

// Buildings loads the building catalog once, attaching each building's
// recipe list.
func (r *Registry) Buildings(ctx context.Context) (*BuildingSet, error) {
	v, err := r.get("buildings", func() (interface{}, error) {
		var payload []buildingPayload
		req := fioRequest("/building/allbuildings", "buildings")
		if err := r.client.FetchJSON(ctx, req, &payload); err != nil {
			return nil, err
		}
		set := &BuildingSet{byTicker: make(map[string]*industry.Building, len(payload))}
		for _, p := range payload {
			b := &industry.Building{
				Ticker:   p.Ticker,
				Name:     p.Name,
				Area:     p.AreaCost,
				BaseCost: costBag(p.BuildingCosts),
				Workforce: quantity.Population{
					quantity.Pioneers:    p.Pioneers,
					quantity.Settlers:    p.Settlers,
					quantity.Technicians: p.Technicians,
					quantity.Engineers:   p.Engineers,
					quantity.Scientists:  p.Scientists,
				},
			}
			if p.Expertise != nil {
				b.Expertise = *p.Expertise
			}
			for _, rp := range p.Recipes {
				b.Recipes = append(b.Recipes, &industry.Recipe{
					Building: industry.BuildingKey(rp.StandardRecipeName),
					Name:     rp.StandardRecipeName,
					RawHours: rp.DurationMs / (1000 * 60 * 60),
					Inputs:   costBag(rp.Inputs),
					Outputs:  costBag(rp.Outputs),
				})
			}
			set.byTicker[b.Ticker] = b
			set.tickers = append(set.tickers, b.Ticker)
		}
		sort.Strings(set.tickers)
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*BuildingSet), nil
}

// BuildingByTicker resolves one building or fails with a NotFoundError.
func (r *Registry) BuildingByTicker(ctx context.Context, ticker string) (*industry.Building, error) {
	set, err := r.Buildings(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := set.Building(ticker)
	if !ok {
		return nil, &NotFoundError{Kind: "building", Key: ticker}
	}
	return b, nil
}

type workforceNeedPayload struct {
	WorkforceType string `json:"WorkforceType"`
	Needs         []struct {
		MaterialTicker string  `json:"MaterialTicker"`
		Amount         float64 `json:"Amount"`
	} `json:"Needs"`
}

// WorkforceNeeds loads the per-100-heads daily consumption table.
func (r *Registry) WorkforceNeeds(ctx context.Context) (map[quantity.Demographic]quantity.ResourceBag, error) {
	v, err := r.get("workforce-needs", func() (interface{}, error) {
		var payload []workforceNeedPayload
		req := fioRequest("/global/workforceneeds", "workforce needs")
		if err := r.client.FetchJSON(ctx, req, &payload); err != nil {
			return nil, err
		}
		needs := make(map[quantity.Demographic]quantity.ResourceBag, len(payload))
		for _, p := range payload {
			bag := quantity.ResourceBag{}
			for _, n := range p.Needs {
				bag[n.MaterialTicker] += n.Amount
			}
			needs[quantity.Demographic(strings.ToUpper(p.WorkforceType))] = bag
		}
		return needs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[quantity.Demographic]quantity.ResourceBag), nil
}
