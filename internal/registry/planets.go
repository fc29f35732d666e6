package registry

import (
	"context"
	"strings"
	"time"

	"prunkit/internal/logger"
	"prunkit/internal/world"
)

type cogcPayload struct {
	ProgramType  string `json:"ProgramType"`
	StartEpochMs int64  `json:"StartEpochMs"`
	EndEpochMs   int64  `json:"EndEpochMs"`
}

type resourcePayload struct {
	MaterialID   string  `json:"MaterialId"`
	ResourceType string  `json:"ResourceType"`
	Factor       float64 `json:"Factor"`
}

type planetPayload struct {
	PlanetID        string            `json:"PlanetId"`
	PlanetNaturalID string            `json:"PlanetNaturalId"`
	PlanetName      string            `json:"PlanetName"`
	SystemID        string            `json:"SystemId"`
	Gravity         float64           `json:"Gravity"`
	Pressure        float64           `json:"Pressure"`
	Temperature     float64           `json:"Temperature"`
	Fertility       float64           `json:"Fertility"`
	Surface         bool              `json:"Surface"`
	COGCPrograms    []cogcPayload     `json:"COGCPrograms"`
	Resources       []resourcePayload `json:"Resources"`
}

// PlanetSet is the loaded planet catalog with per-material abundance ranges.
type PlanetSet struct {
	byNaturalID map[string]*world.Planet
	byName      map[string]*world.Planet
	factorRange map[string]world.FactorRange
}

// ByNaturalID looks a planet up by its natural id (e.g. XG-326a).
func (s *PlanetSet) ByNaturalID(id string) (*world.Planet, bool) {
	p, ok := s.byNaturalID[strings.ToUpper(id)]
	return p, ok
}

// ByName looks a planet up by display name, falling back to natural id.
func (s *PlanetSet) ByName(name string) (*world.Planet, bool) {
	if p, ok := s.byName[strings.ToLower(name)]; ok {
		return p, true
	}
	return s.ByNaturalID(name)
}

// All iterates every planet.
func (s *PlanetSet) All() []*world.Planet {
	out := make([]*world.Planet, 0, len(s.byNaturalID))
	for _, p := range s.byNaturalID {
		out = append(out, p)
	}
	return out
}

// FactorRange returns the galaxy-wide abundance range for a material.
func (s *PlanetSet) FactorRange(ticker string) (world.FactorRange, bool) {
	fr, ok := s.factorRange[ticker]
	return fr, ok
}

// Len returns the number of planets loaded.
func (s *PlanetSet) Len() int { return len(s.byNaturalID) }

// Planets loads every planet once, resolving deposit materials through the
// material catalog and backfilling the per-material factor ranges.
func (r *Registry) Planets(ctx context.Context) (*PlanetSet, error) {
	v, err := r.get("planets", func() (interface{}, error) {
		mats, err := r.Materials(ctx)
		if err != nil {
			return nil, err
		}
		var payload []planetPayload
		req := fioRequest("/planet/allplanets/full", "planets")
		if err := r.client.FetchJSON(ctx, req, &payload); err != nil {
			return nil, err
		}
		set := &PlanetSet{
			byNaturalID: make(map[string]*world.Planet, len(payload)),
			byName:      make(map[string]*world.Planet, len(payload)),
			factorRange: make(map[string]world.FactorRange),
		}
		for _, p := range payload {
			planet := &world.Planet{
				NaturalID:   p.PlanetNaturalID,
				Name:        p.PlanetName,
				SystemID:    p.SystemID,
				Temperature: p.Temperature,
				Pressure:    p.Pressure,
				Gravity:     p.Gravity,
				Fertility:   p.Fertility,
				Surface:     p.Surface,
			}
			for _, prog := range p.COGCPrograms {
				planet.Programs = append(planet.Programs, world.COGCPeriod{
					Program: prog.ProgramType,
					Start:   time.UnixMilli(prog.StartEpochMs).UTC(),
					End:     time.UnixMilli(prog.EndEpochMs).UTC(),
				})
			}
			for _, dep := range p.Resources {
				mat, ok := mats.ByHash(dep.MaterialID)
				if !ok {
					continue
				}
				res, err := world.NewResource(mat.Ticker, world.ResourceKind(dep.ResourceType), dep.Factor)
				if err != nil {
					logger.Warn("REG", planet.NaturalID+": "+err.Error())
					continue
				}
				planet.Resources = append(planet.Resources, res)

				fr, seen := set.factorRange[mat.Ticker]
				if !seen || dep.Factor < fr.Min {
					fr.Min = dep.Factor
				}
				if !seen || dep.Factor > fr.Max {
					fr.Max = dep.Factor
				}
				set.factorRange[mat.Ticker] = fr
			}
			set.byNaturalID[strings.ToUpper(planet.NaturalID)] = planet
			if planet.Name != "" {
				set.byName[strings.ToLower(planet.Name)] = planet
			}
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PlanetSet), nil
}

// Planet resolves one planet by name or natural id.
func (r *Registry) Planet(ctx context.Context, key string) (*world.Planet, error) {
	set, err := r.Planets(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := set.ByName(key)
	if !ok {
		return nil, &NotFoundError{Kind: "planet", Key: key}
	}
	return p, nil
}
