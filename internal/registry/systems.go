package registry

import (
	"context"
	"strings"

	"prunkit/internal/graph"
	"prunkit/internal/world"
)

type systemPayload struct {
	SystemID    string  `json:"SystemId"`
	NaturalID   string  `json:"NaturalId"`
	Name        string  `json:"Name"`
	PositionX   float64 `json:"PositionX"`
	PositionY   float64 `json:"PositionY"`
	PositionZ   float64 `json:"PositionZ"`
	Connections []struct {
		ConnectingID string `json:"ConnectingId"`
	} `json:"Connections"`
}

// SystemSet is the loaded star map with precomputed neighbor distances.
type SystemSet struct {
	byID   map[string]*world.System
	byName map[string]*world.System
}

// ByID looks a system up by its id.
func (s *SystemSet) ByID(id string) (*world.System, bool) {
	sys, ok := s.byID[id]
	return sys, ok
}

// ByName looks a system up by display name or natural id.
func (s *SystemSet) ByName(name string) (*world.System, bool) {
	sys, ok := s.byName[strings.ToLower(name)]
	return sys, ok
}

// Len returns the number of systems loaded.
func (s *SystemSet) Len() int { return len(s.byID) }

// Systems loads the star map once, resolving each connection into a Link
// with its parsec distance.
func (r *Registry) Systems(ctx context.Context) (*SystemSet, error) {
	v, err := r.get("systems", func() (interface{}, error) {
		var payload []systemPayload
		req := fioRequest("/systemstars", "systems")
		if err := r.client.FetchJSON(ctx, req, &payload); err != nil {
			return nil, err
		}
		set := &SystemSet{
			byID:   make(map[string]*world.System, len(payload)),
			byName: make(map[string]*world.System, len(payload)),
		}
		for _, p := range payload {
			sys := &world.System{
				ID:        p.SystemID,
				NaturalID: p.NaturalID,
				Name:      p.Name,
				X:         p.PositionX,
				Y:         p.PositionY,
				Z:         p.PositionZ,
			}
			set.byID[sys.ID] = sys
			if sys.Name != "" {
				set.byName[strings.ToLower(sys.Name)] = sys
			}
			if sys.NaturalID != "" {
				set.byName[strings.ToLower(sys.NaturalID)] = sys
			}
		}
		// Distances need both endpoints loaded.
		for _, p := range payload {
			sys := set.byID[p.SystemID]
			for _, conn := range p.Connections {
				other, ok := set.byID[conn.ConnectingID]
				if !ok {
					continue
				}
				sys.Neighbors = append(sys.Neighbors, world.Link{
					SystemID: other.ID,
					Parsecs:  sys.DistanceTo(other),
				})
			}
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SystemSet), nil
}

// Universe builds the jump adjacency graph from the system-links table.
func (r *Registry) Universe(ctx context.Context) (*graph.Universe, error) {
	v, err := r.get("universe", func() (interface{}, error) {
		rows, err := r.client.FetchCSV(ctx, fioRequest("/csv/systemlinks", "system links"))
		if err != nil {
			return nil, err
		}
		u := graph.NewUniverse()
		for _, row := range rows {
			u.AddLink(row["Left"], row["Right"])
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*graph.Universe), nil
}

// Pathfinder answers jump-distance queries, backed by the persistent CSV
// cache in the cache directory.
func (r *Registry) Pathfinder(ctx context.Context) (*graph.Pathfinder, error) {
	v, err := r.get("pathfinder", func() (interface{}, error) {
		u, err := r.Universe(ctx)
		if err != nil {
			return nil, err
		}
		cache, err := graph.OpenJumpCache(r.jumpCSV)
		if err != nil {
			return nil, err
		}
		return graph.NewPathfinder(u, cache), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*graph.Pathfinder), nil
}
