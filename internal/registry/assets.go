package registry

import (
	"context"
	"fmt"

	"prunkit/internal/fio"
	"prunkit/internal/quantity"
)

// Site is one of the player's planetary bases as reported by the service.
type Site struct {
	SiteID           string         `json:"SiteId"`
	PlanetID         string         `json:"PlanetId"`
	PlanetIdentifier string         `json:"PlanetIdentifier"`
	PlanetName       string         `json:"PlanetName"`
	Buildings        []SiteBuilding `json:"Buildings"`
}

// SiteBuilding is one constructed building with its wear state.
type SiteBuilding struct {
	BuildingTicker string  `json:"BuildingTicker"`
	Condition      float64 `json:"Condition"`
}

// BuildingBag collapses the site's buildings into counts.
func (s *Site) BuildingBag() quantity.BuildingBag {
	bag := quantity.BuildingBag{}
	for _, b := range s.Buildings {
		bag[b.BuildingTicker]++
	}
	return bag
}

// Sites fetches the player's bases. User assets are always fetched fresh.
func (r *Registry) Sites(ctx context.Context, user string) ([]Site, error) {
	var sites []Site
	req := fio.Request{Endpoint: "/sites/" + user, Policy: fio.NoCache(), Label: "sites"}
	if err := r.client.FetchJSON(ctx, req, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

type storePayload struct {
	Name           string  `json:"Name"`
	Type           string  `json:"Type"`
	WeightCapacity float64 `json:"WeightCapacity"`
	VolumeCapacity float64 `json:"VolumeCapacity"`
	StorageItems   []struct {
		MaterialTicker string  `json:"MaterialTicker"`
		MaterialAmount float64 `json:"MaterialAmount"`
	} `json:"StorageItems"`
}

// Store is one storage location with its contents as a bag.
type Store struct {
	Name           string
	Type           string
	WeightCapacity float64
	VolumeCapacity float64
	Contents       quantity.ResourceBag
}

// Storage fetches the contents of the player's store on a planet.
func (r *Registry) Storage(ctx context.Context, user, planet string) (*Store, error) {
	var payload storePayload
	req := fio.Request{Endpoint: fmt.Sprintf("/storage/%s/%s", user, planet), Policy: fio.NoCache(), Label: "storage"}
	if err := r.client.FetchJSON(ctx, req, &payload); err != nil {
		return nil, err
	}
	store := &Store{
		Name:           payload.Name,
		Type:           payload.Type,
		WeightCapacity: payload.WeightCapacity,
		VolumeCapacity: payload.VolumeCapacity,
		Contents:       quantity.ResourceBag{},
	}
	for _, item := range payload.StorageItems {
		store.Contents[item.MaterialTicker] += item.MaterialAmount
	}
	return store, nil
}

// ProductionOrder is one queued or running order on a production line.
type ProductionOrder struct {
	StandardRecipeName  string   `json:"StandardRecipeName"`
	CompletedPercentage *float64 `json:"CompletedPercentage"`
}

// ProductionLine is one production line with its queue.
type ProductionLine struct {
	PlanetNaturalID string            `json:"PlanetNaturalId"`
	Type            string            `json:"Type"`
	Capacity        int               `json:"Capacity"`
	Orders          []ProductionOrder `json:"Orders"`
}

// Production fetches the player's production lines, optionally limited to
// one planet.
func (r *Registry) Production(ctx context.Context, user, planet string) ([]ProductionLine, error) {
	endpoint := "/production/" + user
	if planet != "" {
		endpoint += "/" + planet
	}
	var lines []ProductionLine
	req := fio.Request{Endpoint: endpoint, Policy: fio.NoCache(), Label: "production"}
	if err := r.client.FetchJSON(ctx, req, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Ship is one of the player's vessels.
type Ship struct {
	Registration string `json:"Registration"`
	Name         string `json:"Name"`
	Location     string `json:"Location"`
	FlightID     string `json:"FlightId"`
}

// Ships fetches the player's fleet.
func (r *Registry) Ships(ctx context.Context, user string) ([]Ship, error) {
	var ships []Ship
	req := fio.Request{Endpoint: "/ship/ships/" + user, Policy: fio.NoCache(), Label: "ships"}
	if err := r.client.FetchJSON(ctx, req, &ships); err != nil {
		return nil, err
	}
	return ships, nil
}
