package world

import "math"

// ParsecsPerUnit converts map-coordinate distance to parsecs.
const ParsecsPerUnit = 12.0

// Link is one jump connection out of a system.
type Link struct {
	SystemID string
	Parsecs  float64
}

// System is one star system with its map position and jump connections.
type System struct {
	ID        string
	NaturalID string
	Name      string
	X, Y, Z   float64
	Neighbors []Link
}

// DistanceTo returns the straight-line distance to another system in
// parsecs.
func (s *System) DistanceTo(o *System) float64 {
	dx, dy, dz := s.X-o.X, s.Y-o.Y, s.Z-o.Z
	return math.Sqrt(dx*dx+dy*dy+dz*dz) / ParsecsPerUnit
}
