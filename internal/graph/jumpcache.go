package graph

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// JumpCache is a persistent record of previously computed jump distances,
// backed by an append-only CSV of origin,destination,jumps rows. Concurrent
// writers may interleave duplicate keys; readers take the last row.
type JumpCache struct {
	path    string
	entries map[[2]string]int
}

// OpenJumpCache loads the cache file, creating an empty cache when the file
// does not exist yet.
func OpenJumpCache(path string) (*JumpCache, error) {
	c := &JumpCache{path: path, entries: make(map[[2]string]int)}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("open jump cache: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read jump cache: %w", err)
	}
	for _, row := range rows {
		jumps, err := strconv.Atoi(row[2])
		if err != nil {
			continue
		}
		c.entries[[2]string{row[0], row[1]}] = jumps
	}
	return c, nil
}

// Get returns a previously recorded distance.
func (c *JumpCache) Get(origin, dest string) (int, bool) {
	j, ok := c.entries[[2]string{origin, dest}]
	return j, ok
}

// Put records a distance and appends it to the backing file.
func (c *JumpCache) Put(origin, dest string, jumps int) error {
	c.entries[[2]string{origin, dest}] = jumps
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("append jump cache: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s,%s,%d\n", origin, dest, jumps)
	return err
}

// Len returns the number of cached pairs.
func (c *JumpCache) Len() int { return len(c.entries) }

// Pathfinder answers jump-distance queries against a Universe, consulting
// the persistent cache first. The graph is assumed stable within a process.
type Pathfinder struct {
	Universe *Universe
	cache    *JumpCache
}

// NewPathfinder wires a universe to a cache; cache may be nil for ephemeral
// use.
func NewPathfinder(u *Universe, cache *JumpCache) *Pathfinder {
	return &Pathfinder{Universe: u, cache: cache}
}

// Jumps returns the hop count between two systems; ok is false when the
// systems are disconnected. Fresh computations are appended to the cache.
func (p *Pathfinder) Jumps(origin, dest string) (int, bool) {
	if p.cache != nil {
		if j, ok := p.cache.Get(origin, dest); ok {
			return j, j >= 0
		}
	}
	j := p.Universe.ShortestPath(origin, dest)
	if p.cache != nil {
		p.cache.Put(origin, dest, j)
	}
	return j, j >= 0
}
