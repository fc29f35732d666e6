package registry

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"prunkit/internal/config"
	"prunkit/internal/db"
	"prunkit/internal/fio"
)

// Game reference data changes slowly; a day of staleness is the deliberate
// trade for not hammering the service.
const referenceTTL = 24 * time.Hour

func fioRequest(endpoint, label string) fio.Request {
	return fio.Request{Endpoint: endpoint, Policy: fio.TTL(referenceTTL), Label: label}
}

// Fetcher is the slice of the FIO client the registry needs. Tests supply a
// stub with canned payloads.
type Fetcher interface {
	FetchJSON(ctx context.Context, req fio.Request, dst interface{}) error
	FetchCSV(ctx context.Context, req fio.Request) ([]fio.Row, error)
}

// Registry is a process-wide memoized index of parsed game data. Every
// accessor computes once and returns the same object to later callers; a
// singleflight.Group coalesces concurrent first accesses. Entries are never
// invalidated within a run.
type Registry struct {
	client  Fetcher
	dataDir string
	jumpCSV string

	// In/Out carry the prompt-once dialogs (username, preferred exchange).
	In  io.Reader
	Out io.Writer

	db *db.DB

	mu    sync.RWMutex
	memo  map[string]interface{}
	group singleflight.Group
}

// New builds a registry over a fetcher. dataDir holds the persisted
// single-line files and the jump-distance CSV.
func New(client Fetcher, cfg *config.Config) *Registry {
	return &Registry{
		client:  client,
		dataDir: cfg.DataDir,
		jumpCSV: filepath.Join(cfg.CacheDir, "jump_distance.csv"),
		In:      os.Stdin,
		Out:     os.Stderr,
		memo:    make(map[string]interface{}),
	}
}

// get memoizes compute under key. The first computed value wins; all later
// callers observe the identical object.
func (r *Registry) get(key string, compute func() (interface{}, error)) (interface{}, error) {
	r.mu.RLock()
	v, ok := r.memo[key]
	r.mu.RUnlock()
	if ok {
		return v, nil
	}
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		r.mu.RLock()
		v, ok := r.memo[key]
		r.mu.RUnlock()
		if ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.memo[key] = v
		r.mu.Unlock()
		return v, nil
	})
	return v, err
}
