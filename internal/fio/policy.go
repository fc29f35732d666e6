package fio

import (
	"fmt"
	"strconv"
	"time"
)

type policyMode int

const (
	policyNoCache policyMode = iota
	policyForever
	policyTTL
)

// CachePolicy controls whether a fetch may be served from the disk cache.
// The zero value is NoCache.
type CachePolicy struct {
	mode policyMode
	ttl  time.Duration
}

// NoCache always hits the network.
func NoCache() CachePolicy { return CachePolicy{mode: policyNoCache} }

// Forever serves any cached file regardless of age.
func Forever() CachePolicy { return CachePolicy{mode: policyForever} }

// TTL serves a cached file younger than d. A non-positive d behaves as NoCache.
func TTL(d time.Duration) CachePolicy {
	if d <= 0 {
		return NoCache()
	}
	return CachePolicy{mode: policyTTL, ttl: d}
}

// ParsePolicy collapses the loose forms accepted at the boundary
// ("no-cache", "forever", or a number of seconds) into one type.
func ParsePolicy(s string) (CachePolicy, error) {
	switch s {
	case "no-cache", "false":
		return NoCache(), nil
	case "forever", "true":
		return Forever(), nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 {
		return CachePolicy{}, fmt.Errorf("%w: cache policy %q", ErrInvalidPolicy, s)
	}
	return TTL(time.Duration(secs * float64(time.Second))), nil
}

// Fresh reports whether a cache entry with the given age may be used.
func (p CachePolicy) Fresh(age time.Duration) bool {
	switch p.mode {
	case policyForever:
		return true
	case policyTTL:
		return age <= p.ttl
	default:
		return false
	}
}

// UsesCache reports whether the policy consults the cache at all.
func (p CachePolicy) UsesCache() bool { return p.mode != policyNoCache }

func (p CachePolicy) String() string {
	switch p.mode {
	case policyForever:
		return "forever"
	case policyTTL:
		return fmt.Sprintf("ttl=%s", p.ttl)
	default:
		return "no-cache"
	}
}
