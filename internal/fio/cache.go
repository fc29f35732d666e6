package fio

import (
	"encoding/hex"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"lukechampine.com/blake3"
)

// cacheKey builds the canonical identity of a request: method, path, and
// sorted query parameters. Two requests with reordered parameters share one
// cache entry.
func cacheKey(method, endpoint string) string {
	path := endpoint
	query := ""
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		path, query = endpoint[:i], endpoint[i+1:]
	}
	if q, err := url.ParseQuery(query); err == nil && len(q) > 0 {
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			vals := append([]string(nil), q[k]...)
			sort.Strings(vals)
			for _, v := range vals {
				parts = append(parts, k+"="+v)
			}
		}
		query = strings.Join(parts, "&")
	}
	key := strings.ToUpper(method) + " " + path
	if query != "" {
		key += "?" + query
	}
	return key
}

// cacheFilename turns a canonical key into a URL-safe filename. The readable
// part keeps the path; a short blake3 digest of the full key guards against
// collisions once unsafe characters are collapsed.
func cacheFilename(method, endpoint string, format Format) string {
	key := cacheKey(method, endpoint)
	sum := blake3.Sum256([]byte(key))
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if len(name) > 120 {
		name = name[:120]
	}
	return name + "-" + hex.EncodeToString(sum[:6]) + format.ext()
}

// readCache returns the cached body for the request if the policy allows it.
func (c *Client) readCache(path string, policy CachePolicy) ([]byte, bool) {
	if !policy.UsesCache() {
		return nil, false
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if !policy.Fresh(time.Since(st.ModTime())) {
		return nil, false
	}
	body, err := os.ReadFile(path)
	if err != nil || len(body) == 0 {
		return nil, false
	}
	return body, true
}

// writeCache stores a response body. Empty payloads are skipped so a flaky
// response never shadows a later good one.
func (c *Client) writeCache(path string, body []byte) error {
	if len(body) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
