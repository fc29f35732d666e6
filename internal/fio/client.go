package fio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"

	"prunkit/internal/config"
	"prunkit/internal/logger"
)

const maxAttempts = 3

// Format selects how a response body is decoded.
type Format int

const (
	// FormatAuto picks JSON or CSV from the endpoint prefix.
	FormatAuto Format = iota
	FormatJSON
	FormatCSV
)

func (f Format) ext() string {
	if f == FormatCSV {
		return ".csv"
	}
	return ".json"
}

// DetectFormat resolves FormatAuto: /csv/ endpoints are tabular, the rest JSON.
func DetectFormat(endpoint string) Format {
	if strings.HasPrefix(endpoint, "/csv/") {
		return FormatCSV
	}
	return FormatJSON
}

// Request describes one fetch against the game data service.
type Request struct {
	Method   string // defaults to GET
	Endpoint string // path starting with "/"
	Body     []byte
	Format   Format
	Policy   CachePolicy
	Label    string // progress label; endpoint when empty
}

// Client is a rate-limited HTTP client for the game data service with a
// per-request disk cache. Cache hits bypass the limiter entirely.
type Client struct {
	http     *http.Client
	limiter  *rate.Limiter
	baseURL  string
	cacheDir string
	apiKey   string
}

// NewClient creates a Client from the given config. The API key is taken
// from the FIO_API_KEY environment variable or data_dir/apikey.txt; if
// neither exists requests go out unauthenticated.
func NewClient(cfg *config.Config) *Client {
	key := os.Getenv("FIO_API_KEY")
	if key == "" {
		if raw, err := os.ReadFile(filepath.Join(cfg.DataDir, "apikey.txt")); err == nil {
			key = strings.TrimSpace(string(raw))
		}
	}
	perSec := float64(cfg.RateRequests) / cfg.RateWindow.Seconds()
	return &Client{
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		limiter:  rate.NewLimiter(rate.Limit(perSec), cfg.RateRequests),
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		cacheDir: cfg.CacheDir,
		apiKey:   key,
	}
}

// Authenticated reports whether an API key is attached to requests.
func (c *Client) Authenticated() bool { return c.apiKey != "" }

// Fetch performs the request and returns the raw body. Cached bodies are
// returned without touching the network; fresh bodies are written to the
// cache before returning.
func (c *Client) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if strings.ContainsAny(req.Endpoint, `"'<>`) {
		return nil, fmt.Errorf("%w: %q", ErrBadEndpoint, req.Endpoint)
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	format := req.Format
	if format == FormatAuto {
		format = DetectFormat(req.Endpoint)
	}

	path := filepath.Join(c.cacheDir, cacheFilename(req.Method, req.Endpoint, format))
	if body, ok := c.readCache(path, req.Policy); ok {
		return body, nil
	}

	label := req.Label
	if label == "" {
		label = req.Endpoint
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		body, status, err := c.do(ctx, req)
		if err != nil {
			lastErr = err
			logger.Warn("FIO", fmt.Sprintf("%s attempt %d/%d: %v", label, attempt, maxAttempts, err))
			continue
		}
		if status != http.StatusOK {
			if status >= 500 && attempt < maxAttempts {
				lastErr = fmt.Errorf("HTTP %d", status)
				continue
			}
			return nil, &FetchError{Endpoint: req.Endpoint, Status: status}
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			continue
		}
		if err := c.writeCache(path, body); err != nil {
			logger.Warn("FIO", fmt.Sprintf("cache write %s: %v", path, err))
		}
		return body, nil
	}
	return nil, &FetchError{Endpoint: req.Endpoint, Err: lastErr}
}

// do performs a single attempt.
func (c *Client) do(ctx context.Context, req Request) ([]byte, int, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("User-Agent", "prunkit/1.0")
	httpReq.Header.Set("Accept-Encoding", "gzip")
	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	reader := resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, 0, err
		}
		defer gz.Close()
		reader = gz
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, 0, err
	}
	return raw, resp.StatusCode, nil
}

// FetchJSON fetches and decodes a JSON endpoint into dst.
func (c *Client) FetchJSON(ctx context.Context, req Request, dst interface{}) error {
	req.Format = FormatJSON
	raw, err := c.Fetch(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &ParseError{Endpoint: req.Endpoint, Err: err}
	}
	return nil
}
