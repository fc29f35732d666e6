package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application settings (in-memory representation).
type Config struct {
	// BaseURL is the root of the game data REST service.
	BaseURL string `yaml:"base_url"`
	// DataDir holds identity files (apikey.txt, username.txt, preferred_exchange.txt).
	DataDir string `yaml:"data_dir"`
	// CacheDir holds one file per cached request plus jump_distance.csv.
	CacheDir string `yaml:"cache_dir"`

	// DefaultTTL is the cache policy applied when a caller passes none.
	DefaultTTL time.Duration `yaml:"default_ttl"`

	// RateRequests per RateWindow bounds outgoing requests (cache hits exempt).
	RateRequests int           `yaml:"rate_requests"`
	RateWindow   time.Duration `yaml:"rate_window"`

	// DefaultExchange is used when no preferred exchange has been chosen yet.
	DefaultExchange string `yaml:"default_exchange"`

	// HTTPTimeout bounds a single request attempt.
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// QueueCapacity and QueueMaxOrder tune the production queue balancer.
	QueueCapacity int `yaml:"queue_capacity"`
	QueueMaxOrder int `yaml:"queue_max_order"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		BaseURL:         "https://rest.fnar.net",
		DataDir:         "data",
		CacheDir:        "cache",
		DefaultTTL:      24 * time.Hour,
		RateRequests:    1,
		RateWindow:      500 * time.Millisecond,
		DefaultExchange: "NC1",
		HTTPTimeout:     30 * time.Second,
		QueueCapacity:   5,
		QueueMaxOrder:   20,
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error: defaults are returned unchanged.
func Load(path string) (*Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if c.RateRequests <= 0 {
		c.RateRequests = 1
	}
	if c.RateWindow <= 0 {
		c.RateWindow = 500 * time.Millisecond
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = 5
	}
	return c, nil
}
