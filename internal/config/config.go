package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains HTTP listener and site settings.
type Server struct {
	Addr                string `toml:"addr"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
	SiteName            string `toml:"site_name"`
	SiteURL             string `toml:"site_url"`
}

// LLM contains the generative-text provider settings.
type LLM struct {
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	Model             string  `toml:"model"`
	Temperature       float64 `toml:"temperature"`
	RequestsPerMinute int     `toml:"requests_per_minute"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// Scraper contains the site-fetch provider settings. Without an API key pages
// are fetched directly.
type Scraper struct {
	APIKey         string `toml:"api_key"`
	Endpoint       string `toml:"endpoint"`
	Render         bool   `toml:"render"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Search contains the search-results provider settings.
type Search struct {
	APIKey          string `toml:"api_key"`
	Endpoint        string `toml:"endpoint"`
	Country         string `toml:"country"`
	Language        string `toml:"language"`
	Num             int    `toml:"num"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// Redis backs the generation job queue. An empty address selects the
// in-process queue.
type Redis struct {
	Addr string `toml:"addr"`
}

type Worker struct {
	Enabled bool `toml:"enabled"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Heuristics seeds the placeholder estimates (trend coin flip, traffic
// multipliers). Zero seeds from the clock.
type Heuristics struct {
	Seed int64 `toml:"seed"`
}

// Config is the full application configuration.
type Config struct {
	Server     Server     `toml:"server"`
	LLM        LLM        `toml:"llm"`
	Scraper    Scraper    `toml:"scraper"`
	Search     Search     `toml:"search"`
	Redis      Redis      `toml:"redis"`
	Worker     Worker     `toml:"worker"`
	Logging    Logging    `toml:"logging"`
	Heuristics Heuristics `toml:"heuristics"`
}

// SampleConfig returns the annotated example configuration.
func SampleConfig() string {
	return sampleConfig
}

// Load reads configuration from path (optional), then .env, then the process
// environment. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg, os.Getenv)

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := strings.TrimSpace(getenv(key)); v != "" {
				*dst = v
				return
			}
		}
	}
	set(&cfg.LLM.APIKey, "LLM_API_KEY", "GEMINI_API_KEY")
	set(&cfg.LLM.Model, "LLM_MODEL")
	set(&cfg.Scraper.APIKey, "SCRAPER_API_KEY")
	set(&cfg.Search.APIKey, "SERP_API_KEY")
	set(&cfg.Redis.Addr, "REDIS_ADDR")
	set(&cfg.Server.Addr, "SEO_ADDR")
	set(&cfg.Logging.Level, "LOG_LEVEL")
}

func (c *Config) normalize() {
	d := Default()
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = d.Server.ReadTimeoutSeconds
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = d.Server.WriteTimeoutSeconds
	}
	c.Server.SiteURL = strings.TrimRight(strings.TrimSpace(c.Server.SiteURL), "/")
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		c.LLM.BaseURL = d.LLM.BaseURL
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = d.LLM.Model
	}
	if c.Scraper.TimeoutSeconds <= 0 {
		c.Scraper.TimeoutSeconds = d.Scraper.TimeoutSeconds
	}
	if strings.TrimSpace(c.Scraper.Endpoint) == "" {
		c.Scraper.Endpoint = d.Scraper.Endpoint
	}
	if strings.TrimSpace(c.Search.Endpoint) == "" {
		c.Search.Endpoint = d.Search.Endpoint
	}
	if c.Search.Num <= 0 {
		c.Search.Num = d.Search.Num
	}
	c.Search.Country = strings.ToLower(strings.TrimSpace(c.Search.Country))
	c.Search.Language = strings.ToLower(strings.TrimSpace(c.Search.Language))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Validate checks values that normalize cannot repair.
func (c *Config) Validate() error {
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2], got %v", c.LLM.Temperature)
	}
	if c.LLM.RequestsPerMinute < 0 {
		return errors.New("llm.requests_per_minute must be non-negative")
	}
	if c.Search.CacheTTLSeconds < 0 {
		return errors.New("search.cache_ttl_seconds must be non-negative")
	}
	switch c.Logging.Format {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
