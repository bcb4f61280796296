// Package provider wraps the external capabilities the site depends on:
// generative text, site fetching and search results.
//
// Text generation and search degrade to synthetic payloads built from the
// keyword and the current date whenever the provider is unconfigured or fails,
// so callers always receive usable content. Site fetching is different: its
// failures are returned as *FetchFailure because the competitor view has a
// meaningful error state of its own.
package provider

import (
	"net/http"
	"time"

	"github.com/kumar045/seo-website/internal/cache"
	"github.com/kumar045/seo-website/internal/config"
	"github.com/kumar045/seo-website/internal/model"

	"go.uber.org/zap"
)

// Capability names used in logs and metrics.
const (
	CapabilityText   = "text"
	CapabilityFetch  = "fetch"
	CapabilitySearch = "search"
)

// ArticleDraft is the text capability's output for a blog post.
type ArticleDraft struct {
	Title           string
	Excerpt         string
	Body            string
	ReadTimeMinutes int
	Tags            []string
	ImageURL        string
	Synthetic       bool
}

// LandingDraft is the text capability's output for a landing page.
type LandingDraft struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Sections    model.Sections `json:"content"`
	SEO         model.SEO      `json:"seo"`
	Synthetic   bool           `json:"-"`
}

// SearchResults is the search capability's output. Synthetic marks the
// placeholder results used when SerpAPI is unconfigured or failing.
type SearchResults struct {
	Results   []model.SearchResult
	Synthetic bool
}

// Valid reports whether the draft has a title and renderable sections.
func (d LandingDraft) Valid() bool {
	return d.Title != "" && d.Sections.Complete()
}

// Adapter bundles the three capabilities behind one value.
type Adapter struct {
	*TextClient
	*FetchClient
	*SearchClient

	closers []func() error
}

// NewAdapter builds every capability client from configuration. Missing
// credentials leave the matching capability in fallback mode.
func NewAdapter(cfg *config.Config, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{}

	var completer Completer
	if cfg.LLM.APIKey != "" {
		llm, err := NewLLMCompleter(cfg.LLM)
		if err != nil {
			return nil, err
		}
		completer = llm
	} else {
		logger.Warn("LLM API key not configured, using synthetic content generation")
	}
	a.TextClient = NewTextClient(completer, logger)

	a.FetchClient = NewFetchClient(FetchConfig{
		APIKey:   cfg.Scraper.APIKey,
		Endpoint: cfg.Scraper.Endpoint,
		Render:   cfg.Scraper.Render,
		Timeout:  time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second,
	}, logger)

	var ttl *cache.TTLCache
	if cfg.Search.CacheTTLSeconds > 0 {
		c, err := cache.New(time.Duration(cfg.Search.CacheTTLSeconds) * time.Second)
		if err != nil {
			return nil, err
		}
		ttl = c
		a.closers = append(a.closers, c.Close)
	}
	a.SearchClient = NewSearchClient(SearchConfig{
		APIKey:   cfg.Search.APIKey,
		Endpoint: cfg.Search.Endpoint,
		Country:  cfg.Search.Country,
		Language: cfg.Search.Language,
		Num:      cfg.Search.Num,
		Timeout:  time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
		Cache:    ttl,
	}, logger)

	return a, nil
}

// Close releases resources held by the adapter.
func (a *Adapter) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func httpClient(timeout, fallback time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = fallback
	}
	return &http.Client{Timeout: timeout}
}
