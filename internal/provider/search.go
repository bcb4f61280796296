package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kumar045/seo-website/internal/cache"
	"github.com/kumar045/seo-website/internal/metrics"
	"github.com/kumar045/seo-website/internal/model"

	"go.uber.org/zap"
)

const (
	defaultSearchTimeout = 15 * time.Second
	maxSearchResults     = 5
)

// SearchConfig configures the search-results capability.
type SearchConfig struct {
	APIKey   string
	Endpoint string
	Country  string
	Language string
	Num      int
	Timeout  time.Duration
	Cache    *cache.TTLCache
}

// SearchClient queries SerpAPI for organic results.
type SearchClient struct {
	cfg        SearchConfig
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewSearchClient builds the search capability. Without an API key every
// call returns synthetic results.
func NewSearchClient(cfg SearchConfig, logger *zap.Logger) *SearchClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.Num <= 0 {
		cfg.Num = 10
	}
	return &SearchClient{
		cfg:        cfg,
		httpClient: httpClient(cfg.Timeout, defaultSearchTimeout),
		logger:     logger.With(zap.String("capability", CapabilitySearch)),
		now:        time.Now,
	}
}

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search returns up to five ranked results for keyword. It never fails.
func (c *SearchClient) Search(ctx context.Context, keyword string) SearchResults {
	start := time.Now()
	if c.cfg.APIKey == "" {
		metrics.ObserveProvider(CapabilitySearch, metrics.OutcomeFallback, start)
		return c.fallback(keyword)
	}

	key := c.cacheKey(keyword)
	if c.cfg.Cache != nil {
		var cached []model.SearchResult
		err := c.cfg.Cache.Get(key, &cached)
		if err == nil {
			metrics.ObserveProvider(CapabilitySearch, metrics.OutcomeCached, start)
			return SearchResults{Results: cached}
		}
		if !errors.Is(err, cache.ErrMiss) {
			c.logger.Warn("Search cache read failed", zap.Error(err))
		}
	}

	results, err := c.query(ctx, keyword)
	if err != nil {
		c.logger.Warn("SERP API request failed, using fallback", zap.String("keyword", keyword), zap.Error(err))
		metrics.ObserveProvider(CapabilitySearch, metrics.OutcomeFallback, start)
		return c.fallback(keyword)
	}
	if c.cfg.Cache != nil {
		if err := c.cfg.Cache.Put(key, results); err != nil {
			c.logger.Warn("Search cache write failed", zap.Error(err))
		}
	}
	metrics.ObserveProvider(CapabilitySearch, metrics.OutcomeLive, start)
	return SearchResults{Results: results}
}

func (c *SearchClient) fallback(keyword string) SearchResults {
	return SearchResults{Results: SyntheticResults(keyword, c.now()), Synthetic: true}
}

func (c *SearchClient) query(ctx context.Context, keyword string) ([]model.SearchResult, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("search endpoint: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.cfg.APIKey)
	q.Set("q", keyword)
	q.Set("engine", "google")
	q.Set("num", strconv.Itoa(c.cfg.Num))
	if c.cfg.Country != "" {
		q.Set("gl", c.cfg.Country)
	}
	if c.cfg.Language != "" {
		q.Set("hl", c.cfg.Language)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, redact(err, c.cfg.Endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("SERP API request failed: %d", resp.StatusCode)
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("api error: %s", parsed.Error)
	}

	results := make([]model.SearchResult, 0, maxSearchResults)
	for i, r := range parsed.OrganicResults {
		if i == maxSearchResults {
			break
		}
		results = append(results, model.SearchResult{
			Title:       r.Title,
			URL:         r.Link,
			Description: r.Snippet,
			Rank:        i + 1,
		})
	}
	return results, nil
}

func (c *SearchClient) cacheKey(keyword string) string {
	return fmt.Sprintf("serp:%s:%s:%s", c.cfg.Country, c.cfg.Language, strings.ToLower(strings.TrimSpace(keyword)))
}
