package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kumar045/seo-website/internal/metrics"

	"go.uber.org/zap"
)

const (
	defaultFetchTimeout = 30 * time.Second
	minPageLength       = 100
	maxPageBytes        = 8 << 20
	fetchUserAgent      = "Mozilla/5.0 (compatible; seo-website/1.0)"
)

// ErrShortBody marks a response too short to be a real page.
var ErrShortBody = errors.New("response body too short")

// FetchFailure is returned when a page could not be fetched.
type FetchFailure struct {
	URL        string
	StatusCode int
	Err        error
}

func (f *FetchFailure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: http %d", f.URL, f.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", f.URL, f.Err)
}

func (f *FetchFailure) Unwrap() error {
	return f.Err
}

// FetchConfig configures the site-fetch capability.
type FetchConfig struct {
	APIKey   string
	Endpoint string
	Render   bool
	Timeout  time.Duration
}

// FetchClient retrieves raw page text, through ScraperAPI when a key is set
// and directly otherwise.
type FetchClient struct {
	cfg        FetchConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFetchClient builds the site-fetch capability.
func NewFetchClient(cfg FetchConfig, logger *zap.Logger) *FetchClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	return &FetchClient{
		cfg:        cfg,
		httpClient: httpClient(cfg.Timeout, defaultFetchTimeout),
		logger:     logger.With(zap.String("capability", CapabilityFetch)),
	}
}

// Fetch returns the body of the page at rawURL or a *FetchFailure.
func (c *FetchClient) Fetch(ctx context.Context, rawURL string) (string, error) {
	start := time.Now()
	body, err := c.fetch(ctx, rawURL)
	if err != nil {
		c.logger.Warn("Scraping failed", zap.String("url", rawURL), zap.Error(err))
		metrics.ObserveProvider(CapabilityFetch, metrics.OutcomeFailure, start)
		return "", err
	}
	metrics.ObserveProvider(CapabilityFetch, metrics.OutcomeLive, start)
	return body, nil
}

func (c *FetchClient) fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := c.requestURL(rawURL)
	if err != nil {
		return "", &FetchFailure{URL: rawURL, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &FetchFailure{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &FetchFailure{URL: rawURL, Err: redact(err, rawURL)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchFailure{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("http status %d", resp.StatusCode)}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", &FetchFailure{URL: rawURL, Err: redact(err, rawURL)}
	}
	if len(strings.TrimSpace(string(data))) < minPageLength {
		return "", &FetchFailure{URL: rawURL, Err: ErrShortBody}
	}
	return string(data), nil
}

func (c *FetchClient) requestURL(rawURL string) (string, error) {
	if c.cfg.APIKey == "" {
		return rawURL, nil
	}
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("scraper endpoint: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.cfg.APIKey)
	q.Set("url", rawURL)
	if c.cfg.Render {
		q.Set("render", "true")
	}
	q.Set("keep_headers", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redact replaces the request URL inside transport errors so the scraper key
// never reaches logs or callers.
func redact(err error, rawURL string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = rawURL
	}
	return err
}
