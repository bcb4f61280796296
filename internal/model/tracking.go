package model

import (
	"fmt"
	"strings"
)

// TargetSurface says which part of the site a keyword is tracked for.
type TargetSurface int

const (
	SurfaceBlog TargetSurface = iota
	SurfaceLanding
)

func (s TargetSurface) String() string {
	switch s {
	case SurfaceBlog:
		return "blog"
	case SurfaceLanding:
		return "landing"
	}
	return fmt.Sprintf("surface(%d)", int(s))
}

// ParseSurface accepts "blog" or "landing"; an empty string means blog.
func ParseSurface(s string) (TargetSurface, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "blog":
		return SurfaceBlog, nil
	case "landing":
		return SurfaceLanding, nil
	}
	return 0, fmt.Errorf("unknown surface %q", s)
}

func (s TargetSurface) MarshalText() ([]byte, error) {
	switch s {
	case SurfaceBlog, SurfaceLanding:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid surface %d", int(s))
}

func (s *TargetSurface) UnmarshalText(b []byte) error {
	v, err := ParseSurface(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Trend is the direction of a keyword or site's recent performance.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// WebsiteCategory says why a website is tracked.
type WebsiteCategory string

const (
	CategoryCompetitor  WebsiteCategory = "competitor"
	CategoryInspiration WebsiteCategory = "inspiration"
)

// ParseCategory accepts "competitor" or "inspiration"; empty means competitor.
func ParseCategory(s string) (WebsiteCategory, error) {
	switch WebsiteCategory(strings.ToLower(strings.TrimSpace(s))) {
	case "", CategoryCompetitor:
		return CategoryCompetitor, nil
	case CategoryInspiration:
		return CategoryInspiration, nil
	}
	return "", fmt.Errorf("unknown website category %q", s)
}

// TrackedWebsite is a competitor or inspiration site the admin follows.
type TrackedWebsite struct {
	URL      string          `json:"url"`
	Category WebsiteCategory `json:"category"`
}

// SearchResult is one organic result for a keyword. Rank starts at 1.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Rank        int    `json:"rank"`
}

// TrackedKeyword is a search term monitored for one surface of the site.
type TrackedKeyword struct {
	Term                string         `json:"term"`
	MonthlySearchVolume int            `json:"monthly_search_volume"`
	DifficultyScore     int            `json:"difficulty_score"`
	Trend               Trend          `json:"trend"`
	TopCompetitors      []SearchResult `json:"top_competitors"`
	Surface             TargetSurface  `json:"surface"`
}

// CompetitorMetrics is the estimate produced for a competitor website.
// Estimated is set when the page could not be fetched and the numbers were
// derived from the hostname alone.
type CompetitorMetrics struct {
	URL             string   `json:"url"`
	Title           string   `json:"title,omitempty"`
	OrganicKeywords int      `json:"organic_keywords"`
	Traffic         int      `json:"traffic"`
	TopKeywords     []string `json:"top_keywords"`
	Trend           Trend    `json:"trend"`
	Estimated       bool     `json:"estimated"`
	FetchError      string   `json:"fetch_error,omitempty"`
}

// ClampScore limits a score to [0, 100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
