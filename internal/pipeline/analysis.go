package pipeline

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/kumar045/seo-website/internal/model"
	"github.com/kumar045/seo-website/internal/provider"

	"go.uber.org/zap"
)

const (
	maxOrganicKeywords = 25000
	maxTopKeywords     = 3
)

// AnalyzeCompetitor estimates search metrics for the site at rawURL. A fetch
// failure is not an error: the result is then derived from the hostname and
// marked Estimated.
func (p *Pipeline) AnalyzeCompetitor(ctx context.Context, rawURL string) (cm model.CompetitorMetrics, err error) {
	defer func() { record("analyze_competitor", err) }()

	u, err := parseAbsoluteURL(rawURL)
	if err != nil {
		return model.CompetitorMetrics{}, err
	}
	target := u.String()

	body, err := p.fetch.Fetch(ctx, target)
	if err != nil {
		p.logger.Warn("Competitor fetch failed, estimating from hostname",
			zap.String("url", target), zap.Error(err))
		return p.estimateFromHost(u, err), nil
	}

	text := stripMarkup(body)
	title, mainText := readableText(body, target, text)
	total, unique := wordCounts(text)

	organic := min(int(float64(unique)*1.5+float64(total)*0.1), maxOrganicKeywords)
	trend := model.TrendDown
	if float64(unique) > 0.4*float64(total) {
		trend = model.TrendUp
	}

	keywords := p.text.ExtractKeywords(ctx, mainText)
	if len(keywords) > maxTopKeywords {
		keywords = keywords[:maxTopKeywords]
	}

	return model.CompetitorMetrics{
		URL:             target,
		Title:           title,
		OrganicKeywords: organic,
		Traffic:         organic * (25 + p.intN(50)),
		TopKeywords:     keywords,
		Trend:           trend,
	}, nil
}

func (p *Pipeline) estimateFromHost(u *url.URL, cause error) model.CompetitorMetrics {
	keywords := []string{"online", "shop"}
	parts := strings.Split(u.Hostname(), ".")
	if len(parts) >= 2 && parts[len(parts)-2] != "" {
		keywords = append([]string{parts[len(parts)-2]}, keywords...)
	}

	reason := "site could not be fetched"
	var ff *provider.FetchFailure
	if errors.As(cause, &ff) && ff.StatusCode != 0 {
		reason = "site returned HTTP " + strconv.Itoa(ff.StatusCode)
	} else if errors.Is(cause, provider.ErrShortBody) {
		reason = "site returned an empty page"
	} else if errors.Is(cause, context.DeadlineExceeded) {
		reason = "site fetch timed out"
	}

	return model.CompetitorMetrics{
		URL:             u.String(),
		OrganicKeywords: 15000 + p.intN(5000),
		Traffic:         750000 + p.intN(250000),
		TopKeywords:     keywords,
		Trend:           model.TrendUp,
		Estimated:       true,
		FetchError:      reason,
	}
}

// AnalyzeKeyword builds a tracked keyword record for term. Search volume and
// difficulty are local heuristics; the trend is a coin flip.
func (p *Pipeline) AnalyzeKeyword(ctx context.Context, term string, surface model.TargetSurface) (kw model.TrackedKeyword, err error) {
	defer func() { record("analyze_keyword", err) }()

	term, err = requireKeyword("term", term)
	if err != nil {
		return model.TrackedKeyword{}, err
	}

	found := p.search.Search(ctx, term)
	difficulty := calculateDifficulty(len(found.Results))
	if found.Synthetic {
		difficulty = fallbackDifficulty
	}
	trend := model.TrendUp
	if p.intN(2) == 1 {
		trend = model.TrendDown
	}

	return model.TrackedKeyword{
		Term:                term,
		MonthlySearchVolume: calculateSearchVolume(term),
		DifficultyScore:     difficulty,
		Trend:               trend,
		TopCompetitors:      found.Results,
		Surface:             surface,
	}, nil
}

// calculateSearchVolume favours short head terms: 10000 * max(0.5, 3 - words/2).
func calculateSearchVolume(term string) int {
	words := float64(len(strings.Fields(term)))
	return int(10000 * max(0.5, 3-0.5*words))
}

// fallbackDifficulty is reported when the search provider could only offer
// placeholder results, which say nothing about competition.
const fallbackDifficulty = 45

// calculateDifficulty maps a competitor count to a score in [45, 85].
func calculateDifficulty(competitors int) int {
	return model.ClampScore(min(45+min(5*competitors, 25), 85))
}

func wordCounts(text string) (total, unique int) {
	words := strings.Fields(text)
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[strings.ToLower(w)] = struct{}{}
	}
	return len(words), len(seen)
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &ValidationError{Field: "url", Reason: "must not be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, &ValidationError{Field: "url", Reason: "must be an absolute URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ValidationError{Field: "url", Reason: "scheme must be http or https"}
	}
	return u, nil
}
