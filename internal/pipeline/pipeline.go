// Package pipeline turns keywords and URLs into canonical content records.
// It never touches the content store; callers decide what to keep.
package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/kumar045/seo-website/internal/metrics"
	"github.com/kumar045/seo-website/internal/provider"

	"go.uber.org/zap"
)

// TextGenerator is the generative-text capability.
type TextGenerator interface {
	GenerateArticle(ctx context.Context, keyword string) provider.ArticleDraft
	GenerateLanding(ctx context.Context, keyword string) provider.LandingDraft
	ExtractKeywords(ctx context.Context, content string) []string
}

// SiteFetcher is the site-fetch capability.
type SiteFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SearchProvider is the search-results capability.
type SearchProvider interface {
	Search(ctx context.Context, keyword string) provider.SearchResults
}

// Options tune a Pipeline. Zero values select the wall clock, a
// clock-seeded random source and a no-op logger.
type Options struct {
	Now    func() time.Time
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Pipeline orchestrates provider calls for one keyword or URL at a time.
type Pipeline struct {
	text   TextGenerator
	fetch  SiteFetcher
	search SearchProvider
	now    func() time.Time
	logger *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// New builds a Pipeline. The provider Adapter satisfies all three
// capability interfaces.
func New(text TextGenerator, fetch SiteFetcher, search SearchProvider, opts Options) *Pipeline {
	p := &Pipeline{
		text:   text,
		fetch:  fetch,
		search: search,
		now:    opts.Now,
		rnd:    opts.Rand,
		logger: opts.Logger,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.rnd == nil {
		p.rnd = NewRand(0)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// NewRand returns a random source for the placeholder heuristics. A zero
// seed uses the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

func requireKeyword(field, keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return keyword, nil
}

func record(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		var ve *ValidationError
		if errors.As(err, &ve) {
			result = "invalid"
		}
	}
	metrics.PipelineOperations.WithLabelValues(operation, result).Inc()
}

// intN returns a value in [0, n) from the shared random source.
func (p *Pipeline) intN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}
