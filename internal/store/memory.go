package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/kumar045/seo-website/internal/metrics"
	"github.com/kumar045/seo-website/internal/model"
)

// Memory is the process-local Store. Every mutation takes the write lock, so
// slug uniqueness and ordering hold under concurrent callers. Nothing
// survives a restart.
type Memory struct {
	mu       sync.RWMutex
	articles []model.Article
	pages    []model.LandingPage
	websites []model.TrackedWebsite
	keywords []model.TrackedKeyword
}

func NewMemory() *Memory {
	m := &Memory{}
	m.report()
	return m
}

var _ Store = (*Memory)(nil)

func (m *Memory) AddArticle(_ context.Context, article model.Article) error {
	if article.Slug == "" {
		return ErrEmptySlug
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.ContainsFunc(m.articles, func(a model.Article) bool { return a.Slug == article.Slug }) {
		return ErrSlugTaken
	}
	m.articles = slices.Insert(m.articles, 0, cloneArticle(article))
	m.report()
	return nil
}

func (m *Memory) RemoveArticle(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.articles, func(a model.Article) bool { return a.Slug == slug })
	if i < 0 {
		return ErrNotFound
	}
	m.articles = slices.Delete(m.articles, i, i+1)
	m.report()
	return nil
}

func (m *Memory) Article(_ context.Context, slug string) (model.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.articles {
		if a.Slug == slug {
			return cloneArticle(a), nil
		}
	}
	return model.Article{}, ErrNotFound
}

func (m *Memory) Articles(_ context.Context) ([]model.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Article, len(m.articles))
	for i, a := range m.articles {
		out[i] = cloneArticle(a)
	}
	return out, nil
}

func (m *Memory) AddLandingPage(_ context.Context, page model.LandingPage) error {
	if page.Slug == "" {
		return ErrEmptySlug
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pageIndex(page.Slug) >= 0 {
		return ErrSlugTaken
	}
	m.pages = slices.Insert(m.pages, 0, clonePage(page))
	m.report()
	return nil
}

// UpdateLandingPage replaces the page with the same slug in place and
// returns the stored result. Status is read under the lock, so a status
// change made while new content was being generated survives.
func (m *Memory) UpdateLandingPage(_ context.Context, page model.LandingPage) (model.LandingPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.pageIndex(page.Slug)
	if i < 0 {
		return model.LandingPage{}, ErrNotFound
	}
	page.Status = m.pages[i].Status
	m.pages[i] = clonePage(page)
	return clonePage(page), nil
}

func (m *Memory) SetLandingPageStatus(_ context.Context, slug string, status model.PageStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.pageIndex(slug)
	if i < 0 {
		return ErrNotFound
	}
	m.pages[i].Status = status
	return nil
}

func (m *Memory) LandingPage(_ context.Context, slug string) (model.LandingPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.pageIndex(slug)
	if i < 0 {
		return model.LandingPage{}, ErrNotFound
	}
	return clonePage(m.pages[i]), nil
}

func (m *Memory) LandingPages(_ context.Context) ([]model.LandingPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.LandingPage, len(m.pages))
	for i, p := range m.pages {
		out[i] = clonePage(p)
	}
	return out, nil
}

// AddWebsite appends site. Duplicates are allowed.
func (m *Memory) AddWebsite(_ context.Context, site model.TrackedWebsite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.websites = append(m.websites, site)
	m.report()
	return nil
}

func (m *Memory) Websites(_ context.Context) ([]model.TrackedWebsite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.websites), nil
}

// AddKeyword appends kw unless the same term is already tracked for its
// surface. Terms compare case-insensitively.
func (m *Memory) AddKeyword(_ context.Context, kw model.TrackedKeyword) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.keywords {
		if existing.Surface == kw.Surface && strings.EqualFold(existing.Term, kw.Term) {
			return ErrKeywordTracked
		}
	}
	kw.TopCompetitors = slices.Clone(kw.TopCompetitors)
	m.keywords = append(m.keywords, kw)
	m.report()
	return nil
}

// Keywords lists the keywords tracked for surface.
func (m *Memory) Keywords(_ context.Context, surface model.TargetSurface) ([]model.TrackedKeyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.TrackedKeyword, 0, len(m.keywords))
	for _, kw := range m.keywords {
		if kw.Surface == surface {
			kw.TopCompetitors = slices.Clone(kw.TopCompetitors)
			out = append(out, kw)
		}
	}
	return out, nil
}

func (m *Memory) pageIndex(slug string) int {
	return slices.IndexFunc(m.pages, func(p model.LandingPage) bool { return p.Slug == slug })
}

// report publishes collection sizes. Callers hold the lock.
func (m *Memory) report() {
	metrics.StoreRecords.WithLabelValues("articles").Set(float64(len(m.articles)))
	metrics.StoreRecords.WithLabelValues("landing_pages").Set(float64(len(m.pages)))
	metrics.StoreRecords.WithLabelValues("websites").Set(float64(len(m.websites)))
	metrics.StoreRecords.WithLabelValues("keywords").Set(float64(len(m.keywords)))
}

func cloneArticle(a model.Article) model.Article {
	a.Tags = slices.Clone(a.Tags)
	return a
}

func clonePage(p model.LandingPage) model.LandingPage {
	p.Sections.Features = slices.Clone(p.Sections.Features)
	p.Sections.Benefits = slices.Clone(p.Sections.Benefits)
	p.Sections.Testimonials = slices.Clone(p.Sections.Testimonials)
	p.SEO.Keywords = slices.Clone(p.SEO.Keywords)
	return p
}
