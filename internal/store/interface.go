package store

import (
	"context"
	"errors"

	"github.com/kumar045/seo-website/internal/model"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrSlugTaken      = errors.New("slug already in use")
	ErrKeywordTracked = errors.New("keyword already tracked for this surface")
	ErrEmptySlug      = errors.New("slug must not be empty")
)

// Store holds the site's content records. Posts and landing pages are kept
// newest first; websites and keywords in insertion order.
type Store interface {
	AddArticle(ctx context.Context, article model.Article) error
	RemoveArticle(ctx context.Context, slug string) error
	Article(ctx context.Context, slug string) (model.Article, error)
	Articles(ctx context.Context) ([]model.Article, error)

	AddLandingPage(ctx context.Context, page model.LandingPage) error
	// UpdateLandingPage replaces a page's content. The stored status is
	// kept; only SetLandingPageStatus changes it.
	UpdateLandingPage(ctx context.Context, page model.LandingPage) (model.LandingPage, error)
	SetLandingPageStatus(ctx context.Context, slug string, status model.PageStatus) error
	LandingPage(ctx context.Context, slug string) (model.LandingPage, error)
	LandingPages(ctx context.Context) ([]model.LandingPage, error)

	AddWebsite(ctx context.Context, site model.TrackedWebsite) error
	Websites(ctx context.Context) ([]model.TrackedWebsite, error)

	AddKeyword(ctx context.Context, kw model.TrackedKeyword) error
	Keywords(ctx context.Context, surface model.TargetSurface) ([]model.TrackedKeyword, error)
}
