package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kumar045/seo-website/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func article(title string) model.Article {
	return model.NewArticle(title, "excerpt", "body text", 1, []string{"Guide"}, "", time.Now())
}

func TestMemory_AddRemoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, st.AddArticle(ctx, article("First Post")))

	before, err := st.Articles(ctx)
	require.NoError(t, err)

	// Add then remove leaves the list as it was
	a := article("Second Post")
	require.NoError(t, st.AddArticle(ctx, a))
	require.NoError(t, st.RemoveArticle(ctx, a.Slug))

	after, err := st.Articles(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMemory_ArticlesNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, st.AddArticle(ctx, article("One")))
	require.NoError(t, st.AddArticle(ctx, article("Two")))

	list, _ := st.Articles(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "two", list[0].Slug)
	assert.Equal(t, "one", list[1].Slug)
}

func TestMemory_SlugCollision(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	require.NoError(t, st.AddArticle(ctx, article("Complete Guide to SEO!")))
	err := st.AddArticle(ctx, article("complete guide to seo"))
	assert.ErrorIs(t, err, ErrSlugTaken)

	got, err := st.Article(ctx, "complete-guide-to-seo")
	require.NoError(t, err)
	assert.Equal(t, "Complete Guide to SEO!", got.Title, "first article must not be overwritten")

	page := model.LandingPage{Slug: "offer", Title: "Offer"}
	require.NoError(t, st.AddLandingPage(ctx, page))
	assert.ErrorIs(t, st.AddLandingPage(ctx, page), ErrSlugTaken)
	assert.ErrorIs(t, st.AddLandingPage(ctx, model.LandingPage{}), ErrEmptySlug)
}

func TestMemory_NotFound(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	assert.ErrorIs(t, st.RemoveArticle(ctx, "missing"), ErrNotFound)
	_, err := st.Article(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.LandingPage(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.SetLandingPageStatus(ctx, "missing", model.StatusDraft), ErrNotFound)
	_, err = st.UpdateLandingPage(ctx, model.LandingPage{Slug: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_LandingPageUpdates(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	page := model.LandingPage{Slug: "offer", Title: "Offer", Status: model.StatusPublished}
	require.NoError(t, st.AddLandingPage(ctx, page))

	require.NoError(t, st.SetLandingPageStatus(ctx, "offer", model.StatusDraft))
	got, _ := st.LandingPage(ctx, "offer")
	assert.Equal(t, model.StatusDraft, got.Status)

	got.Title = "Better Offer"
	updated, err := st.UpdateLandingPage(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Better Offer", updated.Title)
	got, _ = st.LandingPage(ctx, "offer")
	assert.Equal(t, "Better Offer", got.Title)
}

// TestMemory_UpdateKeepsStatus checks that replacing content never reverts a
// status set in the meantime.
func TestMemory_UpdateKeepsStatus(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, st.AddLandingPage(ctx, model.LandingPage{Slug: "offer", Title: "Offer", Status: model.StatusPublished}))

	// Content generated from the published snapshot
	fresh, err := st.LandingPage(ctx, "offer")
	require.NoError(t, err)
	fresh.Title = "Fresh Offer"

	// Admin unpublishes before the new content lands
	require.NoError(t, st.SetLandingPageStatus(ctx, "offer", model.StatusDraft))

	updated, err := st.UpdateLandingPage(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, updated.Status)

	got, err := st.LandingPage(ctx, "offer")
	require.NoError(t, err)
	assert.Equal(t, "Fresh Offer", got.Title)
	assert.Equal(t, model.StatusDraft, got.Status)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, st.AddArticle(ctx, article("Copy Test")))

	list, _ := st.Articles(ctx)
	list[0].Tags[0] = "mutated"
	list[0].Title = "mutated"

	got, _ := st.Article(ctx, "copy-test")
	assert.Equal(t, "Copy Test", got.Title)
	assert.Equal(t, []string{"Guide"}, got.Tags)
}

func TestMemory_Keywords(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	require.NoError(t, st.AddKeyword(ctx, model.TrackedKeyword{Term: "seo", Surface: model.SurfaceBlog}))
	require.NoError(t, st.AddKeyword(ctx, model.TrackedKeyword{Term: "seo", Surface: model.SurfaceLanding}))
	require.NoError(t, st.AddKeyword(ctx, model.TrackedKeyword{Term: "ads", Surface: model.SurfaceBlog}))
	assert.ErrorIs(t, st.AddKeyword(ctx, model.TrackedKeyword{Term: "SEO", Surface: model.SurfaceBlog}), ErrKeywordTracked)

	blog, _ := st.Keywords(ctx, model.SurfaceBlog)
	require.Len(t, blog, 2)
	assert.Equal(t, "seo", blog[0].Term)
	assert.Equal(t, "ads", blog[1].Term)

	landing, _ := st.Keywords(ctx, model.SurfaceLanding)
	assert.Len(t, landing, 1)
}

func TestMemory_WebsitesKeepOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	a := model.TrackedWebsite{URL: "https://a.test", Category: model.CategoryCompetitor}
	b := model.TrackedWebsite{URL: "https://b.test", Category: model.CategoryInspiration}

	require.NoError(t, st.AddWebsite(ctx, a))
	require.NoError(t, st.AddWebsite(ctx, b))
	require.NoError(t, st.AddWebsite(ctx, a))

	sites, _ := st.Websites(ctx)
	assert.Equal(t, []model.TrackedWebsite{a, b, a}, sites)
}

func TestMemory_ConcurrentAddsKeepSlugsUnique(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Every pair of goroutines races for the same slug
			_ = st.AddArticle(ctx, article(fmt.Sprintf("Post %d", i/2)))
		}(i)
	}
	wg.Wait()

	list, _ := st.Articles(ctx)
	assert.Len(t, list, 25)
}
