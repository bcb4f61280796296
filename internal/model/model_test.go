package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Complete Guide to SEO!":             "complete-guide-to-seo",
		"  Hello   World  ":                  "hello-world",
		"snake_case__title":                  "snake-case-title",
		"Already-slugged--Title":             "already-slugged-title",
		"Complete Guide to seo tools (2026)": "complete-guide-to-seo-tools-2026",
		"Café Marketing":                     "cafe-marketing",
		"!!!":                                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	assert.Equal(t, Slugify("Growth Hacking 101"), Slugify("Growth Hacking 101"))
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 1, ReadTime(""))
	assert.Equal(t, 1, ReadTime("one two three"))

	words := make([]byte, 0, 401*2)
	for i := 0; i < 401; i++ {
		words = append(words, 'w', ' ')
	}
	assert.Equal(t, 3, ReadTime(string(words)))
}

func TestNewArticle(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	a := NewArticle(" Complete Guide to SEO! ", "excerpt", "# body", 4, []string{"Guide", "guide", " SEO ", ""}, "", now)

	assert.Equal(t, "complete-guide-to-seo", a.Slug)
	assert.Equal(t, "Complete Guide to SEO!", a.Title)
	assert.Equal(t, []string{"Guide", "SEO"}, a.Tags)
	assert.Equal(t, DefaultHeroImage, a.HeroImageURL)
	assert.Equal(t, now, a.PublishDate)
}

func TestParseSurface(t *testing.T) {
	s, err := ParseSurface("Landing")
	require.NoError(t, err)
	assert.Equal(t, SurfaceLanding, s)

	s, err = ParseSurface("")
	require.NoError(t, err)
	assert.Equal(t, SurfaceBlog, s)

	_, err = ParseSurface("newsletter")
	assert.Error(t, err)
}

func TestTargetSurface_JSON(t *testing.T) {
	kw := TrackedKeyword{Term: "seo", Surface: SurfaceLanding}
	data, err := json.Marshal(kw)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"surface":"landing"`)

	var back TrackedKeyword
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, SurfaceLanding, back.Surface)

	assert.Error(t, json.Unmarshal([]byte(`{"surface":"popup"}`), &back))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-5))
	assert.Equal(t, 55, ClampScore(55))
	assert.Equal(t, 100, ClampScore(140))
}

func TestSectionsComplete(t *testing.T) {
	assert.False(t, Sections{}.Complete())
	assert.False(t, Sections{Hero: Hero{Heading: "Hi"}}.Complete())
	assert.True(t, Sections{Hero: Hero{Heading: "Hi"}, Features: []Item{{Title: "f"}}}.Complete())
}

func TestParseStatusAndCategory(t *testing.T) {
	st, err := ParseStatus("DRAFT")
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, st)
	_, err = ParseStatus("archived")
	assert.Error(t, err)

	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryCompetitor, c)
	_, err = ParseCategory("partner")
	assert.Error(t, err)
}
