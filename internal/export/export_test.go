package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kumar045/seo-website/internal/model"

	"github.com/mmcdole/gofeed"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var published = time.Date(2025, 2, 3, 10, 30, 0, 0, time.UTC)

func sampleArticle() model.Article {
	return model.NewArticle(
		"Complete Guide to SEO",
		"Everything you need to rank.",
		"# Complete Guide to SEO\n\nEverything you need to rank.\n\n## Basics\n\n- Keywords\n- Links",
		3,
		[]string{"Guide", "SEO"},
		"",
		published,
	)
}

// splitFrontMatter returns the text between the first two fences and the rest.
func splitFrontMatter(t *testing.T, out []byte, fence string) (string, string) {
	t.Helper()
	parts := strings.SplitN(string(out), fence+"\n", 3)
	require.Len(t, parts, 3)
	assert.Empty(t, parts[0])
	return parts[1], parts[2]
}

func TestMarkdown_YAML(t *testing.T) {
	out, err := Markdown(sampleArticle(), FormatYAML)
	require.NoError(t, err)

	fmText, body := splitFrontMatter(t, out, "---")
	var fm frontMatter
	require.NoError(t, yaml.Unmarshal([]byte(fmText), &fm))

	assert.Equal(t, "Complete Guide to SEO", fm.Title)
	assert.Equal(t, "complete-guide-to-seo", fm.Slug)
	assert.True(t, published.Equal(fm.Date))
	assert.Equal(t, []string{"Guide", "SEO"}, fm.Tags)
	assert.Equal(t, 3, fm.ReadingTime)
	assert.Equal(t, model.DefaultHeroImage, fm.Image)
	assert.True(t, strings.HasPrefix(body, "\n# Complete Guide to SEO"))
}

func TestMarkdown_TOML(t *testing.T) {
	out, err := Markdown(sampleArticle(), FormatTOML)
	require.NoError(t, err)

	fmText, _ := splitFrontMatter(t, out, "+++")
	var fm frontMatter
	require.NoError(t, toml.Unmarshal([]byte(fmText), &fm))
	assert.Equal(t, "Everything you need to rank.", fm.Description)
	assert.True(t, published.Equal(fm.Date))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	_, err = ParseFormat("json")
	assert.Error(t, err)
}

func TestRSS_ParsesWithGofeed(t *testing.T) {
	second := sampleArticle()
	second.Slug = "ads-and-you"
	second.Title = "Ads & You"
	second.Body = "Contains ]]> inside"
	second.PublishDate = published.Add(24 * time.Hour)

	out, err := RSS(Site{Title: "SEO Website", Link: "https://seo.example/"}, []model.Article{second, sampleArticle()})
	require.NoError(t, err)

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "SEO Website", feed.Title)
	assert.Equal(t, "rss", feed.FeedType)
	require.Len(t, feed.Items, 2)

	assert.Equal(t, "Ads & You", feed.Items[0].Title)
	assert.Equal(t, "https://seo.example/post/ads-and-you", feed.Items[0].Link)
	assert.Contains(t, feed.Items[0].Content, "Contains ]]&gt; inside")

	item := feed.Items[1]
	assert.Equal(t, "Everything you need to rank.", item.Description)
	assert.Contains(t, item.Content, "<h2>Basics</h2>")
	assert.Equal(t, []string{"Guide", "SEO"}, item.Categories)
	require.NotNil(t, item.PublishedParsed)
	assert.True(t, published.Equal(*item.PublishedParsed))
}

func TestRSS_Empty(t *testing.T) {
	out, err := RSS(Site{Title: "Empty"}, nil)
	require.NoError(t, err)

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
}
