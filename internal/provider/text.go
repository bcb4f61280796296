package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kumar045/seo-website/internal/metrics"
	"github.com/kumar045/seo-website/internal/model"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"go.uber.org/zap"
)

const keywordSampleRunes = 1000

const articlePrompt = `Write a detailed blog post about %q. Include:
1. A clear title as a level-one markdown heading on the first line
2. A brief excerpt paragraph
3. Well-structured markdown content with sections
4. Relevant tags

Keep the content informative and engaging.`

const landingPrompt = `Create a landing page for %q. Return only a JSON object with the following structure:
{
  "title": "Main page title",
  "description": "Brief page description",
  "content": {
    "hero": {"heading": "Main headline", "subheading": "Supporting text", "cta": "Call to action button text"},
    "features": [{"title": "Feature name", "description": "Feature description"}],
    "benefits": [{"title": "Benefit name", "description": "Benefit description"}],
    "testimonials": [{"quote": "Customer testimonial", "author": "Customer name", "role": "Customer position"}],
    "cta": {"heading": "Final call to action", "subheading": "Supporting text", "buttonText": "Button text"}
  },
  "seo": {"title": "SEO title", "description": "Meta description", "keywords": ["keyword1", "keyword2"]}
}`

const keywordPrompt = `Extract the top 3 most important keywords or key phrases from the following content. Return them as a comma-separated list:

%s`

// TextClient is the generative-text capability. A nil completer means the
// provider is not configured and every call returns a synthetic payload.
type TextClient struct {
	completer Completer
	logger    *zap.Logger
	now       func() time.Time
}

// NewTextClient wraps completer, which may be nil.
func NewTextClient(completer Completer, logger *zap.Logger) *TextClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextClient{
		completer: completer,
		logger:    logger.With(zap.String("capability", CapabilityText)),
		now:       time.Now,
	}
}

// Configured reports whether a live provider is available.
func (t *TextClient) Configured() bool {
	return t.completer != nil
}

// GenerateArticle returns a blog post draft for keyword. It never fails.
func (t *TextClient) GenerateArticle(ctx context.Context, keyword string) ArticleDraft {
	start := time.Now()
	if t.completer == nil {
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return SyntheticArticle(keyword, t.now())
	}

	reply, err := t.completer.Complete(ctx, fmt.Sprintf(articlePrompt, keyword))
	if err != nil {
		t.logger.Warn("Article generation failed, using fallback", zap.String("keyword", keyword), zap.Error(err))
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return SyntheticArticle(keyword, t.now())
	}

	draft, ok := ParseArticleMarkdown(keyword, reply)
	if !ok {
		t.logger.Warn("Article reply unusable, using fallback", zap.String("keyword", keyword), zap.String("reply", snippet(reply)))
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return SyntheticArticle(keyword, t.now())
	}
	metrics.ObserveProvider(CapabilityText, metrics.OutcomeLive, start)
	return draft
}

// GenerateLanding returns a landing page draft for keyword. It never fails.
func (t *TextClient) GenerateLanding(ctx context.Context, keyword string) LandingDraft {
	start := time.Now()
	if t.completer == nil {
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return SyntheticLanding(keyword)
	}

	reply, err := t.completer.Complete(ctx, fmt.Sprintf(landingPrompt, keyword))
	if err != nil {
		t.logger.Warn("Landing page generation failed, using fallback", zap.String("keyword", keyword), zap.Error(err))
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return SyntheticLanding(keyword)
	}

	var draft LandingDraft
	if err := DecodeJSON(reply, &draft); err != nil {
		t.logger.Warn("Failed to parse landing page content, using fallback", zap.String("keyword", keyword), zap.Error(err))
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return SyntheticLanding(keyword)
	}
	draft = normalizeLanding(draft)
	if !draft.Valid() {
		t.logger.Warn("Invalid landing page structure, using fallback", zap.String("keyword", keyword))
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return SyntheticLanding(keyword)
	}
	metrics.ObserveProvider(CapabilityText, metrics.OutcomeLive, start)
	return draft
}

// ExtractKeywords returns up to three key phrases found in content.
func (t *TextClient) ExtractKeywords(ctx context.Context, content string) []string {
	start := time.Now()
	fallback := append([]string(nil), FallbackKeywords...)
	if t.completer == nil {
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return fallback
	}

	sample := []rune(content)
	if len(sample) > keywordSampleRunes {
		sample = sample[:keywordSampleRunes]
	}
	reply, err := t.completer.Complete(ctx, fmt.Sprintf(keywordPrompt, string(sample)))
	if err != nil {
		t.logger.Warn("Keyword extraction failed, using fallback", zap.Error(err))
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return fallback
	}

	keywords := splitKeywords(reply)
	if len(keywords) == 0 {
		metrics.ObserveProvider(CapabilityText, metrics.OutcomeFallback, start)
		return fallback
	}
	metrics.ObserveProvider(CapabilityText, metrics.OutcomeLive, start)
	return keywords
}

func splitKeywords(reply string) []string {
	parts := strings.Split(reply, ",")
	out := make([]string, 0, 3)
	for _, p := range parts {
		p = strings.Trim(p, " \t\r\n\"'`*.")
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func normalizeLanding(d LandingDraft) LandingDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	if d.SEO.Title == "" {
		d.SEO.Title = d.Title
	}
	if d.SEO.Description == "" {
		d.SEO.Description = d.Description
	}
	d.SEO.Keywords = model.UniqueStrings(d.SEO.Keywords)
	return d
}

var inlineMarkers = strings.NewReplacer("**", "", "__", "", "*", "", "`", "")

// ParseArticleMarkdown derives an article draft from model-written markdown.
// The title comes from the first block (a heading, or the first line of a
// paragraph) and the excerpt from the first paragraph after it.
func ParseArticleMarkdown(keyword, text string) (ArticleDraft, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ArticleDraft{}, false
	}
	src := []byte(text)
	doc := goldmark.DefaultParser().Parse(gmtext.NewReader(src))

	var title, excerpt string
	first := doc.FirstChild()
	if first == nil {
		return ArticleDraft{}, false
	}
	switch first.Kind() {
	case ast.KindHeading, ast.KindParagraph:
		title = blockText(first, src, true)
	default:
		line, _, _ := strings.Cut(text, "\n")
		title = strings.TrimSpace(strings.TrimLeft(line, "# "))
	}
	for n := first.NextSibling(); n != nil; n = n.NextSibling() {
		if n.Kind() == ast.KindParagraph {
			excerpt = blockText(n, src, false)
			break
		}
	}

	title = strings.TrimSpace(inlineMarkers.Replace(title))
	if title == "" {
		return ArticleDraft{}, false
	}
	if excerpt == "" {
		excerpt = "A comprehensive guide about " + keyword
	}

	return ArticleDraft{
		Title:           title,
		Excerpt:         strings.TrimSpace(inlineMarkers.Replace(excerpt)),
		Body:            text,
		ReadTimeMinutes: model.ReadTime(text),
		Tags:            []string{"Guide", "Strategy", keyword},
		ImageURL:        model.DefaultHeroImage,
	}, true
}

func blockText(n ast.Node, src []byte, firstLineOnly bool) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimSpace(string(seg.Value(src)))
		if line == "" {
			continue
		}
		parts = append(parts, line)
		if firstLineOnly {
			break
		}
	}
	return strings.Join(parts, " ")
}
