package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/kumar045/seo-website/internal/model"
	"github.com/kumar045/seo-website/internal/provider"

	"go.uber.org/zap"
)

// GenerateArticle turns keyword into a blog post.
func (p *Pipeline) GenerateArticle(ctx context.Context, keyword string) (article model.Article, err error) {
	defer func() { record("generate_article", err) }()

	keyword, err = requireKeyword("keyword", keyword)
	if err != nil {
		return model.Article{}, err
	}

	draft := p.text.GenerateArticle(ctx, keyword)
	if strings.TrimSpace(draft.Title) == "" {
		return model.Article{}, &GenerationError{Kind: "article", Reason: "missing title"}
	}
	if strings.TrimSpace(draft.Body) == "" {
		return model.Article{}, &GenerationError{Kind: "article", Reason: "missing body"}
	}

	readTime := draft.ReadTimeMinutes
	if readTime < 1 {
		readTime = model.ReadTime(draft.Body)
	}
	article = model.NewArticle(draft.Title, draft.Excerpt, draft.Body, readTime, draft.Tags, draft.ImageURL, p.now())
	if article.Slug == "" {
		return model.Article{}, &GenerationError{Kind: "article", Reason: fmt.Sprintf("title %q yields an empty slug", draft.Title)}
	}

	p.logger.Info("Article generated",
		zap.String("keyword", keyword),
		zap.String("slug", article.Slug),
		zap.Bool("synthetic", draft.Synthetic))
	return article, nil
}

// GenerateLandingPage turns keyword into a published landing page.
func (p *Pipeline) GenerateLandingPage(ctx context.Context, keyword string) (page model.LandingPage, err error) {
	defer func() { record("generate_landing_page", err) }()

	keyword, err = requireKeyword("keyword", keyword)
	if err != nil {
		return model.LandingPage{}, err
	}
	page, err = p.buildLanding(ctx, keyword)
	if err != nil {
		return model.LandingPage{}, err
	}
	page.Status = model.StatusPublished

	p.logger.Info("Landing page generated", zap.String("keyword", keyword), zap.String("slug", page.Slug))
	return page, nil
}

// RegenerateLandingPage replaces the content of existing with freshly
// generated content for keyword. Slug and status are kept.
func (p *Pipeline) RegenerateLandingPage(ctx context.Context, existing model.LandingPage, keyword string) (page model.LandingPage, err error) {
	defer func() { record("regenerate_landing_page", err) }()

	keyword, err = requireKeyword("keyword", keyword)
	if err != nil {
		return model.LandingPage{}, err
	}
	page, err = p.buildLanding(ctx, keyword)
	if err != nil {
		return model.LandingPage{}, err
	}
	page.Slug = existing.Slug
	page.Status = existing.Status
	if page.Status == "" {
		page.Status = model.StatusPublished
	}

	p.logger.Info("Landing page regenerated", zap.String("keyword", keyword), zap.String("slug", page.Slug))
	return page, nil
}

func (p *Pipeline) buildLanding(ctx context.Context, keyword string) (model.LandingPage, error) {
	draft := p.text.GenerateLanding(ctx, keyword)

	if !draft.Valid() {
		if !draft.Synthetic {
			reason := "missing section content"
			if strings.TrimSpace(draft.Title) == "" {
				reason = "missing title"
			}
			return model.LandingPage{}, &GenerationError{Kind: "landing page", Reason: reason}
		}
		p.logger.Warn("Synthetic landing draft incomplete, building fallback page", zap.String("keyword", keyword))
		return p.fallbackLanding(keyword), nil
	}

	page := model.LandingPage{
		Slug:        model.Slugify(draft.Title),
		Keyword:     keyword,
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Sections:    draft.Sections,
		SEO:         draft.SEO,
		LastUpdated: p.now(),
	}
	page.SEO.Keywords = model.UniqueStrings(page.SEO.Keywords)
	if page.Slug == "" {
		page.Slug = model.Slugify(keyword)
	}
	if page.Slug == "" {
		return model.LandingPage{}, &GenerationError{Kind: "landing page", Reason: "title and keyword yield an empty slug"}
	}
	return page, nil
}

func (p *Pipeline) fallbackLanding(keyword string) model.LandingPage {
	slug := model.Slugify(keyword)
	if slug == "" {
		slug = "landing-page"
	}
	return model.LandingPage{
		Slug:        slug,
		Keyword:     keyword,
		Title:       keyword + " Solutions",
		Description: fmt.Sprintf("Professional %s services and solutions", keyword),
		Sections:    provider.SyntheticSections(keyword),
		SEO: model.SEO{
			Title:       keyword + " - Professional Solutions & Services",
			Description: fmt.Sprintf("Professional %s services and solutions for modern businesses. Get started today!", keyword),
			Keywords:    model.UniqueStrings([]string{keyword, "professional", "services", "solutions"}),
		},
		LastUpdated: p.now(),
	}
}
