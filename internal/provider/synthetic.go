package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/kumar045/seo-website/internal/model"
)

// FallbackKeywords is returned when keyword extraction is unavailable.
var FallbackKeywords = []string{"content marketing", "digital strategy", "online presence"}

// SyntheticArticle builds a blog post draft from the keyword and date alone.
func SyntheticArticle(keyword string, now time.Time) ArticleDraft {
	body := fmt.Sprintf(`# Complete Guide to %[1]s

A comprehensive guide about %[1]s and its applications...

## Key Benefits

1. Improved efficiency
2. Cost savings
3. Better results

## Best Practices

- Start with a clear strategy
- Measure and optimize
- Stay updated with trends`, keyword)

	return ArticleDraft{
		Title:           fmt.Sprintf("Complete Guide to %s (%d)", keyword, now.Year()),
		Excerpt:         fmt.Sprintf("A comprehensive guide about %s and its applications in modern business.", keyword),
		Body:            body,
		ReadTimeMinutes: 5,
		Tags:            []string{"Guide", "Strategy", keyword},
		ImageURL:        model.DefaultHeroImage,
		Synthetic:       true,
	}
}

// SyntheticLanding builds a landing page draft from the keyword alone.
func SyntheticLanding(keyword string) LandingDraft {
	return LandingDraft{
		Title:       keyword + " - Professional Solutions",
		Description: fmt.Sprintf("Professional %s services tailored to your needs", keyword),
		Sections:    SyntheticSections(keyword),
		SEO: model.SEO{
			Title:       keyword + " - Professional Solutions & Services",
			Description: fmt.Sprintf("Professional %s services and solutions for modern businesses. Get started today!", keyword),
			Keywords:    model.UniqueStrings([]string{keyword, "professional", "services", "solutions"}),
		},
		Synthetic: true,
	}
}

// SyntheticSections is the section body shared by every synthetic landing page.
func SyntheticSections(keyword string) model.Sections {
	return model.Sections{
		Hero: model.Hero{
			Heading:    "Transform Your Business with " + keyword,
			Subheading: "Professional solutions for modern businesses",
			CTA:        "Get Started Today",
		},
		Features: []model.Item{
			{Title: "Professional Expertise", Description: fmt.Sprintf("Expert %s solutions for your business", keyword)},
			{Title: "Proven Results", Description: "Track record of successful implementations"},
			{Title: "24/7 Support", Description: "Round-the-clock assistance when you need it"},
		},
		Benefits: []model.Item{
			{Title: "Increased Efficiency", Description: "Streamline your operations and save time"},
			{Title: "Cost Effective", Description: "Maximize ROI with our solutions"},
		},
		Testimonials: []model.Testimonial{
			{Quote: fmt.Sprintf("The %s solution exceeded our expectations", keyword), Author: "John Smith", Role: "CEO, Tech Corp"},
		},
		CallToAction: model.CallToAction{
			Heading:    "Ready to Get Started?",
			Subheading: "Transform your business today",
			ButtonText: "Contact Us Now",
		},
	}
}

// SyntheticResults returns the two placeholder search results for keyword.
func SyntheticResults(keyword string, now time.Time) []model.SearchResult {
	path := strings.Join(strings.Fields(strings.ToLower(keyword)), "-")
	return []model.SearchResult{
		{
			Title:       fmt.Sprintf("%s: Complete Guide (%d)", keyword, now.Year()),
			URL:         "https://example.com/guide/" + path,
			Description: fmt.Sprintf("Comprehensive guide about %s with expert insights and best practices.", keyword),
			Rank:        1,
		},
		{
			Title:       keyword + " Best Practices & Tips",
			URL:         "https://example.com/tips/" + path,
			Description: fmt.Sprintf("Learn the best practices and professional tips for %s.", keyword),
			Rank:        2,
		},
	}
}
