package model

import (
	"fmt"
	"strings"
	"time"
)

// PageStatus is the publishing state of a landing page.
type PageStatus string

const (
	StatusDraft     PageStatus = "draft"
	StatusPublished PageStatus = "published"
)

// ParseStatus accepts "draft" or "published".
func ParseStatus(s string) (PageStatus, error) {
	switch PageStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusPublished:
		return StatusPublished, nil
	}
	return "", fmt.Errorf("unknown page status %q", s)
}

// Hero is the banner at the top of a landing page.
type Hero struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	CTA        string `json:"cta"`
}

// Item is a titled block used for features and benefits.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a customer quote shown on a landing page.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

// CallToAction closes a landing page.
type CallToAction struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	ButtonText string `json:"buttonText"`
}

// Sections holds the body of a landing page in render order.
type Sections struct {
	Hero         Hero          `json:"hero"`
	Features     []Item        `json:"features"`
	Benefits     []Item        `json:"benefits"`
	Testimonials []Testimonial `json:"testimonials"`
	CallToAction CallToAction  `json:"cta"`
}

// Complete reports whether the sections carry enough content to render.
func (s Sections) Complete() bool {
	return strings.TrimSpace(s.Hero.Heading) != "" && len(s.Features) > 0
}

// SEO holds the page title and meta tags used by the public site.
type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// LandingPage is a generated marketing page. Keyword is the term the
// content was generated from and is reused when the page is regenerated.
type LandingPage struct {
	Slug        string     `json:"slug"`
	Keyword     string     `json:"keyword,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Sections    Sections   `json:"sections"`
	SEO         SEO        `json:"seo"`
	LastUpdated time.Time  `json:"last_updated"`
	Status      PageStatus `json:"status"`
}
