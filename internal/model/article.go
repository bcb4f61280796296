package model

import (
	"strings"
	"time"
)

// DefaultHeroImage is used when a draft does not carry its own image.
const DefaultHeroImage = "https://images.unsplash.com/photo-1677442136019-21780ecad995"

// Article is a generated blog post.
type Article struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Excerpt         string    `json:"excerpt"`
	Body            string    `json:"body"`
	ReadTimeMinutes int       `json:"read_time_minutes"`
	PublishDate     time.Time `json:"publish_date"`
	Tags            []string  `json:"tags"`
	HeroImageURL    string    `json:"hero_image_url"`
}

// NewArticle builds an Article from its generated parts. The slug is derived
// from the title and tags are de-duplicated.
func NewArticle(title, excerpt, body string, readTime int, tags []string, image string, published time.Time) Article {
	if image == "" {
		image = DefaultHeroImage
	}
	return Article{
		Slug:            Slugify(title),
		Title:           strings.TrimSpace(title),
		Excerpt:         strings.TrimSpace(excerpt),
		Body:            body,
		ReadTimeMinutes: readTime,
		PublishDate:     published,
		Tags:            UniqueStrings(tags),
		HeroImageURL:    image,
	}
}

// ReadTime reports how long a body takes to read at 200 words per minute,
// never less than one minute.
func ReadTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + 199) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}

// UniqueStrings trims values, drops empties and removes case-insensitive
// duplicates, keeping the first spelling.
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
