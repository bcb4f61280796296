// Package export renders stored content for other tools: Hugo-style markdown
// files and an RSS 2.0 feed.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/kumar045/seo-website/internal/model"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts "yaml" or "toml"; empty means yaml.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

type frontMatter struct {
	Title       string    `yaml:"title" toml:"title"`
	Slug        string    `yaml:"slug" toml:"slug"`
	Date        time.Time `yaml:"date" toml:"date"`
	Description string    `yaml:"description,omitempty" toml:"description,omitempty"`
	Tags        []string  `yaml:"tags" toml:"tags"`
	Image       string    `yaml:"image,omitempty" toml:"image,omitempty"`
	ReadingTime int       `yaml:"reading_time" toml:"reading_time"`
}

// Markdown renders article as a Hugo content file: front matter fenced by
// --- (YAML) or +++ (TOML), then the markdown body.
func Markdown(article model.Article, format Format) ([]byte, error) {
	fm := frontMatter{
		Title:       article.Title,
		Slug:        article.Slug,
		Date:        article.PublishDate.UTC(),
		Description: article.Excerpt,
		Tags:        article.Tags,
		Image:       article.HeroImageURL,
		ReadingTime: article.ReadTimeMinutes,
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fm); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case FormatTOML:
		buf.WriteString("+++\n")
		if err := toml.NewEncoder(&buf).Encode(fm); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body := strings.TrimSpace(article.Body); body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Filename is the content file name Hugo expects for article.
func Filename(article model.Article) string {
	return article.Slug + ".md"
}
