package pipeline

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// stripMarkup returns the visible text of an HTML document with whitespace
// collapsed. Script, style and noscript bodies are dropped.
func stripMarkup(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is kept.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if name, _ := z.TagName(); hiddenTag(name) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			if name, _ := z.TagName(); hiddenTag(name) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func hiddenTag(name []byte) bool {
	switch string(bytes.ToLower(name)) {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}

// readableText extracts the main article of a page. The title is empty and
// the text falls back to fallback when readability finds nothing.
func readableText(doc, pageURL, fallback string) (title, text string) {
	u, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(doc), u)
	if err != nil {
		return "", fallback
	}
	text = stripMarkup(article.Content)
	if text == "" {
		text = fallback
	}
	return strings.TrimSpace(article.Title), text
}
