package export

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kumar045/seo-website/internal/model"

	"github.com/yuin/goldmark"
)

// Site describes the feed channel.
type Site struct {
	Title       string
	Link        string
	Description string
}

// RSS renders articles, newest first as stored, as an RSS 2.0 document.
// Item bodies are rendered from markdown into content:encoded.
func RSS(site Site, articles []model.Article) ([]byte, error) {
	var buf bytes.Buffer
	link := strings.TrimRight(site.Link, "/")

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", site.Title, 4)
	writeElement(&buf, "link", cmp.Or(link, "/"), 4)
	writeElement(&buf, "description", cmp.Or(site.Description, "Latest posts from "+site.Title), 4)
	if link != "" {
		fmt.Fprintf(&buf, "    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(link+"/blog/feed.xml"))
	}

	lastBuild := time.Now()
	if len(articles) > 0 {
		lastBuild = articles[0].PublishDate
	}
	writeElement(&buf, "lastBuildDate", lastBuild.Format(time.RFC1123Z), 4)

	for _, a := range articles {
		if err := writeItem(&buf, link, a); err != nil {
			return nil, err
		}
	}

	buf.WriteString("  </channel>\n</rss>\n")
	return buf.Bytes(), nil
}

func writeItem(buf *bytes.Buffer, link string, a model.Article) error {
	postURL := link + "/post/" + a.Slug

	buf.WriteString("    <item>\n")
	fmt.Fprintf(buf, "      <guid isPermaLink=\"%t\">", link != "")
	xml.EscapeText(buf, []byte(postURL))
	buf.WriteString("</guid>\n")
	writeElement(buf, "title", a.Title, 6)
	writeElement(buf, "link", postURL, 6)
	writeElement(buf, "description", cmp.Or(a.Excerpt, "No description available"), 6)

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(a.Body), &body); err != nil {
		return fmt.Errorf("render %s: %w", a.Slug, err)
	}
	if body.Len() > 0 {
		buf.WriteString("      <content:encoded><![CDATA[")
		// A literal ]]> would end the section early
		buf.WriteString(strings.ReplaceAll(body.String(), "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]></content:encoded>\n")
	}

	writeElement(buf, "pubDate", a.PublishDate.Format(time.RFC1123Z), 6)
	for _, tag := range a.Tags {
		writeElement(buf, "category", tag, 6)
	}
	buf.WriteString("    </item>\n")
	return nil
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}
	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
