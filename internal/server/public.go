package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/kumar045/seo-website/internal/export"
	"github.com/kumar045/seo-website/internal/model"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

// pages holds one parsed template set per public page, each joined with the
// shared layout.
type pages struct {
	byName map[string]*template.Template
}

var pageNames = []string{"blog", "post", "landing"}

func loadPages() (*pages, error) {
	funcs := template.FuncMap{
		"markdown": renderMarkdown,
		"date": func(t time.Time) string {
			return t.Format("Jan 02, 2006")
		},
		"add1": func(i int) int { return i + 1 },
	}
	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(assets,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		p.byName[name] = tmpl
	}
	return p, nil
}

// renderMarkdown turns a stored article body into HTML. Bodies come from the
// generation pipeline, not from site visitors.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

type pageData struct {
	Title       string
	Description string
	Site        export.Site
	Articles    []model.Article
	Article     model.Article
	Landing     model.LandingPage
}

func (s *Server) render(w http.ResponseWriter, name string, data pageData) {
	data.Site = s.opts.Site
	if data.Title == "" {
		data.Title = s.opts.Site.Title
	}

	// Render into a buffer so a template failure does not leave half a page
	var buf bytes.Buffer
	if err := s.pages.byName[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("Template error", zap.String("page", name), zap.Error(err))
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// handleHome shows the first published landing page, or the blog when none
// is published.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.LandingPages(r.Context())
	if err != nil {
		s.logger.Error("Failed to list landing pages", zap.Error(err))
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	for _, page := range list {
		if page.Status == model.StatusPublished {
			s.renderLanding(w, page)
			return
		}
	}
	s.handleBlog(w, r)
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.Articles(r.Context())
	if err != nil {
		s.logger.Error("Failed to list articles", zap.Error(err))
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	s.render(w, "blog", pageData{Title: "Blog", Articles: articles})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	article, err := s.store.Article(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		// Unknown posts go back to the front page
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.render(w, "post", pageData{
		Title:       article.Title,
		Description: article.Excerpt,
		Article:     article,
	})
}

func (s *Server) handleLandingPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.store.LandingPage(r.Context(), mux.Vars(r)["slug"])
	if err != nil || page.Status != model.StatusPublished {
		http.NotFound(w, r)
		return
	}
	s.renderLanding(w, page)
}

func (s *Server) renderLanding(w http.ResponseWriter, page model.LandingPage) {
	title := page.SEO.Title
	if title == "" {
		title = page.Title
	}
	description := page.SEO.Description
	if description == "" {
		description = page.Description
	}
	s.render(w, "landing", pageData{Title: title, Description: description, Landing: page})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.Articles(r.Context())
	if err != nil {
		s.logger.Error("Failed to list articles", zap.Error(err))
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	out, err := export.RSS(s.opts.Site, articles)
	if err != nil {
		s.logger.Error("Feed render failed", zap.Error(err))
		http.Error(w, "Feed error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(out)
}
