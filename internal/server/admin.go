package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kumar045/seo-website/internal/export"
	"github.com/kumar045/seo-website/internal/jobs"
	"github.com/kumar045/seo-website/internal/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type keywordRequest struct {
	Keyword string `json:"keyword"`
}

type termRequest struct {
	Term    string `json:"term"`
	Surface string `json:"surface"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type websiteRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}

type websiteResponse struct {
	Website model.TrackedWebsite    `json:"website"`
	Metrics model.CompetitorMetrics `json:"metrics"`
}

// Posts

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.Articles(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req keywordRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	article, err := s.pipeline.GenerateArticle(r.Context(), req.Keyword)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.AddArticle(r.Context(), article); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	article, err := s.store.Article(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if err := s.store.RemoveArticle(r.Context(), slug); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("Post deleted", zap.String("slug", slug))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportPost(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, badRequestf("%v", err))
		return
	}
	article, err := s.store.Article(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := export.Markdown(article, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(article)+`"`)
	w.Write(out)
}

// Landing pages

func (s *Server) handleListLandingPages(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.LandingPages(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateLandingPage(w http.ResponseWriter, r *http.Request) {
	var req keywordRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	page, err := s.pipeline.GenerateLandingPage(r.Context(), req.Keyword)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.AddLandingPage(r.Context(), page); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (s *Server) handleGetLandingPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.store.LandingPage(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleRegenerateLandingPage refreshes a page's content. The body is
// optional; without a keyword the page's source keyword is reused, falling
// back to its title for pages stored before keywords were recorded.
func (s *Server) handleRegenerateLandingPage(w http.ResponseWriter, r *http.Request) {
	existing, err := s.store.LandingPage(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req keywordRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		keyword = existing.Keyword
	}
	if keyword == "" {
		keyword = existing.Title
	}

	page, err := s.pipeline.RegenerateLandingPage(r.Context(), existing, keyword)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stored, err := s.store.UpdateLandingPage(r.Context(), page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleSetLandingPageStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		s.writeError(w, r, badRequestf("%v", err))
		return
	}
	slug := mux.Vars(r)["slug"]
	if err := s.store.SetLandingPageStatus(r.Context(), slug, status); err != nil {
		s.writeError(w, r, err)
		return
	}
	page, err := s.store.LandingPage(r.Context(), slug)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Websites

func (s *Server) handleListWebsites(w http.ResponseWriter, r *http.Request) {
	sites, err := s.store.Websites(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

// handleAddWebsite analyzes the site first, so a malformed URL is rejected
// before anything is stored.
func (s *Server) handleAddWebsite(w http.ResponseWriter, r *http.Request) {
	var req websiteRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		s.writeError(w, r, badRequestf("%v", err))
		return
	}
	metrics, err := s.pipeline.AnalyzeCompetitor(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	site := model.TrackedWebsite{URL: metrics.URL, Category: category}
	if err := s.store.AddWebsite(r.Context(), site); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, websiteResponse{Website: site, Metrics: metrics})
}

func (s *Server) handleAnalyzeWebsite(w http.ResponseWriter, r *http.Request) {
	var req websiteRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics, err := s.pipeline.AnalyzeCompetitor(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// Keywords

func (s *Server) handleListKeywords(w http.ResponseWriter, r *http.Request) {
	surface, err := model.ParseSurface(r.URL.Query().Get("surface"))
	if err != nil {
		s.writeError(w, r, badRequestf("%v", err))
		return
	}
	list, err := s.store.Keywords(r.Context(), surface)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleTrackKeyword(w http.ResponseWriter, r *http.Request) {
	var req termRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	surface, err := model.ParseSurface(req.Surface)
	if err != nil {
		s.writeError(w, r, badRequestf("%v", err))
		return
	}
	kw, err := s.pipeline.AnalyzeKeyword(r.Context(), req.Term, surface)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.AddKeyword(r.Context(), kw); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, kw)
}

// handleGenerateForKeyword generates a post or landing page for a tracked
// keyword, depending on the keyword's surface.
func (s *Server) handleGenerateForKeyword(w http.ResponseWriter, r *http.Request) {
	var req termRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	surface, err := model.ParseSurface(req.Surface)
	if err != nil {
		s.writeError(w, r, badRequestf("%v", err))
		return
	}
	term := strings.TrimSpace(req.Term)
	if term == "" {
		s.writeError(w, r, badRequestf("term must not be empty"))
		return
	}

	tracked, err := s.store.Keywords(r.Context(), surface)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !isTracked(tracked, term) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "keyword is not tracked for this surface"})
		return
	}

	switch surface {
	case model.SurfaceLanding:
		page, err := s.pipeline.GenerateLandingPage(r.Context(), term)
		if err == nil {
			err = s.store.AddLandingPage(r.Context(), page)
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, page)
	default:
		article, err := s.pipeline.GenerateArticle(r.Context(), term)
		if err == nil {
			err = s.store.AddArticle(r.Context(), article)
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, article)
	}
}

func isTracked(list []model.TrackedKeyword, term string) bool {
	for _, kw := range list {
		if strings.EqualFold(kw.Term, term) {
			return true
		}
	}
	return false
}

// Jobs

func (s *Server) handleEnqueueJob(w http.ResponseWriter, r *http.Request) {
	if s.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "job queue is not enabled"})
		return
	}
	var req termRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	term := strings.TrimSpace(req.Term)
	if term == "" {
		s.writeError(w, r, badRequestf("term must not be empty"))
		return
	}
	surface, err := model.ParseSurface(req.Surface)
	if err != nil {
		s.writeError(w, r, badRequestf("%v", err))
		return
	}

	job := jobs.NewJob(term, surface)
	if err := s.queue.Enqueue(r.Context(), &job); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("Job queued", zap.String("id", job.ID.String()), zap.String("keyword", term))
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if s.queue == nil {
		writeJSON(w, http.StatusOK, []jobs.Job{})
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, r, badRequestf("limit must be a positive integer"))
			return
		}
		limit = n
	}
	list, err := s.queue.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	if s.queue == nil {
		s.writeError(w, r, jobs.ErrNotFound)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, badRequestf("invalid job id"))
		return
	}
	job, err := s.queue.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
