// Package server exposes the admin JSON API and the public site over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"time"

	"github.com/kumar045/seo-website/internal/export"
	"github.com/kumar045/seo-website/internal/jobs"
	"github.com/kumar045/seo-website/internal/model"
	"github.com/kumar045/seo-website/internal/store"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Pipeline is the content pipeline as seen by the HTTP layer.
type Pipeline interface {
	GenerateArticle(ctx context.Context, keyword string) (model.Article, error)
	GenerateLandingPage(ctx context.Context, keyword string) (model.LandingPage, error)
	RegenerateLandingPage(ctx context.Context, existing model.LandingPage, keyword string) (model.LandingPage, error)
	AnalyzeCompetitor(ctx context.Context, rawURL string) (model.CompetitorMetrics, error)
	AnalyzeKeyword(ctx context.Context, term string, surface model.TargetSurface) (model.TrackedKeyword, error)
}

// Options configures the listener and the public site identity.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Site         export.Site
}

type Server struct {
	store    store.Store
	pipeline Pipeline
	queue    jobs.Queue
	logger   *zap.Logger
	opts     Options
	router   *mux.Router
	pages    *pages
	server   *http.Server
}

// NewServer wires routes. queue may be nil, which disables the jobs API.
func NewServer(st store.Store, pl Pipeline, queue jobs.Queue, opts Options, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pg, err := loadPages()
	if err != nil {
		return nil, err
	}
	s := &Server{
		store:    st,
		pipeline: pl,
		queue:    queue,
		logger:   logger,
		opts:     opts,
		router:   mux.NewRouter(),
		pages:    pg,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	// Static files (CSS)
	s.router.PathPrefix("/static/").Handler(http.FileServer(http.FS(assets)))

	// Operational
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Admin API
	api := s.router.PathPrefix("/admin/api").Subrouter()
	api.Use(s.logRequests)
	api.HandleFunc("/posts", s.handleListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", s.handleCreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{slug}", s.handleGetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{slug}", s.handleDeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{slug}/export", s.handleExportPost).Methods(http.MethodGet)

	api.HandleFunc("/landing-pages", s.handleListLandingPages).Methods(http.MethodGet)
	api.HandleFunc("/landing-pages", s.handleCreateLandingPage).Methods(http.MethodPost)
	api.HandleFunc("/landing-pages/{slug}", s.handleGetLandingPage).Methods(http.MethodGet)
	api.HandleFunc("/landing-pages/{slug}/regenerate", s.handleRegenerateLandingPage).Methods(http.MethodPost)
	api.HandleFunc("/landing-pages/{slug}/status", s.handleSetLandingPageStatus).Methods(http.MethodPut)

	api.HandleFunc("/websites", s.handleListWebsites).Methods(http.MethodGet)
	api.HandleFunc("/websites", s.handleAddWebsite).Methods(http.MethodPost)
	api.HandleFunc("/websites/analyze", s.handleAnalyzeWebsite).Methods(http.MethodPost)

	api.HandleFunc("/keywords", s.handleListKeywords).Methods(http.MethodGet)
	api.HandleFunc("/keywords", s.handleTrackKeyword).Methods(http.MethodPost)
	api.HandleFunc("/keywords/generate", s.handleGenerateForKeyword).Methods(http.MethodPost)

	api.HandleFunc("/jobs", s.handleListJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs", s.handleEnqueueJob).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}", s.handleGetJob).Methods(http.MethodGet)

	// Public site
	s.router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	s.router.HandleFunc("/blog", s.handleBlog).Methods(http.MethodGet)
	s.router.HandleFunc("/blog/feed.xml", s.handleFeed).Methods(http.MethodGet)
	s.router.HandleFunc("/post/{slug}", s.handlePost).Methods(http.MethodGet)
	s.router.HandleFunc("/lp/{slug}", s.handleLandingPage).Methods(http.MethodGet)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start launches the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  orDefault(s.opts.ReadTimeout, 15*time.Second),
		WriteTimeout: orDefault(s.opts.WriteTimeout, 90*time.Second),
	}

	s.logger.Info("Web server listening", zap.String("addr", s.opts.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("Admin request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
