package http

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	cacheDomain "github.com/reshetovitsme/bump-notifier/internal/modules/cache/domain"
	historyDomain "github.com/reshetovitsme/bump-notifier/internal/modules/history/domain"
	"github.com/reshetovitsme/bump-notifier/internal/scheduler"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	sloghttp "github.com/samber/slog-http"
)

const statusHistoryLimit = 5

// History is the announcement log served as feeds and in /status
type History interface {
	GenerateFeed(baseURL string) (*feeds.Feed, error)
	Recent(limit int) ([]*historyDomain.Announcement, error)
}

type CacheReader interface {
	Path() string
	Load() (*cacheDomain.Cache, error)
}

type RunStatus interface {
	LastRun() (scheduler.Status, bool)
}

// Server exposes health, run status and the announcement history feed
type Server struct {
	cfg     *config.Config
	history History
	cache   CacheReader
	status  RunStatus
	logger  *slog.Logger
	server  *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, history History, cache CacheReader, status RunStatus) *Server {
	return &Server{
		cfg:     cfg,
		history: history,
		cache:   cache,
		status:  status,
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler returns the routed handler wrapped with request logging and recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /rss", s.handleRSS)
	mux.HandleFunc("GET /atom", s.handleAtom)

	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	return handler
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("HTTP server starting", "addr", addr)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

type statusResponse struct {
	CachePath     string                        `json:"cache_path"`
	CachedISODate string                        `json:"cached_iso_date,omitempty"`
	CacheError    string                        `json:"cache_error,omitempty"`
	LastRun       *scheduler.Status             `json:"last_run,omitempty"`
	Recent        []*historyDomain.Announcement `json:"recent"`
	HistoryError  string                        `json:"history_error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		CachePath: s.cache.Path(),
		Recent:    []*historyDomain.Announcement{},
	}

	cache, err := s.cache.Load()
	switch {
	case err == nil:
		resp.CachedISODate = cache.ISODate
	case stderrors.Is(err, errors.ErrCacheNotFound):
		resp.CacheError = errors.ErrCacheNotFound.Error()
	default:
		s.logger.Error("Error reading cache", "error", err)
		resp.CacheError = errors.ErrCacheRead.Error()
	}

	if status, ok := s.status.LastRun(); ok {
		resp.LastRun = &status
	}

	recent, err := s.history.Recent(statusHistoryLimit)
	if err != nil {
		s.logger.Error("Error reading history", "error", err)
		resp.HistoryError = "failed to read announcement history"
	} else if len(recent) > 0 {
		resp.Recent = recent
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Error encoding status", "error", err)
	}
}

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	s.writeFeed(w, r, "application/rss+xml; charset=utf-8", (*feeds.Feed).ToRss)
}

func (s *Server) handleAtom(w http.ResponseWriter, r *http.Request) {
	s.writeFeed(w, r, "application/atom+xml; charset=utf-8", (*feeds.Feed).ToAtom)
}

func (s *Server) writeFeed(w http.ResponseWriter, r *http.Request, contentType string, render func(*feeds.Feed) (string, error)) {
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	feed, err := s.history.GenerateFeed(baseURL)
	if err != nil {
		s.logger.Error("Error generating feed", "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	body, err := render(feed)
	if err != nil {
		s.logger.Error("Error rendering feed", "error", err)
		http.Error(w, "Failed to render feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
