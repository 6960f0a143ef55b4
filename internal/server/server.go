package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/user/content-system/internal/config"
	"github.com/user/content-system/internal/content"
	"github.com/user/content-system/internal/ingest"
	"golang.org/x/time/rate"
)

// Pinger reports database reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ingester persists one CSV upload
type Ingester interface {
	Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error)
}

// Lister answers listing requests
type Lister interface {
	List(ctx context.Context, p content.Params) (*content.ListResponse, error)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// Server handles the content API, health checks and metrics
type Server struct {
	db        Pinger
	ingester  Ingester
	lister    Lister
	cfg       *config.Config
	router    chi.Router
	server    *http.Server
	uploads   *rate.Limiter
	startTime time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, db Pinger, ingester Ingester, lister Lister) *Server {
	s := &Server{
		db:        db,
		ingester:  ingester,
		lister:    lister,
		cfg:       cfg,
		router:    chi.NewRouter(),
		uploads:   rate.NewLimiter(rate.Limit(cfg.Upload.RateLimit), cfg.Upload.Burst),
		startTime: time.Now(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	// Probes and metrics are not rate limited
	r.Get("/health-check", s.handleLiveness)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(s.cfg.Server.RequestsPerMinute, time.Minute))

		r.Get("/content", s.handleListContent)
		r.With(s.limitUploads).Post("/content/upload", s.handleUpload)
	})
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening on the configured port
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	log.Info().Int("port", s.cfg.Server.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Info().Msg("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// handleLiveness is a static probe that never touches the database
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHealth returns status, database connectivity and uptime
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "healthy"
	if err := s.db.Ping(r.Context()); err != nil {
		dbStatus = fmt.Sprintf("unhealthy: %v", err)
	}

	status := "healthy"
	code := http.StatusOK
	if dbStatus != "healthy" {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:   status,
		Database: dbStatus,
		Uptime:   s.Uptime().Round(time.Second).String(),
	})
}

// Uptime returns the server uptime
func (s *Server) Uptime() time.Duration {
	return time.Since(s.startTime)
}
