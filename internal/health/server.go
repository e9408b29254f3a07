package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rickgao/redditor/internal/poller"
	"github.com/rickgao/redditor/internal/version"
)

const shutdownTimeout = 10 * time.Second

// StatsSource provides poller counters.
type StatsSource interface {
	Stats() poller.Stats
}

// Status values reported by /health.
const (
	StatusStarting = "starting" // No cycle has completed yet
	StatusHealthy  = "healthy"
)

// Response is the /health body.
type Response struct {
	Status string `json:"status"`
	poller.Stats
	Version string `json:"version"`
}

// Server serves the health endpoint.
type Server struct {
	addr   string
	stats  StatsSource
	logger *slog.Logger
	router *chi.Mux
}

// NewServer creates a health server listening on addr.
func NewServer(addr string, stats StatsSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:   addr,
		stats:  stats,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting health server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("health server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown health server: %w", err)
	}
	s.logger.Info("health server stopped")
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.stats.Stats()

	resp := Response{
		Status:  StatusHealthy,
		Stats:   stats,
		Version: version.Version,
	}
	if stats.Cycles == 0 {
		resp.Status = StatusStarting
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("encode health response", "err", err)
	}
}
