// Package api exposes the service over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/julianstephens/lifegrid/internal/config"
	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/logger"
	"github.com/julianstephens/lifegrid/internal/service"
)

type Server struct {
	svc     *service.Service
	cfg     config.Config
	mux     *http.ServeMux
	metrics *metrics
	handler http.Handler
}

// NewServer wires the routes, metrics and CORS policy. Each server owns its
// own Prometheus registry.
func NewServer(svc *service.Service, cfg config.Config) *Server {
	s := &Server{
		svc:     svc,
		cfg:     cfg,
		mux:     http.NewServeMux(),
		metrics: newMetrics(prometheus.NewRegistry()),
	}
	s.routes()

	s.handler = s.accessLog(newCORS(cfg.CORSOrigins).Handler(s.mux))
	return s
}

func (s *Server) routes() {
	s.handle("GET /{$}", s.handleRoot)
	s.handle("GET /categories", s.handleCategories)

	s.handle("GET /day-log/{date}", s.handleGetDayLog)
	s.handle("PUT /day-log/{date}", s.handlePutDayLog)

	s.handle("GET /daily-summary/{date}", s.handleGetDailySummary)
	s.handle("PUT /daily-summary/{date}", s.handlePutDailySummary)

	s.handle("GET /dreams/{date}", s.handleGetDream)
	s.handle("POST /dreams", s.handlePostDream)
	s.handle("DELETE /dreams/{date}", s.handleDeleteDream)

	s.handle("GET /events", s.handleListEvents)
	s.handle("POST /events", s.handlePostEvent)
	s.handle("DELETE /events/{id}", s.handleDeleteEvent)

	s.handle("GET /dashboard/weekly", s.handleWeeklyDashboard)

	s.mux.Handle("GET /metrics", s.metrics.handler())
}

// handle registers h under pattern ("METHOD /path") and instruments it with
// the path part as the route label.
func (s *Server) handle(pattern string, h http.HandlerFunc) {
	route := pattern[strings.IndexByte(pattern, ' ')+1:]
	s.mux.Handle(pattern, s.metrics.instrument(route, h))
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
		ErrorLog:          logger.Standard(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("Server listening", "addr", ln.Addr().String(), "database", s.cfg.RedactedDatabaseURL())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// newCORS builds the CORS middleware. rs/cors treats an empty AllowedOrigins
// as allow-all, so both the wildcard and the empty list go through
// AllowOriginFunc instead.
func newCORS(origins []string) *cors.Cors {
	opts := cors.Options{
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		AllowedHeaders: []string{"*"},
	}
	switch {
	case slices.Contains(origins, "*"):
		// Browsers refuse "*" alongside credentials; echo the request origin.
		opts.AllowOriginFunc = func(string) bool { return true }
	case len(origins) == 0:
		opts.AllowOriginFunc = func(string) bool { return false }
	default:
		opts.AllowedOrigins = origins
	}
	return cors.New(opts)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
