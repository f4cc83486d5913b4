// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes ranking runs over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/author-scout/internal/export"
	"github.com/pdiddy/author-scout/internal/query"
	"github.com/pdiddy/author-scout/pkg/types"
)

// Ranker runs one ranking. *rank.Pipeline implements it.
type Ranker interface {
	Run(ctx context.Context, params types.SearchParams) (*types.RankOutput, error)
}

// Server is the HTTP API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	ranker     Ranker
	defaults   types.SearchParams
	gatherer   prometheus.Gatherer
	logger     zerolog.Logger
}

// New builds a Server. defaults fills query parameters a request omits;
// gatherer backs /metrics.
func New(cfg types.ServerConfig, ranker Ranker, defaults types.SearchParams, gatherer prometheus.Gatherer, logger zerolog.Logger) *Server {
	s := &Server{
		ranker:   ranker,
		defaults: defaults,
		gatherer: gatherer,
		logger:   logger.With().Str("component", "http-server").Logger(),
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/authors", s.rankAuthors)
	})
	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	s.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server starting")
	if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rankAuthors runs a ranking from query parameters and writes the records
// as JSON (default) or CSV.
func (s *Server) rankAuthors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, err := ParseParams(q, s.defaults)
	if err != nil {
		writeRunError(w, err)
		return
	}

	format := q.Get("format")
	if format != "" && format != export.FormatNameJSON && format != export.FormatNameCSV {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q (want json or csv)", format))
		return
	}

	out, err := s.ranker.Run(r.Context(), params)
	if err != nil {
		s.logger.Warn().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("ranking failed")
		writeRunError(w, err)
		return
	}

	if format == export.FormatNameCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="authors.csv"`)
		w.WriteHeader(http.StatusOK)
		if err := export.WriteCSV(w, out.Records); err != nil {
			s.logger.Error().Err(err).Msg("writing csv response")
		}
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// statusFor maps a run error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation), isKeywordError(err):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrFetch), errors.Is(err, types.ErrParse):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// isKeywordError reports whether err is a malformed keyword expression
// supplied by the caller. Other parse errors come from upstream responses.
func isKeywordError(err error) bool {
	var pe *types.ParseError
	return errors.As(err, &pe) && pe.Stage == query.Stage
}

func writeRunError(w http.ResponseWriter, err error) {
	body := map[string]any{"error": err.Error()}
	var pe *types.ParseError
	if isKeywordError(err) && errors.As(err, &pe) && pe.Offset >= 0 {
		body["offset"] = pe.Offset
		body["fragment"] = pe.Fragment
	}
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		body["field"] = ve.Field
	}
	writeJSON(w, statusFor(err), body)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
