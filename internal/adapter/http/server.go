package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/render"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LayerBuilder builds a fresh map layer, fetching the feed once per call.
type LayerBuilder interface {
	Build(ctx context.Context) (domain.Layer, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the map page, its JSON data, and health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	builder    LayerBuilder
	view       render.MapView
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /api/markers, /api/legend,
// /healthz, /readyz, and /metrics routes.
func NewServer(addr string, builder LayerBuilder, view render.MapView, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			// Each page load downloads the feed, which can take a few seconds.
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		builder: builder,
		view:    view,
		logger:  logger,
	}

	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET /api/markers", s.handleMarkers)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(builder))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	layer, err := s.builder.Build(r.Context())
	if err != nil {
		s.logger.Error("build map layer failed", "error", err)
		http.Error(w, "earthquake feed unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.RenderPage(w, render.NewPage(s.view, layer)); err != nil {
		s.logger.Error("render map page failed", "error", err)
	}
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	layer, err := s.builder.Build(r.Context())
	if err != nil {
		s.logger.Error("build map layer failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"status": "error",
			"error":  "earthquake feed unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, render.GeoJSON(layer))
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"thresholds_km": domain.DepthThresholds(),
		"entries":       domain.Legend(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
