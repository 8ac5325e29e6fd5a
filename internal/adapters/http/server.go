// Package http exposes the render engine over a small JSON API. The
// server binds to one loaded template; clients supply overrides and get
// back resolved payloads.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dathuynh1108/rule-table-render"
	rediscache "github.com/dathuynh1108/rule-table-render/internal/adapters/redis"
	htmlview "github.com/dathuynh1108/rule-table-render/internal/presentation/html"
	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// Server serves renders of a single template document.
type Server struct {
	renderer *tablerender.Renderer
	template *domain.Template
	doc      []byte
	cache    *rediscache.Cache
	logger   *slog.Logger
	metrics  *Metrics
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithCache enables payload caching backed by Redis.
func WithCache(cache *rediscache.Cache) ServerOption {
	return func(s *Server) {
		s.cache = cache
	}
}

// WithServerLogger sets the request logger.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler builds the HTTP handler for a loaded template. doc is the
// raw template document, kept for cache key derivation.
func NewHandler(renderer *tablerender.Renderer, template *domain.Template, doc []byte, opts ...ServerOption) http.Handler {
	s := &Server{
		renderer: renderer,
		template: template,
		doc:      doc,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	registry := prometheus.NewRegistry()
	s.metrics = NewMetrics(registry)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/info", s.handleInfo)
	r.Post("/render", s.handleRender)
	r.Get("/preview", s.handlePreview)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

// RenderRequest is the POST /render body.
type RenderRequest struct {
	// Overrides carry typed values keyed by field id.
	Overrides map[string]any `json:"overrides,omitempty"`
	// Tables restricts the payload to the named table ids.
	Tables []string `json:"tables,omitempty"`
	// Fresh bypasses the payload cache.
	Fresh bool `json:"fresh,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	fields := make([]map[string]any, 0, len(s.template.Fields))
	for _, f := range s.template.Fields {
		fields = append(fields, map[string]any{
			"id":       f.ID,
			"label":    f.Label,
			"source":   f.Source,
			"type":     f.Type,
			"editable": f.Editable,
		})
	}
	tables := make([]string, 0, len(s.template.Layout.Tables))
	for _, t := range s.template.Layout.Tables {
		tables = append(tables, t.ID)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title":    s.template.Title,
		"currency": s.template.Currency,
		"version":  tablerender.Version,
		"fields":   fields,
		"tables":   tables,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.observe("bad_request", 0, 0)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("render: invalid request body", "error", err)
		return
	}

	start := time.Now()
	payload, cached, err := s.render(r.Context(), req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.metrics.observe("error", 0, elapsed)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.logger.Error("render failed", "error", err)
		return
	}

	outcome := "ok"
	if cached {
		outcome = "cache_hit"
	}
	s.metrics.observe(outcome, payload.Passes, elapsed)
	writeJSON(w, http.StatusOK, payload)
}

// render resolves a request, consulting the payload cache when enabled.
// Filtered renders skip the cache: the key covers the full payload only.
func (s *Server) render(ctx context.Context, req RenderRequest) (*domain.Payload, bool, error) {
	cacheable := s.cache != nil && len(req.Tables) == 0 && !req.Fresh
	var key string
	if cacheable {
		key = rediscache.Key(s.doc, req.Overrides)
		payload, err := s.cache.Load(ctx, key)
		if err == nil {
			return payload, true, nil
		}
		if !errors.Is(err, rediscache.ErrCacheMiss) {
			s.logger.Warn("payload cache lookup failed", "error", err)
		}
	}

	renderer := s.renderer
	if len(req.Tables) > 0 {
		renderer = tablerender.New(
			tablerender.WithLogger(s.logger),
			tablerender.WithTableFilter(req.Tables...),
		)
	}
	payload, err := renderer.BuildPayload(s.template, req.Overrides)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		if err := s.cache.Save(ctx, key, payload); err != nil {
			s.logger.Warn("payload cache save failed", "error", err)
		}
	}
	return payload, false, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	payload, _, err := s.render(r.Context(), RenderRequest{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.logger.Error("preview render failed", "error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(htmlview.Render(payload)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
