package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/fsmtool/internal/compiler"
	"github.com/aretw0/fsmtool/internal/generator"
	"github.com/aretw0/fsmtool/internal/validator"
)

// maxDocumentSize caps request bodies. FSM definitions are hand-authored
// documents; anything past this is abuse, not input.
const maxDocumentSize = 1 << 20

// Server exposes the parse-and-render pipeline over HTTP: POST a YAML
// state machine definition to /render/{format} and get the rendered text
// back. Each request runs its own parser; the pipeline itself is pure, so
// there is no shared mutable state between requests.
type Server struct {
	logger  *slog.Logger
	renders *prometheus.CounterVec
}

// NewHandler builds the HTTP handler, including /healthz and a /metrics
// endpoint backed by a private Prometheus registry.
func NewHandler(logger *slog.Logger) http.Handler {
	renders := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fsmtool_renders_total",
			Help: "Render requests by output format and outcome.",
		},
		[]string{"format", "outcome"},
	)
	registry := prometheus.NewRegistry()
	registry.MustRegister(renders)

	s := &Server{
		logger:  logger,
		renders: renders,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Post("/render/{format}", s.handleRender)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	gen, err := generator.ForFormat(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize))
	if err != nil {
		s.renders.WithLabelValues(format, "read_error").Inc()
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	m, err := compiler.NewParser().ParseBytes(body)
	if err != nil {
		s.renders.WithLabelValues(format, "parse_error").Inc()
		s.logger.Warn("parse failed", "format", format, "error", err)
		status := http.StatusUnprocessableEntity
		var parseErr *compiler.ParseError
		if errors.As(err, &parseErr) && errors.Is(err, compiler.ErrSourceRead) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	if r.URL.Query().Get("strict") == "true" {
		if err := validator.Check(m); err != nil {
			s.renders.WithLabelValues(format, "invalid").Inc()
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	var buf bytes.Buffer
	if err := gen.Render(m, &buf); err != nil {
		s.renders.WithLabelValues(format, "render_error").Inc()
		s.logger.Error("render failed", "format", format, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	s.renders.WithLabelValues(format, "ok").Inc()
	s.logger.Info("rendered", "format", format, "machine", m.Name, "states", len(m.States))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
