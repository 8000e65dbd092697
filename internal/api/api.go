// Package api implements the HTTP API server for eslint-teamcity.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/sprite-ai/eslint-teamcity/internal/formatter"
	"github.com/sprite-ai/eslint-teamcity/internal/logging"
)

// maxBodyBytes bounds request bodies and websocket messages.
const maxBodyBytes = 32 << 20

// Server is the eslint-teamcity HTTP API server.
type Server struct {
	addr      string
	formatter *formatter.Formatter
	log       logrus.FieldLogger
	registry  *prometheus.Registry
	metrics   *Metrics
	mux       *http.ServeMux
	handler   http.Handler
	server    *http.Server
}

// New creates a new API server. Requests are formatted with f, whose
// manifest and environment tiers sit below the options each request sends.
// A nil f formats with built-in defaults only.
func New(addr string, f *formatter.Formatter, log logrus.FieldLogger) *Server {
	if f == nil {
		f = &formatter.Formatter{}
	}
	s := &Server{
		addr:      addr,
		formatter: f,
		log:       logging.OrDiscard(log),
		registry:  prometheus.NewRegistry(),
	}
	s.metrics = NewMetrics(s.registry)
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.handler = s.instrument(s.mux)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/format", s.handleFormat)
	s.mux.HandleFunc("POST /api/summary", s.handleSummary)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
	s.mux.Handle("GET /metrics", metricsHandler(s.registry))
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.addr).Info("eslint-teamcity API server listening")
	return s.server.ListenAndServe()
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.log.WithError(err).Warn("json encode failed")
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a JSON request body into v.
func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
