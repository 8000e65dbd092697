package api

import (
	"io"
	"net/http"

	"github.com/sprite-ai/eslint-teamcity/internal/analysis"
	"github.com/sprite-ai/eslint-teamcity/internal/config"
	"github.com/sprite-ai/eslint-teamcity/internal/model"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Format ---

// formatRequest carries lint results and the explicit option tier.
type formatRequest struct {
	Results []model.Diagnostic `json:"results"`
	Options config.Options     `json:"options"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	out := s.format(req)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, out); err != nil {
		s.log.WithError(err).Warn("writing format response failed")
	}
}

// format renders a request and counts the findings it carried.
func (s *Server) format(req formatRequest) string {
	errors, warnings := analysis.New(req.Results).Count()
	s.metrics.FindingsTotal.WithLabelValues("error").Add(float64(errors))
	s.metrics.FindingsTotal.WithLabelValues("warning").Add(float64(warnings))
	return s.formatter.Format(req.Results, req.Options)
}

// --- Summary ---

type summaryRequest struct {
	Results []model.Diagnostic `json:"results"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, analysisReport(req.Results))
}

func analysisReport(diags []model.Diagnostic) analysis.Report {
	return analysis.New(diags).Report()
}
