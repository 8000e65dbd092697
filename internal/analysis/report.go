package analysis

import "github.com/sprite-ai/eslint-teamcity/internal/model"

// Report is the JSON form of an aggregation, shared by the CLI and the API.
type Report struct {
	Summary     string          `json:"summary"`
	MaxSeverity string          `json:"max_severity"`
	Files       int             `json:"files"`
	Errors      int             `json:"errors"`
	Warnings    int             `json:"warnings"`
	Rules       []RuleReport    `json:"rules"`
	Findings    []FindingReport `json:"findings"`
}

// RuleReport is one row of the per-rule table.
type RuleReport struct {
	Rule     string `json:"rule"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

// FindingReport is a flattened finding.
type FindingReport struct {
	File     string `json:"file"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Report builds the JSON aggregation. Slices are never nil.
func (r *Results) Report() Report {
	errors, warnings := r.Count()
	rep := Report{
		Summary:     r.Summary(),
		MaxSeverity: maxSeverityName(r.MaxSeverity()),
		Files:       r.FileCount(),
		Errors:      errors,
		Warnings:    warnings,
		Rules:       []RuleReport{},
		Findings:    []FindingReport{},
	}

	for _, s := range r.RuleStats() {
		rep.Rules = append(rep.Rules, RuleReport{Rule: s.Rule, Errors: s.Errors, Warnings: s.Warnings})
	}

	for _, e := range r.Entries() {
		sev := "warning"
		if e.Finding.IsError() {
			sev = "error"
		}
		rep.Findings = append(rep.Findings, FindingReport{
			File:     model.DisplayPath(e.File),
			Line:     e.Finding.Line,
			Column:   e.Finding.Column,
			Rule:     e.Finding.Rule(),
			Severity: sev,
			Message:  e.Finding.Message,
		})
	}

	return rep
}

func maxSeverityName(s model.Severity) string {
	if s == model.SeverityUnknown {
		return "none"
	}
	return s.String()
}
