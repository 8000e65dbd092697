// Package analysis aggregates lint results across files.
package analysis

import (
	"fmt"
	"strings"

	"github.com/sprite-ai/eslint-teamcity/internal/model"
)

// Entry is a single finding together with the file it was reported in.
type Entry struct {
	File    string // raw path as reported by the linter
	Finding model.Finding
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s:%d:%d: %s", e.Finding.Rule(), model.DisplayPath(e.File), e.Finding.Line, e.Finding.Column, e.Finding.Message)
}

// Results is a read-only view over a diagnostic list.
type Results struct {
	Diagnostics []model.Diagnostic
}

// New wraps diags. The slice is not copied.
func New(diags []model.Diagnostic) *Results {
	return &Results{Diagnostics: diags}
}

// Entries returns every finding in file order, then message order.
func (r *Results) Entries() []Entry {
	var entries []Entry
	for _, d := range r.Diagnostics {
		for _, f := range d.Messages {
			entries = append(entries, Entry{File: d.FilePath, Finding: f})
		}
	}
	return entries
}

// Count returns the total number of error and warning findings.
// Fatal and unknown-severity findings count as errors.
func (r *Results) Count() (errors, warnings int) {
	for _, d := range r.Diagnostics {
		for _, f := range d.Messages {
			if f.IsError() {
				errors++
			} else {
				warnings++
			}
		}
	}
	return
}

// Rules returns the distinct rule identifiers in first-seen order.
// Findings without a rule are reported as model.NoRule.
func (r *Results) Rules() []string {
	seen := make(map[string]bool)
	var rules []string
	for _, d := range r.Diagnostics {
		for _, f := range d.Messages {
			id := f.Rule()
			if !seen[id] {
				seen[id] = true
				rules = append(rules, id)
			}
		}
	}
	return rules
}

// ByRule returns entries grouped by rule identifier, each group in traversal order.
func (r *Results) ByRule() map[string][]Entry {
	m := make(map[string][]Entry)
	for _, e := range r.Entries() {
		id := e.Finding.Rule()
		m[id] = append(m[id], e)
	}
	return m
}

// FileCount returns the number of files with at least one finding.
func (r *Results) FileCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if len(d.Messages) > 0 {
			n++
		}
	}
	return n
}

// MaxSeverity returns the highest severity among all findings,
// SeverityUnknown when there are none.
func (r *Results) MaxSeverity() model.Severity {
	errors, warnings := r.Count()
	switch {
	case errors > 0:
		return model.SeverityError
	case warnings > 0:
		return model.SeverityWarning
	default:
		return model.SeverityUnknown
	}
}

// Summary returns a one-line summary of findings.
func (r *Results) Summary() string {
	errors, warnings := r.Count()
	if errors == 0 && warnings == 0 {
		return "No problems found"
	}

	var parts []string
	if errors > 0 {
		parts = append(parts, plural(errors, "error"))
	}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning"))
	}
	return fmt.Sprintf("%s in %s", strings.Join(parts, ", "), plural(r.FileCount(), "file"))
}

// RuleStat counts findings for one rule.
type RuleStat struct {
	Rule     string
	Errors   int
	Warnings int
}

// RuleStats returns per-rule counts in first-seen rule order.
func (r *Results) RuleStats() []RuleStat {
	byRule := r.ByRule()
	rules := r.Rules()
	stats := make([]RuleStat, 0, len(rules))
	for _, id := range rules {
		s := RuleStat{Rule: id}
		for _, e := range byRule[id] {
			if e.Finding.IsError() {
				s.Errors++
			} else {
				s.Warnings++
			}
		}
		stats = append(stats, s)
	}
	return stats
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
