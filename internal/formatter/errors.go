package formatter

import (
	"strings"

	"github.com/sprite-ai/eslint-teamcity/internal/analysis"
	"github.com/sprite-ai/eslint-teamcity/internal/config"
	"github.com/sprite-ai/eslint-teamcity/internal/model"
	"github.com/sprite-ai/eslint-teamcity/internal/teamcity"
)

// EncodeErrors renders diagnostics as a TeamCity test suite: one test per
// file with findings, failed when the file has errors, with warnings written
// to the test's stdout.
func EncodeErrors(diags []model.Diagnostic, cfg config.Effective) []string {
	suite := teamcity.String("name", cfg.ReportName)
	lines := []string{teamcity.New("testSuiteStarted", suite).String()}

	for _, d := range diags {
		if len(d.Messages) == 0 {
			continue
		}

		name := teamcity.String("name", cfg.ReportName+": "+d.DisplayPath())
		lines = append(lines, teamcity.New("testStarted", name).String())

		var errs, warns []model.Finding
		for _, f := range d.Messages {
			if f.IsError() {
				errs = append(errs, f)
			} else {
				warns = append(warns, f)
			}
		}

		if len(errs) > 0 {
			lines = append(lines, teamcity.New("testFailed",
				name,
				teamcity.Escaped("message", joinFindings(errs)),
			).String())
		}
		if len(warns) > 0 {
			lines = append(lines, teamcity.New("testStdOut",
				name,
				teamcity.Escaped("out", "warning: "+joinFindings(warns)),
			).String())
		}

		lines = append(lines, teamcity.New("testFinished", name).String())
	}

	lines = append(lines, teamcity.New("testSuiteFinished", suite).String())
	return append(lines, statistics(analysis.New(diags), cfg)...)
}

// joinFindings escapes each finding and joins them with the TeamCity line
// separator token.
func joinFindings(findings []model.Finding) string {
	entries := make([]string, 0, len(findings))
	for _, f := range findings {
		entry := f.Location() + ", " + f.Message
		if f.RuleID != "" {
			entry += " (" + f.RuleID + ")"
		}
		entries = append(entries, teamcity.Escape(entry))
	}
	return strings.Join(entries, teamcity.LineSeparator)
}

// statistics returns the trailing buildStatisticValue lines shared by both encoders.
func statistics(r *analysis.Results, cfg config.Effective) []string {
	errors, warnings := r.Count()
	lines := []string{
		teamcity.BuildStatistic(cfg.ErrorStatisticsName, errors).String(),
		teamcity.BuildStatistic(cfg.WarningStatisticsName, warnings).String(),
	}
	if cfg.EmitInspectionCount {
		lines = append(lines, teamcity.BuildStatistic(cfg.InspectionCountName, len(r.Rules())).String())
	}
	return lines
}
