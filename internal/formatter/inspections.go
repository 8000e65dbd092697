package formatter

import (
	"github.com/sprite-ai/eslint-teamcity/internal/analysis"
	"github.com/sprite-ai/eslint-teamcity/internal/config"
	"github.com/sprite-ai/eslint-teamcity/internal/model"
	"github.com/sprite-ai/eslint-teamcity/internal/teamcity"
)

// EncodeInspections renders diagnostics as TeamCity code inspections. Each
// rule is registered with an inspectionType message, immediately followed by
// the inspection messages that reference it.
func EncodeInspections(diags []model.Diagnostic, cfg config.Effective) []string {
	r := analysis.New(diags)
	byRule := r.ByRule()

	var lines []string
	for _, id := range r.Rules() {
		lines = append(lines, teamcity.New("inspectionType",
			teamcity.String("id", id),
			teamcity.String("category", cfg.ReportName),
			teamcity.String("name", id),
			teamcity.String("description", cfg.ReportName),
		).String())

		for _, e := range byRule[id] {
			lines = append(lines, inspection(id, e).String())
		}
	}

	return append(lines, statistics(r, cfg)...)
}

func inspection(typeID string, e analysis.Entry) teamcity.Message {
	f := e.Finding
	severity := "WARNING"
	if f.IsError() {
		severity = "ERROR"
	}
	return teamcity.New("inspection",
		teamcity.String("typeId", typeID),
		teamcity.String("message", f.Location()+", "+f.Message),
		teamcity.String("file", model.DisplayPath(e.File)),
		teamcity.Int("line", f.Line),
		teamcity.String("SEVERITY", severity),
	)
}
