package formatter

import "github.com/sprite-ai/eslint-teamcity/internal/model"

var (
	errorResult = model.Diagnostic{
		FilePath: "testfile.js",
		Messages: []model.Finding{
			{RuleID: "no-console", Severity: model.SeverityError, Message: "'\n\r\u0085\u2028\u2029|[]", Line: 1, Column: 1},
			{RuleID: "no-unreachable", Severity: model.SeverityError, Message: "This is a test error.", Line: 2, Column: 1},
		},
	}

	warningResult = model.Diagnostic{
		FilePath: "testfile-warning.js",
		Messages: []model.Finding{
			{RuleID: "eqeqeq", Severity: model.SeverityWarning, Message: "Some warning", Line: 1, Column: 1},
			{RuleID: "complexity", Severity: model.SeverityWarning, Message: "This is a test warning.", Line: 2, Column: 2},
		},
	}

	fatalResult = model.Diagnostic{
		FilePath: "testfile-fatal.js",
		Messages: []model.Finding{
			{RuleID: "no-eval", Severity: model.SeverityError, Message: "Some fatal error", Line: 1, Column: 1, Fatal: true},
		},
	}

	unknownResult = model.Diagnostic{
		FilePath: "testfile-unknown.js",
		Messages: []model.Finding{
			{Severity: model.SeverityError, Message: "Some unknown error", Line: 1, Column: 1},
		},
	}
)

func withPath(d model.Diagnostic, path string) model.Diagnostic {
	d.FilePath = path
	return d
}
