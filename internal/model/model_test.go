package model

import (
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityUnknown, "unknown"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestDecodeResults(t *testing.T) {
	input := `[
  {"filePath": "src\\app.js", "messages": [
    {"ruleId": "no-console", "severity": 2, "message": "Unexpected console", "line": 3, "column": 5},
    {"ruleId": null, "severity": 2, "message": "Parsing error", "line": 1, "column": 1, "fatal": true},
    {"ruleId": "eqeqeq", "severity": 1, "message": "Expected ===", "line": 7, "column": 9}
  ], "errorCount": 2, "warningCount": 1},
  {"filePath": "clean.js", "messages": []}
]`

	diags, err := DecodeResults(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeResults failed: %v", err)
	}
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}

	d := diags[0]
	if d.DisplayPath() != "src/app.js" {
		t.Errorf("expected display path src/app.js, got %q", d.DisplayPath())
	}
	if len(d.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(d.Messages))
	}

	if d.Messages[0].Severity != SeverityError || !d.Messages[0].IsError() {
		t.Errorf("expected first finding to be an error, got %s", d.Messages[0].Severity)
	}
	if d.Messages[1].RuleID != "" || d.Messages[1].Rule() != NoRule {
		t.Errorf("expected absent rule to render as %q, got %q", NoRule, d.Messages[1].Rule())
	}
	if !d.Messages[1].Fatal {
		t.Error("expected fatal flag on parse error")
	}
	if d.Messages[2].IsError() {
		t.Error("expected warning not to count as error")
	}
	if d.Messages[2].Location() != "line 7, col 9" {
		t.Errorf("unexpected location %q", d.Messages[2].Location())
	}
}

func TestDecodeResultsSeverityForms(t *testing.T) {
	input := `[{"filePath": "a.js", "messages": [
  {"ruleId": "a", "severity": "warning", "message": "m", "line": 1, "column": 1},
  {"ruleId": "b", "severity": "error", "message": "m", "line": 1, "column": 1},
  {"ruleId": "c", "severity": 0, "message": "m", "line": 1, "column": 1}
]}]`

	diags, err := DecodeResults(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeResults failed: %v", err)
	}
	got := diags[0].Messages
	if got[0].Severity != SeverityWarning {
		t.Errorf("expected warning, got %s", got[0].Severity)
	}
	if got[1].Severity != SeverityError {
		t.Errorf("expected error, got %s", got[1].Severity)
	}
	if got[2].Severity != SeverityUnknown || !got[2].IsError() {
		t.Errorf("expected unknown severity counted as error, got %s", got[2].Severity)
	}
}

func TestDecodeResultsMalformed(t *testing.T) {
	_, err := DecodeResults(strings.NewReader(`[{"filePath": "a.js", "messages": [{"line": "one"}]}]`))
	if err == nil {
		t.Fatal("expected error for malformed finding")
	}
	if !strings.Contains(err.Error(), "decoding results") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestDisplayPath(t *testing.T) {
	if got := DisplayPath(`path\with\backslash\file.js`); got != "path/with/backslash/file.js" {
		t.Errorf("DisplayPath = %q", got)
	}
	if got := DisplayPath("already/slashed.js"); got != "already/slashed.js" {
		t.Errorf("DisplayPath = %q", got)
	}
}
