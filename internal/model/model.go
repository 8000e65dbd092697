// Package model defines the lint result types shared across eslint-teamcity.
package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// NoRule is displayed wherever a rule identifier is required but the finding has none.
const NoRule = "<none>"

// Severity of a single finding.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// UnmarshalJSON accepts the numeric ESLint form (1 = warning, 2 = error)
// as well as the spelled-out names. Anything else decodes to SeverityUnknown.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		switch n {
		case 1:
			*s = SeverityWarning
		case 2:
			*s = SeverityError
		default:
			*s = SeverityUnknown
		}
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("severity must be a number or string, got %s", data)
	}
	switch strings.ToLower(name) {
	case "warning", "warn":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		*s = SeverityUnknown
	}
	return nil
}

// MarshalJSON writes the numeric ESLint form.
func (s Severity) MarshalJSON() ([]byte, error) {
	switch s {
	case SeverityWarning:
		return []byte("1"), nil
	case SeverityError:
		return []byte("2"), nil
	default:
		return []byte("0"), nil
	}
}

// Finding is one rule violation or fatal parse error at a position in a file.
type Finding struct {
	RuleID   string   `json:"ruleId"` // empty for parse-level errors
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Fatal    bool     `json:"fatal,omitempty"`
}

// IsError reports whether the finding counts as an error.
// Fatal findings and unrecognized severities are errors.
func (f Finding) IsError() bool {
	return f.Fatal || f.Severity != SeverityWarning
}

// Rule returns the rule identifier, or NoRule when absent.
func (f Finding) Rule() string {
	if f.RuleID == "" {
		return NoRule
	}
	return f.RuleID
}

// Location renders "line L, col C".
func (f Finding) Location() string {
	return fmt.Sprintf("line %d, col %d", f.Line, f.Column)
}

// Diagnostic is the lint result for a single file.
type Diagnostic struct {
	FilePath string    `json:"filePath"`
	Messages []Finding `json:"messages"`

	// Counters reported by ESLint. Decoded for completeness; output is
	// always computed from Messages.
	ErrorCount          int    `json:"errorCount,omitempty"`
	WarningCount        int    `json:"warningCount,omitempty"`
	FatalErrorCount     int    `json:"fatalErrorCount,omitempty"`
	FixableErrorCount   int    `json:"fixableErrorCount,omitempty"`
	FixableWarningCount int    `json:"fixableWarningCount,omitempty"`
	Source              string `json:"source,omitempty"`
}

// DisplayPath returns FilePath with every backslash replaced by a forward slash.
func (d Diagnostic) DisplayPath() string {
	return DisplayPath(d.FilePath)
}

// DisplayPath normalizes path separators for display.
func DisplayPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// DecodeResults reads an ESLint JSON results array.
func DecodeResults(r io.Reader) ([]Diagnostic, error) {
	var diags []Diagnostic
	if err := json.NewDecoder(r).Decode(&diags); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	return diags, nil
}
