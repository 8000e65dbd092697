package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sprite-ai/eslint-teamcity/internal/analysis"
	"github.com/sprite-ai/eslint-teamcity/internal/config"
)

const testResults = `[
  {
    "filePath": "/work/src/app.js",
    "messages": [
      {"ruleId": "semi", "severity": 2, "message": "Missing semicolon.", "line": 3, "column": 14},
      {"ruleId": "eqeqeq", "severity": 1, "message": "Expected '==='.", "line": 5, "column": 9}
    ]
  },
  {"filePath": "/work/src/clean.js", "messages": []}
]`

const warningResults = `[{"filePath": "a.js", "messages": [{"ruleId": "eqeqeq", "severity": 1, "message": "eq", "line": 1, "column": 1}]}]`

const testDiff = `diff --git a/src/app.js b/src/app.js
index 1111111..2222222 100644
--- a/src/app.js
+++ b/src/app.js
@@ -1,3 +1,4 @@
 const a = 1
 const b = 2
+const c = 3
 const d = 4
`

// clearEnv hides any ESLINT_TEAMCITY_* settings of the host.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvReporter, config.EnvReportName, config.EnvErrorStatisticsName,
		config.EnvWarningStatisticsName, config.EnvInspectionCountName,
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// run executes a fresh command tree with stdin set to input.
func run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func noManifest(t *testing.T) string {
	return filepath.Join(t.TempDir(), "package.json")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"summary", "view", "serve", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}

	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "eslint-teamcity dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestFormatFromFile(t *testing.T) {
	results := writeFile(t, "results.json", testResults)

	out, _, err := run(t, "", results, "--manifest", noManifest(t))
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	want := strings.Join([]string{
		"##teamcity[testSuiteStarted name='ESLint Violations']",
		"##teamcity[testStarted name='ESLint Violations: /work/src/app.js']",
		"##teamcity[testFailed name='ESLint Violations: /work/src/app.js' message='line 3, col 14, Missing semicolon. (semi)']",
		"##teamcity[testStdOut name='ESLint Violations: /work/src/app.js' out='warning: line 5, col 9, Expected |'===|'. (eqeqeq)']",
		"##teamcity[testFinished name='ESLint Violations: /work/src/app.js']",
		"##teamcity[testSuiteFinished name='ESLint Violations']",
		"##teamcity[buildStatisticValue key='ESLint Error Count' value='1']",
		"##teamcity[buildStatisticValue key='ESLint Warning Count' value='1']",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatFromStdin(t *testing.T) {
	out, _, err := run(t, testResults, "-", "--manifest", noManifest(t), "--reporter", "inspections", "--inspection-count")
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "##teamcity[inspectionType id='semi' category='ESLint Violations' name='semi' description='ESLint Violations']" {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if lines[6] != "##teamcity[buildStatisticValue key='ESLint Inspection Count' value='2']" {
		t.Errorf("unexpected last line %q", lines[6])
	}
}

func TestFormatFlagsOverrideManifest(t *testing.T) {
	manifest := writeFile(t, "package.json", `{
  "name": "demo",
  "eslint-formatter-teamcity": {"reporter": "inspections", "report-name": "From Manifest"}
}`)

	out, _, err := run(t, testResults, "--manifest", manifest, "--report-name", "From Flag")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.HasPrefix(out, "##teamcity[inspectionType id='semi' category='From Flag'") {
		t.Errorf("expected inspections named by flag, got:\n%s", out)
	}
}

func TestFormatEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "ESLINT_TEAMCITY_REPORT_NAME=From Dotenv\n")

	out, _, err := run(t, testResults, "--manifest", noManifest(t), "--env-file", envFile)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.HasPrefix(out, "##teamcity[testSuiteStarted name='From Dotenv']") {
		t.Errorf("expected dotenv report name, got:\n%s", out)
	}
}

func TestFormatDiffFilter(t *testing.T) {
	diffPath := writeFile(t, "changes.diff", testDiff)

	out, _, err := run(t, testResults, "--manifest", noManifest(t), "--diff", diffPath)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out, "Missing semicolon.") {
		t.Error("expected finding on added line to be kept")
	}
	if strings.Contains(out, "testStdOut") {
		t.Error("expected finding on unchanged line to be dropped")
	}
	if !strings.Contains(out, "key='ESLint Warning Count' value='0'") {
		t.Errorf("expected zero warnings after filtering, got:\n%s", out)
	}
}

func TestFormatMalformedResults(t *testing.T) {
	_, _, err := run(t, `[{"filePath": "a.js", "messages": [{"line": "one"}]}]`, "--manifest", noManifest(t))
	if err == nil || !strings.Contains(err.Error(), "decoding results") {
		t.Errorf("expected decoding error, got %v", err)
	}
}

func TestFormatMissingFile(t *testing.T) {
	_, _, err := run(t, "", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "opening results") {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := run(t, testResults, "--log-level", "loud")
	if err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestManifestWarningLogged(t *testing.T) {
	_, errOut, err := run(t, testResults, "--manifest", noManifest(t))
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(errOut, "Unable to load config from") {
		t.Errorf("expected manifest warning on stderr, got %q", errOut)
	}
}

func TestSummaryExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  int
	}{
		{"errors", testResults, 2},
		{"warnings", warningResults, 1},
		{"clean", `[{"filePath": "a.js", "messages": []}]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.input, "summary")

			code := 0
			var exit *ExitError
			if errors.As(err, &exit) {
				code = exit.Code
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
		})
	}
}

func TestSummaryJSON(t *testing.T) {
	out, _, _ := run(t, testResults, "summary", "--format", "json")

	var rep analysis.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("json decode: %v\n%s", err, out)
	}
	if rep.Summary != "1 error, 1 warning in 1 file" {
		t.Errorf("unexpected summary %q", rep.Summary)
	}
	if len(rep.Findings) != 2 || rep.Findings[0].File != "/work/src/app.js" {
		t.Errorf("unexpected findings %+v", rep.Findings)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	out, _, _ := run(t, testResults, "summary", "--format", "markdown")

	if !strings.Contains(out, "## ESLint Report") {
		t.Error("expected markdown header")
	}
	if !strings.Contains(out, "| error | `semi` | `/work/src/app.js:3:14` | Missing semicolon. |") {
		t.Errorf("expected semi row, got:\n%s", out)
	}
}

func TestSummaryText(t *testing.T) {
	out, _, _ := run(t, testResults, "summary")

	for _, want := range []string{"1 error, 1 warning in 1 file", "/work/src/app.js", "Missing semicolon.", "Rules"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text summary to contain %q", want)
		}
	}
}

func TestSummaryUnknownFormat(t *testing.T) {
	_, _, err := run(t, testResults, "summary", "--format", "html")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestMarkdownCell(t *testing.T) {
	if got := markdownCell("a|b\nc"); got != `a\|b c` {
		t.Errorf("unexpected cell %q", got)
	}
}
