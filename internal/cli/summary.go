package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sprite-ai/eslint-teamcity/internal/analysis"
	"github.com/sprite-ai/eslint-teamcity/internal/model"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [results.json | -]",
		Short: "Summarize lint results (non-interactive)",
		Long: `Aggregate ESLint results by file and rule and print a report.
Useful for local runs, pre-commit hooks and pull request comments.

Exit codes:
  0  no findings
  1  warnings only
  2  at least one error`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummary,
	}
	cmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	diags, err := loadResults(cmd, args, log)
	if err != nil {
		return err
	}
	results := analysis.New(diags)

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		err = outputJSON(out, results)
	case "markdown":
		err = outputMarkdown(out, results)
	case "text":
		err = outputText(out, results)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}

	return exitForSeverity(results.MaxSeverity())
}

func exitForSeverity(s model.Severity) error {
	switch s {
	case model.SeverityError:
		return &ExitError{Code: 2}
	case model.SeverityWarning:
		return &ExitError{Code: 1}
	default:
		return nil
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	errorLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Render("error  ")
	warningLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")).Render("warning")
)

func outputText(w io.Writer, results *analysis.Results) error {
	fmt.Fprintln(w, headerStyle.Render(results.Summary()))

	if results.FileCount() == 0 {
		return nil
	}
	fmt.Fprintln(w)

	for _, d := range results.Diagnostics {
		if len(d.Messages) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s\n", d.DisplayPath())
		for _, f := range d.Messages {
			label := warningLabel
			if f.IsError() {
				label = errorLabel
			}
			fmt.Fprintf(w, "    %4d:%-3d %s %s  %s\n", f.Line, f.Column, label, f.Message, f.Rule())
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, headerStyle.Render("Rules"))
	for _, s := range results.RuleStats() {
		fmt.Fprintf(w, "  %-40s %3d errors %3d warnings\n", s.Rule, s.Errors, s.Warnings)
	}
	return nil
}

func outputJSON(w io.Writer, results *analysis.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results.Report())
}

func outputMarkdown(w io.Writer, results *analysis.Results) error {
	errors, warnings := results.Count()
	fmt.Fprintf(w, "## ESLint Report\n\n")
	fmt.Fprintf(w, "**%d file(s)** with problems, **%d** errors, **%d** warnings\n\n", results.FileCount(), errors, warnings)

	if results.FileCount() == 0 {
		fmt.Fprintln(w, "No problems found.")
		return nil
	}

	fmt.Fprintln(w, "| Severity | Rule | Location | Message |")
	fmt.Fprintln(w, "|----------|------|----------|---------|")
	for _, e := range results.Entries() {
		sev := "warning"
		if e.Finding.IsError() {
			sev = "error"
		}
		loc := fmt.Sprintf("%s:%d:%d", model.DisplayPath(e.File), e.Finding.Line, e.Finding.Column)
		fmt.Fprintf(w, "| %s | `%s` | `%s` | %s |\n", sev, e.Finding.Rule(), loc, markdownCell(e.Finding.Message))
	}
	return nil
}

// markdownCell keeps a message on one table row.
func markdownCell(s string) string {
	var b []rune
	for _, r := range s {
		switch r {
		case '|':
			b = append(b, '\\', '|')
		case '\n', '\r':
			b = append(b, ' ')
		default:
			b = append(b, r)
		}
	}
	return string(b)
}
