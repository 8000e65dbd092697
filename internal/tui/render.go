package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/eslint-teamcity/internal/model"
	"github.com/sprite-ai/eslint-teamcity/internal/source"
)

func (m Model) renderFileList(width, height int) string {
	var b strings.Builder

	files := m.files()
	for i, d := range files {
		name := d.DisplayPath()

		maxName := width - 10
		if maxName > 0 && len(name) > maxName {
			name = "…" + name[len(name)-maxName+1:]
		}

		errs, warns := countFindings(m.findingsOf(d))
		line := fmt.Sprintf("%-*s %dE %dW", maxName, name, errs, warns)

		var style lipgloss.Style
		switch {
		case i == m.fileIndex:
			style = fileItemSelectedStyle
		case errs > 0:
			style = fileItemErrorStyle
		case warns > 0:
			style = fileItemWarningStyle
		default:
			style = fileItemStyle
		}

		b.WriteString(style.Width(width - 4).Render(line))
		if i < len(files)-1 {
			b.WriteByte('\n')
		}
	}

	return fileListStyle.Width(width).Height(height - 2).Render(b.String())
}

func (m Model) renderFindings(width, height int) string {
	d, ok := m.currentFile()
	if !ok {
		return findingsViewStyle.Width(width).Height(height - 2).Render("No findings")
	}

	innerWidth := width - 4

	var b strings.Builder
	b.WriteString(fileHeaderStyle.Render(d.DisplayPath()))
	b.WriteByte('\n')

	for i, f := range m.findingsOf(d) {
		line := renderFinding(f, innerWidth)
		if i == m.findingIndex {
			line = selectedFindingStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if m.showSource {
		b.WriteString(m.renderSource(innerWidth))
	}

	return findingsViewStyle.Width(width).Height(height - 2).Render(b.String())
}

func renderFinding(f model.Finding, width int) string {
	sev := warningStyle.Render("warning")
	if f.IsError() {
		sev = errorStyle.Render("error  ")
	}
	loc := fmt.Sprintf("%4d:%-3d", f.Line, f.Column)
	text := truncate(f.Message, width-lipgloss.Width(loc)-30)
	return fmt.Sprintf("%s %s %s %s", loc, sev, text, ruleStyle.Render(f.Rule()))
}

func (m Model) renderSource(width int) string {
	var b strings.Builder
	b.WriteString(sourceHeaderStyle.Render("Source"))
	b.WriteByte('\n')

	if m.snippetErr != nil {
		b.WriteString(helpBarStyle.Render("source unavailable: " + m.snippetErr.Error()))
		return b.String()
	}
	if m.snippet == nil {
		return b.String()
	}

	for _, l := range m.snippet.Lines {
		num := lineNumberStyle.Render(fmt.Sprintf("%d", l.Number))
		if l.Number == m.snippet.Focus {
			num = focusLineNumberStyle.Render(fmt.Sprintf("%d", l.Number))
		}
		b.WriteString(num + " " + renderTokens(l, width-7))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderTokens colours a highlighted line, falling back to plain text when
// it would not fit.
func renderTokens(l source.Line, width int) string {
	plain := l.Plain()
	if width > 0 && len(plain) > width {
		return truncate(plain, width)
	}

	var b strings.Builder
	for _, tok := range l.Tokens {
		if tok.Color != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(tok.Color)).Render(tok.Text))
		} else {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

func countFindings(findings []model.Finding) (errors, warnings int) {
	for _, f := range findings {
		if f.IsError() {
			errors++
		} else {
			warnings++
		}
	}
	return
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}
