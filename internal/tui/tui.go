// Package tui implements the Bubble Tea viewer for lint results.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/eslint-teamcity/internal/analysis"
	"github.com/sprite-ai/eslint-teamcity/internal/model"
	"github.com/sprite-ai/eslint-teamcity/internal/source"
)

const (
	// contextRadius is the number of source lines shown on each side of a finding.
	contextRadius = 3

	snippetCacheSize = 256
)

// SnippetLoader reads the source around a finding.
type SnippetLoader func(path string, line int) (*source.Snippet, error)

// Model is the top-level Bubble Tea model.
type Model struct {
	all     []model.Diagnostic // files with findings, in input order
	results *analysis.Results

	// UI state
	width  int
	height int

	fileIndex    int
	findingIndex int

	errorsOnly bool
	showSource bool
	showHelp   bool

	loadSnippet SnippetLoader
	snippet     *source.Snippet
	snippetErr  error
}

// New creates a viewer over diags. Files without findings are left out.
func New(diags []model.Diagnostic, loader SnippetLoader) Model {
	if loader == nil {
		loader = defaultLoader()
	}

	m := Model{
		results:     analysis.New(diags),
		loadSnippet: loader,
		showSource:  true,
	}
	for _, d := range diags {
		if len(d.Messages) > 0 {
			m.all = append(m.all, d)
		}
	}
	m.updateSnippet()
	return m
}

// files returns the files visible under the current filter.
func (m Model) files() []model.Diagnostic {
	if !m.errorsOnly {
		return m.all
	}
	var out []model.Diagnostic
	for _, d := range m.all {
		if errs := m.findingsOf(d); len(errs) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// findingsOf returns the visible findings of d under the current filter.
func (m Model) findingsOf(d model.Diagnostic) []model.Finding {
	if !m.errorsOnly {
		return d.Messages
	}
	var out []model.Finding
	for _, f := range d.Messages {
		if f.IsError() {
			out = append(out, f)
		}
	}
	return out
}

func (m Model) currentFile() (model.Diagnostic, bool) {
	files := m.files()
	if m.fileIndex >= len(files) {
		return model.Diagnostic{}, false
	}
	return files[m.fileIndex], true
}

func (m Model) currentFinding() (model.Finding, bool) {
	d, ok := m.currentFile()
	if !ok {
		return model.Finding{}, false
	}
	findings := m.findingsOf(d)
	if m.findingIndex >= len(findings) {
		return model.Finding{}, false
	}
	return findings[m.findingIndex], true
}

func (m *Model) updateSnippet() {
	m.snippet, m.snippetErr = nil, nil
	if !m.showSource {
		return
	}
	d, ok := m.currentFile()
	if !ok {
		return
	}
	f, ok := m.currentFinding()
	if !ok || f.Line < 1 {
		return
	}
	m.snippet, m.snippetErr = m.loadSnippet(d.FilePath, f.Line)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			if d, ok := m.currentFile(); ok && m.findingIndex < len(m.findingsOf(d))-1 {
				m.findingIndex++
				m.updateSnippet()
			}

		case key.Matches(msg, keys.Up):
			if m.findingIndex > 0 {
				m.findingIndex--
				m.updateSnippet()
			}

		case key.Matches(msg, keys.NextFile):
			if m.fileIndex < len(m.files())-1 {
				m.fileIndex++
				m.findingIndex = 0
				m.updateSnippet()
			}

		case key.Matches(msg, keys.PrevFile):
			if m.fileIndex > 0 {
				m.fileIndex--
				m.findingIndex = 0
				m.updateSnippet()
			}

		case key.Matches(msg, keys.Errors):
			m.errorsOnly = !m.errorsOnly
			m.fileIndex = 0
			m.findingIndex = 0
			m.updateSnippet()

		case key.Matches(msg, keys.Source):
			m.showSource = !m.showSource
			m.updateSnippet()

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if len(m.files()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			cleanStyle.Render("No problems found."),
			m.renderStatusBar(),
		)
	}

	listWidth := m.fileListWidth()
	mainWidth := m.width - listWidth - 1

	fileList := m.renderFileList(listWidth, m.height-2)
	findings := m.renderFindings(mainWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, fileList, " ", findings)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) fileListWidth() int {
	maxLen := 20
	for _, d := range m.files() {
		if n := len(d.DisplayPath()); n > maxLen {
			maxLen = n
		}
	}
	w := maxLen + 10
	if w > m.width/3 {
		w = m.width / 3
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderStatusBar() string {
	errors, warnings := m.results.Count()

	left := fmt.Sprintf(" File %d/%d", min(m.fileIndex+1, len(m.files())), len(m.files()))
	if d, ok := m.currentFile(); ok {
		left += fmt.Sprintf("  Finding %d/%d", m.findingIndex+1, len(m.findingsOf(d)))
	}

	filter := "all"
	if m.errorsOnly {
		filter = "errors"
	}
	right := fmt.Sprintf("%d errors %d warnings  %s  ? help ", errors, warnings, filter)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(fileHeaderStyle.Render("eslint-teamcity keyboard shortcuts"))
	b.WriteString("\n\n")

	for _, binding := range []key.Binding{
		keys.Up, keys.Down, keys.NextFile, keys.PrevFile,
		keys.Errors, keys.Source, keys.Help, keys.Quit,
	} {
		h := binding.Help()
		b.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Width(12).Render(h.Key), h.Desc))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

// defaultLoader reads snippets from disk through an LRU cache, falling
// back to uncached reads if the cache cannot be built.
func defaultLoader() SnippetLoader {
	cache, err := source.NewCache(snippetCacheSize, contextRadius)
	if err != nil {
		return func(path string, line int) (*source.Snippet, error) {
			return source.Read(path, line, contextRadius)
		}
	}
	return cache.Get
}

// Run starts the viewer.
func Run(diags []model.Diagnostic) error {
	p := tea.NewProgram(New(diags, nil), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
