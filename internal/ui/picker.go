// Package ui provides the interactive candidate picker shown when a
// query is ambiguous and -i is set. It renders to stderr so stdout
// stays reserved for the resolved path.
package ui

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"
)

var (
	filterLabelStyle = lipgloss.NewStyle().Faint(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	matchStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true)
	dimStyle         = lipgloss.NewStyle().Faint(true)
)

const maxVisible = 10

// pickerModel is a single fuzzy-filterable list. It reads key events
// directly instead of pulling in a text-input widget; the filter is
// plain appended runes.
type pickerModel struct {
	options   []string
	filtered  []fuzzy.Match
	filter    string
	cursor    int
	choice    int // index into options, -1 until confirmed
	cancelled bool
}

func newPickerModel(options []string) *pickerModel {
	m := &pickerModel{options: options, choice: -1}
	m.applyFilter()
	return m
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.applyFilter()
			return m, nil
		}
		m.cancelled = true
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.filtered) {
			m.choice = m.filtered[m.cursor].Index
			return m, tea.Quit
		}
	case "backspace":
		if m.filter != "" {
			m.filter = m.filter[:len(m.filter)-1]
			m.applyFilter()
		}
	default:
		if text := keyMsg.Text; text != "" {
			m.filter += text
			m.applyFilter()
		}
	}
	return m, nil
}

// source adapts the option list to fuzzy.Source.
type source []string

func (s source) String(i int) string { return s[i] }
func (s source) Len() int            { return len(s) }

func (m *pickerModel) applyFilter() {
	if m.filter == "" {
		m.filtered = make([]fuzzy.Match, len(m.options))
		for i, opt := range m.options {
			m.filtered[i] = fuzzy.Match{Str: opt, Index: i}
		}
	} else {
		m.filtered = fuzzy.FindFrom(m.filter, source(m.options))
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *pickerModel) View() tea.View {
	if m.choice >= 0 || m.cancelled {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(filterLabelStyle.Render("Filter: ") + m.filter + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(dimStyle.Render("  ↑ more above") + "\n")
	}
	for i := start; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(cursor + m.renderMatch(m.filtered[i], i == m.cursor) + "\n")
	}
	if end < len(m.filtered) {
		b.WriteString(dimStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  No matching paths") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel") + "\n")
	return tea.NewView(b.String())
}

func (m *pickerModel) renderMatch(match fuzzy.Match, selected bool) string {
	if m.filter == "" || len(match.MatchedIndexes) == 0 {
		if selected {
			return selectedStyle.Render(match.Str)
		}
		return match.Str
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range []rune(match.Str) {
		ch := string(r)
		switch {
		case matched[i]:
			b.WriteString(matchStyle.Render(ch))
		case selected:
			b.WriteString(selectedStyle.Render(ch))
		default:
			b.WriteString(ch)
		}
	}
	return b.String()
}

// Pick shows the candidate paths and returns the chosen one. ok is
// false when the user cancelled.
func Pick(paths []string) (choice string, ok bool, err error) {
	if len(paths) == 0 {
		return "", false, nil
	}

	model := newPickerModel(paths)

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	final, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m := final.(*pickerModel)
	if m.cancelled || m.choice < 0 {
		return "", false, nil
	}
	return m.options[m.choice], true, nil
}
