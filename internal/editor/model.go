package editor

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true)
	missingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	labelStyle    = lipgloss.NewStyle().Width(3)
	checkboxStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

// Model is the bubbletea model of the terminal editor. It only edits a copy
// of the assignments; committing is left to the caller once the program
// exits, see [Model.Committed].
type Model struct {
	title       string
	labels      []string
	resources   []string
	assignments []string
	cursor      int

	toggler Toggler
	toggle  bool

	unassigned string
	keys       keyMap
	help       help.Model

	committed bool
	quitting  bool
}

// NewModel starts an editing pass over session. unassigned is the text shown
// for an empty slot.
func NewModel(session Session, unassigned string) Model {
	labels := session.Labels()
	assignments := make([]string, len(labels))
	copy(assignments, session.Snapshot())

	m := Model{
		title:       session.Title(),
		labels:      labels,
		resources:   session.Resources(),
		assignments: assignments,
		unassigned:  unassigned,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	if t, ok := session.(Toggler); ok {
		m.toggler = t
		m.toggle = t.Toggle()
	} else {
		m.keys.Toggle.SetEnabled(false)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Save):
		m.committed = true
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.labels)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Next):
		m.cycle(1)
	case key.Matches(keyMsg, m.keys.Prev):
		m.cycle(-1)
	case key.Matches(keyMsg, m.keys.Clear):
		if len(m.assignments) > 0 {
			m.assignments[m.cursor] = ""
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		m.toggle = !m.toggle
	}
	return m, nil
}

// cycle moves the selected slot through "unassigned" followed by every
// resource, wrapping around.
func (m *Model) cycle(step int) {
	if len(m.assignments) == 0 {
		return
	}
	n := len(m.resources) + 1
	pos := 0
	if cur := m.assignments[m.cursor]; cur != "" {
		pos = slices.Index(m.resources, cur) + 1
	}
	pos = ((pos+step)%n + n) % n
	if pos == 0 {
		m.assignments[m.cursor] = ""
	} else {
		m.assignments[m.cursor] = m.resources[pos-1]
	}
}

func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, label := range m.labels {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(labelStyle.Render(label))
		b.WriteString(m.renderAssignment(m.assignments[i]))
		b.WriteString("\n")
	}
	if m.toggler != nil {
		box := "[ ]"
		if m.toggle {
			box = "[x]"
		}
		b.WriteString("\n")
		b.WriteString(checkboxStyle.Render(box))
		b.WriteString(" " + m.toggler.ToggleLabel() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return tea.NewView(b.String())
}

func (m Model) renderAssignment(id string) string {
	switch {
	case id == "":
		return emptyStyle.Render(m.unassigned)
	case !slices.Contains(m.resources, id):
		return missingStyle.Render(id + " (missing)")
	default:
		return id
	}
}

// Assignments returns the edited assignments.
func (m Model) Assignments() []string {
	return slices.Clone(m.assignments)
}

// ToggleValue returns the edited toggle-to-previous flag.
func (m Model) ToggleValue() bool { return m.toggle }

// Committed reports whether the user saved.
func (m Model) Committed() bool { return m.committed }
