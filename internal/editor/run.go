package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Run when input is not a terminal.
var ErrNotTerminal = errors.New("the assignment editor needs an interactive terminal")

// Run edits session interactively on in/out. When the user saves, the edited
// toggle (for a Toggler) is applied and the assignments are committed.
// It reports whether a commit happened.
func Run(ctx context.Context, session Session, in io.Reader, out io.Writer, unassigned string) (bool, error) {
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return false, ErrNotTerminal
	}
	final, err := tea.NewProgram(
		NewModel(session, unassigned),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	).Run()
	if err != nil {
		return false, fmt.Errorf("assignment editor: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("assignment editor: unexpected model %T", final)
	}
	return Apply(session, m)
}

// Apply commits the result of a finished editing pass. Nothing happens when
// the user cancelled.
func Apply(session Session, m Model) (bool, error) {
	if !m.Committed() {
		return false, nil
	}
	if t, ok := session.(Toggler); ok {
		t.SetToggle(m.ToggleValue())
	}
	if err := session.Commit(m.Assignments()); err != nil {
		return false, err
	}
	return true, nil
}
