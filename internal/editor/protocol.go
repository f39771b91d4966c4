// Package editor is the assignment editor: the protocol a slot owner offers
// to any editing surface, and a terminal surface built on bubbletea.
package editor

// Session is one editing pass over a set of slots.
type Session interface {
	// Title names the slot set, e.g. "Ten Brushes".
	Title() string
	// Labels returns the user-visible slot labels in index order.
	Labels() []string
	// Snapshot returns the current assignments in index order, "" for
	// unassigned.
	Snapshot() []string
	// Resources returns every identifier that may be assigned.
	Resources() []string
	// Commit replaces every assignment and persists the result.
	Commit(assignments []string) error
}

// Toggler is implemented by sessions that also edit toggle-to-previous.
type Toggler interface {
	// ToggleLabel describes the option next to its checkbox.
	ToggleLabel() string
	Toggle() bool
	SetToggle(enabled bool)
}
