// Package activation implements the two slot effects: switching the active
// resource of the host's active view, and running a user script.
//
// Everything the effects need from the host application is consumed through
// the small interfaces below, so the engine runs unchanged against a real
// host, the reference host in internal/host, or test fakes.
package activation

import (
	"context"
	"errors"
	"time"
)

// ErrNoContext is returned when the host has no active view to act on.
var ErrNoContext = errors.New("no active context")

// Resource is a host resource identified by name, such as a brush preset.
type Resource interface {
	Name() string
}

// Resources is the host's read-only resource directory.
type Resources interface {
	// Lookup returns the resource named name, if it currently exists.
	Lookup(name string) (Resource, bool)
	// Names returns the names of every currently valid resource.
	Names() []string
}

// View is the host context that has a current resource.
type View interface {
	// CurrentResource returns the active resource. ok is false when the
	// view has none.
	CurrentResource() (r Resource, ok bool)
	// ActivateResource makes r the active resource.
	ActivateResource(r Resource) error
}

// Window gives access to the active view.
type Window interface {
	// ActiveView returns the active view or an error when there is none.
	ActiveView() (View, error)
}

// Notifier is the host's notification surface.
type Notifier interface {
	// FloatingMessage shows a transient message for roughly d.
	FloatingMessage(text string, d time.Duration)
	// MessageBox shows a modal message.
	MessageBox(text string)
}

// ScriptRunner loads and runs the script at path.
type ScriptRunner interface {
	Run(ctx context.Context, path string) error
}

// ScriptRunnerFunc adapts a function to ScriptRunner.
type ScriptRunnerFunc func(ctx context.Context, path string) error

// Run calls f(ctx, path).
func (f ScriptRunnerFunc) Run(ctx context.Context, path string) error { return f(ctx, path) }
