// Package action is the host-side registry of named, triggerable commands.
//
// Each action gets an activation handle when it is created. Extensions bind
// those handles to slots and use them to recover the slot index when the
// action fires. Trigger delivery is serialised: at most one callback runs at a
// time, no matter how many goroutines deliver triggers.
package action

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrUnknownAction is returned when triggering an id that was never created.
	ErrUnknownAction = errors.New("unknown action")
	// ErrDuplicateAction is returned when an id is created twice.
	ErrDuplicateAction = errors.New("action already exists")
)

// Func is invoked when an action is triggered. handle is the activation
// handle of the action being triggered.
type Func func(handle uuid.UUID)

// Action describes a registered action.
type Action struct {
	ID     string
	Label  string
	Handle uuid.UUID
	// Menu is the optional menu location hint, e.g. "tools/scripts".
	Menu string

	fn Func
}

// Registry holds the created actions.
type Registry struct {
	mu      sync.Mutex // serialises Trigger delivery
	actions map[string]*Action
	byID    map[uuid.UUID]*Action
	order   []string
	logger  *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger means slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		actions: make(map[string]*Action),
		byID:    make(map[uuid.UUID]*Action),
		logger:  logger,
	}
}

// Create registers a new action and returns its activation handle.
func (r *Registry) Create(id, label, menu string, fn Func) (uuid.UUID, error) {
	if id == "" {
		return uuid.Nil, errors.New("action id must not be empty")
	}
	if fn == nil {
		return uuid.Nil, fmt.Errorf("action %q: nil callback", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.actions[id]; exists {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrDuplicateAction, id)
	}
	a := &Action{ID: id, Label: label, Menu: menu, Handle: uuid.New(), fn: fn}
	r.actions[id] = a
	r.byID[a.Handle] = a
	r.order = append(r.order, id)
	r.logger.Debug("action created", "id", id, "handle", a.Handle)
	return a.Handle, nil
}

// Trigger delivers a trigger to the action with the given id.
func (r *Registry) Trigger(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, id)
	}
	r.deliver(a)
	return nil
}

// TriggerHandle delivers a trigger to the action owning handle.
func (r *Registry) TriggerHandle(handle uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[handle]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, handle)
	}
	r.deliver(a)
	return nil
}

// deliver runs the callback, containing any panic so one misbehaving action
// cannot take the host down.
func (r *Registry) deliver(a *Action) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("action panicked", "id", a.ID, "panic", v)
		}
	}()
	r.logger.Debug("action triggered", "id", a.ID)
	a.fn(a.Handle)
}

// Get returns a copy of the action with the given id.
func (r *Registry) Get(id string) (Action, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actions[id]
	if !ok {
		return Action{}, false
	}
	return *a, true
}

// List returns the actions in creation order.
func (r *Registry) List() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Action, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.actions[id])
	}
	return out
}

// IDs returns the sorted action ids.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := append([]string(nil), r.order...)
	sort.Strings(ids)
	return ids
}

// Exclusive runs fn while no trigger is being delivered. fn must not call
// back into the registry.
func (r *Registry) Exclusive(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}
