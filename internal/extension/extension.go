// Package extension wires slots, persistence, actions and the activation
// engine into the two long-lived slot owners: Brushes and Scripts.
//
// Both follow the host's extension lifecycle: Setup reads the persisted
// assignments, CreateActions registers one action per slot plus the editor
// action, triggers are delivered through the action registry, and
// WriteSettings persists an explicit save.
package extension

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/text/message"

	"github.com/joeycumines/ten-slots/internal/action"
	"github.com/joeycumines/ten-slots/internal/activation"
	"github.com/joeycumines/ten-slots/internal/editor"
	"github.com/joeycumines/ten-slots/internal/i18n"
	"github.com/joeycumines/ten-slots/internal/settings"
	"github.com/joeycumines/ten-slots/internal/slot"
)

// EditorMenu is the menu location of the editor-opening actions.
const EditorMenu = "tools/scripts"

// Host is what the extensions consume from the host application.
type Host struct {
	Settings settings.Backend
	Actions  *action.Registry
	Notifier activation.Notifier
	// Printer formats user-visible text; nil prints English.
	Printer *message.Printer
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (h Host) printer() *message.Printer {
	if h.Printer == nil {
		return i18n.Default()
	}
	return h.Printer
}

func (h Host) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// EditFunc opens an assignment editor for session. It runs on the trigger
// path of the editor action.
type EditFunc func(session editor.Session)

// owner is the part shared by both extensions: a slot set persisted under
// one settings key, with one action per slot.
type owner struct {
	host    Host
	slots   *slot.Registry
	store   *slot.Store
	group   string
	key     string
	loaded  []string
	onEdit  EditFunc
	created bool
}

func newOwner(host Host, labels []string, group, key string) owner {
	return owner{
		host:  host,
		slots: slot.NewRegistry(labels),
		store: slot.NewStore(host.Settings),
		group: group,
		key:   key,
	}
}

func (o *owner) readAssignments() {
	o.loaded = o.store.Load(o.group, o.key)
}

func (o *owner) writeAssignments() error {
	return o.store.Save(o.group, o.key, o.slots.Snapshot())
}

// createActions registers the editor action and one action per slot, binds
// the slot handles in index order, and restores the assignments read by
// Setup.
func (o *owner) createActions(editorID, editorLabel, slotIDPrefix, slotLabelFormat string, valid func(string) bool, trigger func(index int), session func() editor.Session) error {
	if o.created {
		return fmt.Errorf("actions for %s already created", editorID)
	}
	p := o.host.printer()

	if _, err := o.host.Actions.Create(editorID, p.Sprintf(editorLabel), EditorMenu, func(uuid.UUID) {
		if o.onEdit == nil {
			o.host.logger().Warn("no assignment editor available", "action", editorID)
			return
		}
		o.onEdit(session())
	}); err != nil {
		return err
	}

	for i, label := range o.slots.Labels() {
		handle, err := o.host.Actions.Create(slotIDPrefix+label, p.Sprintf(slotLabelFormat, label), "", func(h uuid.UUID) {
			index, ok := o.slots.IndexOf(h)
			if !ok {
				o.host.logger().Error("trigger for unbound handle", "handle", h)
				return
			}
			trigger(index)
		})
		if err != nil {
			return err
		}
		if err := o.slots.Bind(i, handle); err != nil {
			return err
		}
	}

	o.slots.Restore(o.loaded, valid)
	o.created = true
	return nil
}

// reload re-reads the persisted assignments. Slots are only touched once
// actions exist; before that the next createActions picks them up.
func (o *owner) reload(valid func(string) bool) {
	o.readAssignments()
	if o.created {
		o.slots.Restore(o.loaded, valid)
	}
}

// assign sets one slot by label and persists every assignment.
func (o *owner) assign(label, id string, valid func(string) bool) error {
	index, ok := o.slots.IndexOfLabel(label)
	if !ok {
		return fmt.Errorf("%w: no slot labelled %q", slot.ErrIndexOutOfRange, label)
	}
	if id != "" && valid != nil && !valid(id) {
		return fmt.Errorf("%q is not a valid resource", id)
	}
	if err := o.slots.Assign(index, id); err != nil {
		return err
	}
	return o.writeAssignments()
}

// commit applies an editor result: restore, then save.
func (o *owner) commit(assignments []string, valid func(string) bool) error {
	o.slots.Restore(assignments, valid)
	return o.writeAssignments()
}

// orBackground returns ctx, or context.Background() when ctx is nil.
func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
