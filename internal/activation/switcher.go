package activation

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/message"

	"github.com/joeycumines/ten-slots/internal/i18n"
	"github.com/joeycumines/ten-slots/internal/slot"
)

// ConfirmDuration is how long the "selected" confirmation stays visible.
const ConfirmDuration = time.Second

// Switcher activates the resource assigned to a slot on the active view.
//
// With toggle enabled, activating the slot whose resource is already active
// restores the resource that was active before it, so pressing the same
// shortcut twice returns to where the user started. The previous resource is
// shared by every slot of the Switcher: the last activation wins.
//
// A Switcher is not safe for concurrent use.
type Switcher struct {
	slots     *slot.Registry
	resources Resources
	window    Window
	notifier  Notifier
	logger    *slog.Logger
	printer   *message.Printer

	toggle   bool
	previous Resource
}

// NewSwitcher returns a Switcher with toggle enabled.
func NewSwitcher(slots *slot.Registry, resources Resources, window Window, notifier Notifier, opts ...Option) *Switcher {
	o := resolveOptions(opts)
	return &Switcher{
		slots:     slots,
		resources: resources,
		window:    window,
		notifier:  notifier,
		logger:    o.logger,
		printer:   o.printer,
		toggle:    true,
	}
}

// Toggle reports whether toggle-to-previous is enabled.
func (s *Switcher) Toggle() bool { return s.toggle }

// SetToggle enables or disables toggle-to-previous.
func (s *Switcher) SetToggle(enabled bool) { s.toggle = enabled }

// Previous returns the name of the recorded previous resource.
func (s *Switcher) Previous() (string, bool) {
	if s.previous == nil {
		return "", false
	}
	return s.previous.Name(), true
}

// Activate switches the active view to the resource assigned to the slot at
// index.
//
// An unassigned slot, or one whose resource no longer exists, shows a single
// notice and changes nothing. ErrNoContext is returned, wrapped, when the
// host has no active view.
func (s *Switcher) Activate(index int) error {
	label := s.label(index)

	name, ok := s.slots.Assignment(index)
	var target Resource
	if ok {
		target, ok = s.resources.Lookup(name)
		if !ok {
			s.logger.Debug("stale preset assignment", "slot", label, "preset", name)
		}
	}
	if !ok {
		s.notifier.FloatingMessage(s.printer.Sprintf(i18n.MsgPresetUnassigned, label), ConfirmDuration)
		return nil
	}

	view, err := s.window.ActiveView()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoContext, err)
	}
	if view == nil {
		return ErrNoContext
	}

	current, hasCurrent := view.CurrentResource()
	next, previous := target, s.previous
	switch {
	case s.toggle && hasCurrent && current.Name() == target.Name():
		if s.previous != nil {
			next = s.previous
		} else {
			next = current
		}
	case hasCurrent && current.Name() != target.Name():
		previous = current
	}

	if err := view.ActivateResource(next); err != nil {
		return fmt.Errorf("activating %q: %w", next.Name(), err)
	}
	s.previous = previous

	s.logger.Debug("preset activated", "slot", label, "preset", next.Name())
	s.notifier.FloatingMessage(s.printer.Sprintf(i18n.MsgPresetSelected, next.Name()), ConfirmDuration)
	return nil
}

func (s *Switcher) label(index int) string {
	if sl, err := s.slots.Slot(index); err == nil {
		return sl.Label
	}
	return fmt.Sprint(index)
}
