package extension

import (
	"errors"

	"github.com/joeycumines/ten-slots/internal/activation"
	"github.com/joeycumines/ten-slots/internal/config"
	"github.com/joeycumines/ten-slots/internal/editor"
	"github.com/joeycumines/ten-slots/internal/i18n"
	"github.com/joeycumines/ten-slots/internal/slot"
)

// Action ids of the brushes extension.
const (
	BrushesEditorAction = "ten_brushes"
	PresetActionPrefix  = "activate_preset_"
)

// Brushes assigns brush presets to ten shortcuts.
type Brushes struct {
	owner
	resources activation.Resources
	switcher  *activation.Switcher
}

// NewBrushes returns the brushes extension. resources and window are the
// host's preset directory and window.
func NewBrushes(host Host, resources activation.Resources, window activation.Window) *Brushes {
	b := &Brushes{
		owner:     newOwner(host, slot.PresetLabels, config.BrushesGroup, config.BrushesKey),
		resources: resources,
	}
	b.switcher = activation.NewSwitcher(b.slots, resources, window, host.Notifier,
		activation.WithLogger(host.logger()),
		activation.WithPrinter(host.printer()))
	return b
}

// Setup reads the persisted assignments and the toggle flag.
func (b *Brushes) Setup() {
	b.readAssignments()
	b.switcher.SetToggle(b.store.LoadFlag(config.BrushesGroup, config.BrushesToggleKey, true))
}

// CreateActions registers ten_brushes and activate_preset_1..0. Persisted
// presets that no longer exist are dropped.
func (b *Brushes) CreateActions() error {
	return b.createActions(BrushesEditorAction, i18n.MsgTenBrushes, PresetActionPrefix, i18n.MsgActivatePreset,
		b.valid, b.activate, func() editor.Session { return b.Session() })
}

// WriteSettings persists the assignments and the toggle flag.
func (b *Brushes) WriteSettings() error {
	if err := b.writeAssignments(); err != nil {
		return err
	}
	return b.store.SaveFlag(config.BrushesGroup, config.BrushesToggleKey, b.switcher.Toggle())
}

// Reload re-reads assignments and the toggle flag after the settings changed
// underneath. The previous preset is kept.
func (b *Brushes) Reload() {
	b.reload(b.valid)
	b.switcher.SetToggle(b.store.LoadFlag(config.BrushesGroup, config.BrushesToggleKey, true))
}

// SetEditHandler sets what the ten_brushes action opens.
func (b *Brushes) SetEditHandler(fn EditFunc) { b.onEdit = fn }

// Slots returns the slot registry.
func (b *Brushes) Slots() *slot.Registry { return b.slots }

// Switcher returns the preset switcher.
func (b *Brushes) Switcher() *activation.Switcher { return b.switcher }

// Assign sets the preset of the slot labelled label ("" clears it) and
// persists the assignments.
func (b *Brushes) Assign(label, preset string) error {
	return b.assign(label, preset, b.valid)
}

// SetToggle changes toggle-to-previous and persists it.
func (b *Brushes) SetToggle(enabled bool) error {
	b.switcher.SetToggle(enabled)
	return b.store.SaveFlag(config.BrushesGroup, config.BrushesToggleKey, enabled)
}

// Session returns an editor session over the preset slots.
func (b *Brushes) Session() editor.Session { return &brushesSession{b} }

func (b *Brushes) valid(name string) bool {
	_, ok := b.resources.Lookup(name)
	return ok
}

func (b *Brushes) activate(index int) {
	err := b.switcher.Activate(index)
	if err == nil {
		return
	}
	p := b.host.printer()
	b.host.logger().Warn("preset activation failed", "index", index, "error", err)
	if errors.Is(err, activation.ErrNoContext) {
		b.host.Notifier.MessageBox(p.Sprintf(i18n.MsgNoActiveView))
		return
	}
	name, _ := b.slots.Assignment(index)
	b.host.Notifier.MessageBox(p.Sprintf(i18n.MsgPresetFailed, name, err))
}

type brushesSession struct{ b *Brushes }

func (s *brushesSession) Title() string          { return s.b.host.printer().Sprintf(i18n.MsgTenBrushes) }
func (s *brushesSession) Labels() []string       { return s.b.slots.Labels() }
func (s *brushesSession) Snapshot() []string     { return s.b.slots.Snapshot() }
func (s *brushesSession) Resources() []string    { return s.b.resources.Names() }
func (s *brushesSession) Toggle() bool           { return s.b.switcher.Toggle() }
func (s *brushesSession) SetToggle(enabled bool) { s.b.switcher.SetToggle(enabled) }

func (s *brushesSession) ToggleLabel() string {
	return s.b.host.printer().Sprintf(i18n.MsgActivatePrevious)
}

func (s *brushesSession) Commit(assignments []string) error {
	s.b.slots.Restore(assignments, s.b.valid)
	return s.b.WriteSettings()
}
