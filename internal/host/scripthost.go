package host

import (
	"fmt"

	"github.com/joeycumines/ten-slots/internal/activation"
)

// ScriptHost exposes the workspace to user scripts.
type ScriptHost struct {
	Directory *PresetDirectory
	Window    activation.Window
	Notifier  activation.Notifier
}

func (h *ScriptHost) Notify(text string) {
	h.Notifier.MessageBox(text)
}

func (h *ScriptHost) Presets() []string {
	return h.Directory.Names()
}

func (h *ScriptHost) ActivePreset() (string, bool) {
	view, err := h.Window.ActiveView()
	if err != nil {
		return "", false
	}
	r, ok := view.CurrentResource()
	if !ok {
		return "", false
	}
	return r.Name(), true
}

func (h *ScriptHost) ActivatePreset(name string) error {
	r, ok := h.Directory.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	view, err := h.Window.ActiveView()
	if err != nil {
		return fmt.Errorf("%w: %v", activation.ErrNoContext, err)
	}
	return view.ActivateResource(r)
}
