package host

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joeycumines/ten-slots/internal/activation"
	"github.com/joeycumines/ten-slots/internal/config"
	"github.com/joeycumines/ten-slots/internal/settings"
)

// ErrNoView is returned by ActiveView when the workspace is closed.
var ErrNoView = errors.New("no view is open")

// Workspace is the reference host's window. It has one view whose active
// preset is stored in the settings backend, so it survives between runs and
// is shared by every process using the same settings file.
type Workspace struct {
	mu       sync.Mutex
	open     bool
	view     *View
	presets  *PresetDirectory
	settings settings.Backend
}

// NewWorkspace returns an open workspace.
func NewWorkspace(backend settings.Backend, presets *PresetDirectory) *Workspace {
	w := &Workspace{open: true, presets: presets, settings: backend}
	w.view = &View{workspace: w}
	return w
}

// ActiveView returns the view, or ErrNoView when the workspace is closed.
func (w *Workspace) ActiveView() (activation.View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.open {
		return nil, ErrNoView
	}
	return w.view, nil
}

// SetOpen opens or closes the workspace's view.
func (w *Workspace) SetOpen(open bool) {
	w.mu.Lock()
	w.open = open
	w.mu.Unlock()
}

// View is the workspace's single view.
type View struct {
	workspace *Workspace
}

// CurrentResource returns the stored active preset if it still exists.
func (v *View) CurrentResource() (activation.Resource, bool) {
	name := v.workspace.settings.ReadSetting(config.HostGroup, config.ActivePresetKey, "")
	if name == "" {
		return nil, false
	}
	return v.workspace.presets.Lookup(name)
}

// ActivateResource stores r as the active preset.
func (v *View) ActivateResource(r activation.Resource) error {
	if _, ok := v.workspace.presets.Lookup(r.Name()); !ok {
		return fmt.Errorf("preset %q does not exist", r.Name())
	}
	return v.workspace.settings.WriteSetting(config.HostGroup, config.ActivePresetKey, r.Name())
}
