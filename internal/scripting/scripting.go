// Package scripting loads and runs user scripts for the script slots.
//
// Every run starts from a fresh interpreter and loads the file under the
// fixed module name [ModuleName]; nothing a script defines survives into the
// next run. After the file has been evaluated, a function named main is
// invoked if the script defines one. A script without main has simply run
// its top level.
//
// JavaScript (.js) runs on goja with CommonJS require and console. Go (.go)
// runs on yaegi with the standard library available.
package scripting

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ModuleName is the synthetic name every script is loaded under.
const ModuleName = "users_script"

// ScriptError is returned for any failure loading or running a script.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e *ScriptError) Unwrap() error { return e.Err }

// Runner runs the script file at path.
type Runner interface {
	Run(ctx context.Context, path string) error
}

// Host is the part of the running host exposed to scripts.
type Host interface {
	// Notify shows text to the user.
	Notify(text string)
	// Presets lists the valid preset names.
	Presets() []string
	// ActivePreset returns the active preset of the active view.
	ActivePreset() (string, bool)
	// ActivatePreset makes the named preset active.
	ActivatePreset(name string) error
}

// Dispatcher picks a Runner by file extension.
type Dispatcher struct {
	runners map[string]Runner
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{runners: make(map[string]Runner)}
}

// Register routes files with extension ext (".js", ".go") to r.
func (d *Dispatcher) Register(ext string, r Runner) {
	d.runners[strings.ToLower(ext)] = r
}

// Extensions returns the registered extensions, sorted.
func (d *Dispatcher) Extensions() []string {
	exts := make([]string, 0, len(d.runners))
	for ext := range d.runners {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether path has a registered extension.
func (d *Dispatcher) Supports(path string) bool {
	_, ok := d.runners[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Run runs path with the runner registered for its extension.
func (d *Dispatcher) Run(ctx context.Context, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	r, ok := d.runners[ext]
	if !ok {
		return &ScriptError{Path: path, Err: fmt.Errorf("unsupported script type %q (supported: %s)", ext, strings.Join(d.Extensions(), ", "))}
	}
	return r.Run(ctx, path)
}
