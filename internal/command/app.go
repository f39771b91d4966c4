package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/message"

	"github.com/joeycumines/ten-slots/internal/action"
	"github.com/joeycumines/ten-slots/internal/config"
	"github.com/joeycumines/ten-slots/internal/editor"
	"github.com/joeycumines/ten-slots/internal/extension"
	"github.com/joeycumines/ten-slots/internal/host"
	"github.com/joeycumines/ten-slots/internal/i18n"
	"github.com/joeycumines/ten-slots/internal/scripting"
	"github.com/joeycumines/ten-slots/internal/settings"
)

// BackendEnvVar selects the settings backend ("file" or "memory").
const BackendEnvVar = "TENSLOTS_BACKEND"

// Options configure NewApp.
type Options struct {
	// ConfigPath is the settings file. Required.
	ConfigPath string
	// Config is the already loaded settings file; nil loads ConfigPath.
	Config *config.Config
	// Backend names the settings backend; "" means "file".
	Backend string
	// Out receives notices and script console output.
	Out    io.Writer
	Logger *slog.Logger
}

// App is the reference host: a settings file, a preset directory, a
// workspace with one view, and both extensions with their actions
// registered.
type App struct {
	ConfigPath string
	Config     *config.Config
	Settings   settings.Backend
	Presets    *host.PresetDirectory
	Workspace  *host.Workspace
	Notices    *host.Recorder
	Actions    *action.Registry
	Dispatcher *scripting.Dispatcher
	Brushes    *extension.Brushes
	Scripts    *extension.Scripts
	Printer    *message.Printer
	Logger     *slog.Logger
	ScriptsDir string
}

// NewApp assembles the host and runs both extensions through setup and
// action creation. Scripts run under ctx.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("no settings file path")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.LoadFromPath(opts.ConfigPath); err != nil {
			return nil, err
		}
	}
	backendName := opts.Backend
	if backendName == "" {
		backendName = "file"
	}
	backend, err := settings.Open(backendName, opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}

	schema := config.DefaultSchema()
	baseDir := filepath.Dir(opts.ConfigPath)
	a := &App{
		ConfigPath: opts.ConfigPath,
		Config:     cfg,
		Settings:   backend,
		Presets:    host.NewPresetDirectory(dirOption(schema.Resolve(cfg, "", "presets.dir"), baseDir, "presets")),
		Notices:    &host.Recorder{Next: host.NewTerminalNotifier(out)},
		Actions:    action.NewRegistry(logger),
		Printer:    i18n.NewPrinter(schema.Resolve(cfg, "", "lang")),
		Logger:     logger,
		ScriptsDir: dirOption(schema.Resolve(cfg, "", "scripts.dir"), baseDir, "scripts"),
	}
	a.Workspace = host.NewWorkspace(backend, a.Presets)

	scriptHost := &host.ScriptHost{Directory: a.Presets, Window: a.Workspace, Notifier: a.Notices}
	a.Dispatcher = scripting.NewDispatcher()
	a.Dispatcher.Register(".js", scripting.NewJSRunner(scriptHost, out, out, logger))
	a.Dispatcher.Register(".go", scripting.NewGoRunner(scriptHost, out, out, logger))

	extHost := extension.Host{
		Settings: backend,
		Actions:  a.Actions,
		Notifier: a.Notices,
		Printer:  a.Printer,
		Logger:   logger,
	}

	a.Brushes = extension.NewBrushes(extHost, a.Presets, a.Workspace)
	a.Brushes.Setup()
	if err := a.Brushes.CreateActions(); err != nil {
		return nil, err
	}

	a.Scripts = extension.NewScripts(ctx, extHost, a.Dispatcher)
	a.Scripts.SetCandidates(a.scriptCandidates)
	if d, err := schema.ResolveDuration(cfg, "", "scripts.timeout"); err != nil {
		logger.Warn("ignoring invalid scripts.timeout", "error", err)
	} else {
		a.Scripts.SetTimeout(d)
	}
	a.Scripts.Setup()
	if err := a.Scripts.CreateActions(); err != nil {
		return nil, err
	}

	logger.Debug("host ready",
		"settings", opts.ConfigPath,
		"backend", backendName,
		"presets", a.Presets.Dir(),
		"scripts", a.ScriptsDir)
	return a, nil
}

// EnableEditor makes the editor actions open the terminal assignment editor
// on in/out.
func (a *App) EnableEditor(ctx context.Context, in io.Reader, out io.Writer) {
	unassigned := a.Printer.Sprintf(i18n.MsgUnassigned)
	edit := func(session editor.Session) {
		if _, err := editor.Run(ctx, session, in, out, unassigned); err != nil {
			a.Logger.Warn("assignment editor failed", "title", session.Title(), "error", err)
			a.Notices.MessageBox(err.Error())
		}
	}
	a.Brushes.SetEditHandler(edit)
	a.Scripts.SetEditHandler(edit)
}

// Reload re-reads the settings file, if the backend is file based, and
// refreshes both extensions. It waits for any running trigger.
func (a *App) Reload() error {
	var err error
	a.Actions.Exclusive(func() {
		if b, ok := a.Settings.(*settings.ConfigBackend); ok {
			if err = b.Reload(); err != nil {
				return
			}
			a.Config = b.Config()
		}
		a.Brushes.Reload()
		a.Scripts.Reload()
	})
	if err != nil {
		return err
	}
	a.Logger.Info("settings reloaded", "path", a.ConfigPath)
	return nil
}

// owner returns the extension named "brushes" or "scripts".
func (a *App) owner(name string) (slotOwner, bool) {
	switch name {
	case "brushes":
		return a.Brushes, true
	case "scripts":
		return a.Scripts, true
	}
	return nil, false
}

// slotOwner is the part of both extensions the slot commands use.
type slotOwner interface {
	Assign(label, id string) error
	Session() editor.Session
}

// scriptCandidates lists the runnable files in the scripts directory.
func (a *App) scriptCandidates() []string {
	entries, err := os.ReadDir(a.ScriptsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			a.Logger.Warn("cannot list scripts", "dir", a.ScriptsDir, "error", err)
		}
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !a.Dispatcher.Supports(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(a.ScriptsDir, e.Name()))
	}
	sort.Strings(out)
	return out
}

// dirOption resolves a directory option: empty means base/def, and a
// leading ~ is the home directory.
func dirOption(v, base, def string) string {
	if v == "" {
		return filepath.Join(base, def)
	}
	if v == "~" || len(v) > 1 && v[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, v[1:])
		}
	}
	return v
}
