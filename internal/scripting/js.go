package scripting

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
)

// HostModule is the name scripts require to reach the host.
const HostModule = "tenslots:host"

// JSRunner runs JavaScript files on goja.
type JSRunner struct {
	registry *require.Registry
	logger   *slog.Logger
}

// NewJSRunner returns a JSRunner. host may be nil, in which case
// require("tenslots:host") fails. console output is written to stdout and
// stderr.
func NewJSRunner(host Host, stdout, stderr io.Writer, logger *slog.Logger) *JSRunner {
	if logger == nil {
		logger = slog.Default()
	}
	registry := require.NewRegistry()
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(&consolePrinter{
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}))
	if host != nil {
		registry.RegisterNativeModule(HostModule, requireHost(host))
	}
	return &JSRunner{registry: registry, logger: logger}
}

// Registry returns the require registry, for registering further native
// modules before the first run.
func (r *JSRunner) Registry() *require.Registry {
	return r.registry
}

// Run evaluates the script in a fresh runtime, then calls main if the
// script defines it, either as module.exports.main or as a global function.
// Cancelling ctx interrupts the script.
func (r *JSRunner) Run(ctx context.Context, path string) (err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	prg, err := goja.Compile(ModuleName, string(src), false)
	if err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &ScriptError{Path: path, Err: err}
	}

	vm := goja.New()
	r.registry.Enable(vm)
	console.Enable(vm)

	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()

	defer func() {
		if v := recover(); v != nil {
			err = &ScriptError{Path: path, Err: fmt.Errorf("panic: %v", v)}
		}
	}()

	module := vm.NewObject()
	exports := vm.NewObject()
	_ = module.Set("exports", exports)
	_ = vm.Set("module", module)
	_ = vm.Set("exports", exports)
	if abs, err := filepath.Abs(path); err == nil {
		_ = vm.Set("__filename", abs)
		_ = vm.Set("__dirname", filepath.Dir(abs))
	}

	if _, err := vm.RunProgram(prg); err != nil {
		return &ScriptError{Path: path, Err: err}
	}

	main, ok := lookupMain(vm, module)
	if !ok {
		r.logger.Debug("script has no main", "path", path)
		return nil
	}
	if _, err := main(goja.Undefined()); err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	return nil
}

func lookupMain(vm *goja.Runtime, module *goja.Object) (goja.Callable, bool) {
	if exports := module.Get("exports"); exports != nil && !goja.IsUndefined(exports) && !goja.IsNull(exports) {
		if fn, ok := goja.AssertFunction(exports.ToObject(vm).Get("main")); ok {
			return fn, true
		}
	}
	return goja.AssertFunction(vm.Get("main"))
}

// requireHost returns the loader for the tenslots:host module.
func requireHost(host Host) require.ModuleLoader {
	return func(runtime *goja.Runtime, module *goja.Object) {
		exports := module.Get("exports").(*goja.Object)

		// notify(text: string)
		_ = exports.Set("notify", func(call goja.FunctionCall) goja.Value {
			host.Notify(call.Argument(0).String())
			return goja.Undefined()
		})

		// presets(): string[]
		_ = exports.Set("presets", func(goja.FunctionCall) goja.Value {
			return runtime.ToValue(host.Presets())
		})

		// activePreset(): string | null
		_ = exports.Set("activePreset", func(goja.FunctionCall) goja.Value {
			name, ok := host.ActivePreset()
			if !ok {
				return goja.Null()
			}
			return runtime.ToValue(name)
		})

		// activatePreset(name: string), throws on failure
		_ = exports.Set("activatePreset", func(call goja.FunctionCall) goja.Value {
			if err := host.ActivatePreset(call.Argument(0).String()); err != nil {
				panic(runtime.NewGoError(err))
			}
			return goja.Undefined()
		})
	}
}

type consolePrinter struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func (p *consolePrinter) Log(s string) {
	p.logger.Debug("script console", "level", "log", "text", s)
	if p.stdout != nil {
		_, _ = fmt.Fprintln(p.stdout, s)
	}
}

func (p *consolePrinter) Warn(s string) {
	p.logger.Debug("script console", "level", "warn", "text", s)
	if p.stderr != nil {
		_, _ = fmt.Fprintln(p.stderr, s)
	}
}

func (p *consolePrinter) Error(s string) {
	p.logger.Debug("script console", "level", "error", "text", s)
	if p.stderr != nil {
		_, _ = fmt.Fprintln(p.stderr, s)
	}
}
