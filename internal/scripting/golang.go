package scripting

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// HostImportPath is the import path under which Go scripts reach the host.
const HostImportPath = "tenslots/host"

// GoRunner runs Go source files on the yaegi interpreter.
//
// A script is an ordinary package main file. Evaluating it runs its init
// functions and, when present, main. Scripts may not start goroutines: a
// panic on a goroutine the interpreter did not start cannot be recovered
// and would take the host down with it.
type GoRunner struct {
	host   Host
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewGoRunner returns a GoRunner. host may be nil, in which case importing
// "tenslots/host" fails.
func NewGoRunner(host Host, stdout, stderr io.Writer, logger *slog.Logger) *GoRunner {
	if logger == nil {
		logger = slog.Default()
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &GoRunner{host: host, stdout: stdout, stderr: stderr, logger: logger}
}

// Run evaluates the file in a fresh interpreter. Cancelling ctx aborts it.
func (r *GoRunner) Run(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	if err := checkSource(path); err != nil {
		return &ScriptError{Path: path, Err: err}
	}

	in := interp.New(interp.Options{
		Stdin:  eofReader{},
		Stdout: r.stdout,
		Stderr: r.stderr,
	})
	if err := in.Use(stdlib.Symbols); err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	if r.host != nil {
		if err := in.Use(hostExports(r.host)); err != nil {
			return &ScriptError{Path: path, Err: err}
		}
	}

	if _, err := in.EvalPathWithContext(ctx, path); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			r.logger.Warn("script interrupted", "path", path, "error", err)
		}
		return &ScriptError{Path: path, Err: err}
	}
	return nil
}

// ErrGoroutine is returned for scripts that start goroutines.
var ErrGoroutine = errors.New("scripts may not start goroutines")

// checkSource rejects go statements and time.AfterFunc, the two ways a
// script could run code outside the goroutine that recovers its panics.
func checkSource(path string) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return err
	}
	var found error
	ast.Inspect(file, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.GoStmt:
			found = fmt.Errorf("%s: %w", fset.Position(n.Pos()), ErrGoroutine)
		case *ast.SelectorExpr:
			if n.Sel.Name == "AfterFunc" {
				found = fmt.Errorf("%s: %w (time.AfterFunc)", fset.Position(n.Pos()), ErrGoroutine)
			}
		}
		return found == nil
	})
	return found
}

func hostExports(host Host) interp.Exports {
	return interp.Exports{
		HostImportPath + "/host": {
			"Notify":         reflect.ValueOf(host.Notify),
			"Presets":        reflect.ValueOf(host.Presets),
			"ActivePreset":   reflect.ValueOf(host.ActivePreset),
			"ActivatePreset": reflect.ValueOf(host.ActivatePreset),
		},
	}
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
