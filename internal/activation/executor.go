package activation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/message"

	"github.com/joeycumines/ten-slots/internal/i18n"
	"github.com/joeycumines/ten-slots/internal/slot"
)

// Executor runs the script assigned to a slot.
//
// Every outcome ends in exactly one message box: the script ran, the slot is
// unassigned, or the script failed with the given text. A failing script
// never affects other slots or later activations.
type Executor struct {
	slots    *slot.Registry
	runner   ScriptRunner
	notifier Notifier
	logger   *slog.Logger
	printer  *message.Printer
	timeout  time.Duration
}

// NewExecutor returns an Executor running scripts through runner.
func NewExecutor(slots *slot.Registry, runner ScriptRunner, notifier Notifier, opts ...Option) *Executor {
	o := resolveOptions(opts)
	return &Executor{
		slots:    slots,
		runner:   runner,
		notifier: notifier,
		logger:   o.logger,
		printer:  o.printer,
	}
}

// SetTimeout bounds each script run. Zero disables the bound.
func (e *Executor) SetTimeout(d time.Duration) { e.timeout = d }

// Timeout returns the per-run bound, zero when unbounded.
func (e *Executor) Timeout() time.Duration { return e.timeout }

// Activate runs the script assigned to the slot at index and reports the
// outcome through the notifier. It reports whether the script ran
// successfully.
func (e *Executor) Activate(ctx context.Context, index int) bool {
	path, ok := e.slots.Assignment(index)
	if !ok {
		e.notifier.MessageBox(e.printer.Sprintf(i18n.MsgScriptUnassigned))
		return false
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := e.run(ctx, path); err != nil {
		e.logger.Warn("script failed", "path", path, "error", err, "elapsed", time.Since(start))
		e.notifier.MessageBox(err.Error())
		return false
	}

	e.logger.Info("script executed", "path", path, "elapsed", time.Since(start))
	e.notifier.MessageBox(e.printer.Sprintf(i18n.MsgScriptExecuted, path))
	return true
}

func (e *Executor) run(ctx context.Context, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script %s panicked: %v", path, r)
		}
	}()
	return e.runner.Run(ctx, path)
}
