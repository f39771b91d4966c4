package extension

import (
	"context"
	"time"

	"github.com/joeycumines/ten-slots/internal/activation"
	"github.com/joeycumines/ten-slots/internal/config"
	"github.com/joeycumines/ten-slots/internal/editor"
	"github.com/joeycumines/ten-slots/internal/i18n"
	"github.com/joeycumines/ten-slots/internal/slot"
)

// Action ids of the scripts extension.
const (
	ScriptsEditorAction = "ten_scripts"
	ScriptActionPrefix  = "execute_script_"
)

// Scripts assigns script files to ten shortcuts.
type Scripts struct {
	owner
	ctx        context.Context
	executor   *activation.Executor
	candidates func() []string
}

// NewScripts returns the scripts extension. Scripts run through runner under
// ctx, which may be nil.
func NewScripts(ctx context.Context, host Host, runner activation.ScriptRunner) *Scripts {
	s := &Scripts{
		owner: newOwner(host, slot.ScriptLabels, config.ScriptsGroup, config.ScriptsKey),
		ctx:   orBackground(ctx),
	}
	s.executor = activation.NewExecutor(s.slots, runner, host.Notifier,
		activation.WithLogger(host.logger()),
		activation.WithPrinter(host.printer()))
	return s
}

// Setup reads the persisted assignments.
func (s *Scripts) Setup() {
	s.readAssignments()
}

// CreateActions registers ten_scripts and execute_script_1..10. Persisted
// paths are kept as they are; a missing file fails when it runs.
func (s *Scripts) CreateActions() error {
	return s.createActions(ScriptsEditorAction, i18n.MsgTenScripts, ScriptActionPrefix, i18n.MsgExecuteScript,
		nil, s.activate, func() editor.Session { return s.Session() })
}

// WriteSettings persists the assignments.
func (s *Scripts) WriteSettings() error {
	return s.writeAssignments()
}

// Reload re-reads the assignments after the settings changed underneath.
func (s *Scripts) Reload() { s.reload(nil) }

// SetEditHandler sets what the ten_scripts action opens.
func (s *Scripts) SetEditHandler(fn EditFunc) { s.onEdit = fn }

// SetCandidates sets the source of script paths offered by the editor.
func (s *Scripts) SetCandidates(fn func() []string) { s.candidates = fn }

// SetTimeout bounds every script run; zero means no bound.
func (s *Scripts) SetTimeout(d time.Duration) { s.executor.SetTimeout(d) }

// Slots returns the slot registry.
func (s *Scripts) Slots() *slot.Registry { return s.slots }

// Executor returns the script executor.
func (s *Scripts) Executor() *activation.Executor { return s.executor }

// Assign sets the script of the slot labelled label ("" clears it) and
// persists the assignments.
func (s *Scripts) Assign(label, path string) error {
	return s.assign(label, path, nil)
}

// Session returns an editor session over the script slots.
func (s *Scripts) Session() editor.Session { return &scriptsSession{s} }

func (s *Scripts) activate(index int) {
	s.executor.Activate(s.ctx, index)
}

type scriptsSession struct{ s *Scripts }

func (ss *scriptsSession) Title() string      { return ss.s.host.printer().Sprintf(i18n.MsgTenScripts) }
func (ss *scriptsSession) Labels() []string   { return ss.s.slots.Labels() }
func (ss *scriptsSession) Snapshot() []string { return ss.s.slots.Snapshot() }

func (ss *scriptsSession) Resources() []string {
	if ss.s.candidates == nil {
		return nil
	}
	return ss.s.candidates()
}

func (ss *scriptsSession) Commit(assignments []string) error {
	return ss.s.commit(assignments, nil)
}
