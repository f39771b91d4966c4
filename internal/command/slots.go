package command

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/joeycumines/ten-slots/internal/extension"
	"github.com/joeycumines/ten-slots/internal/i18n"
)

// ActionsCommand lists the registered actions and what each slot holds.
type ActionsCommand struct {
	*BaseCommand
	app  *App
	json bool
}

// NewActionsCommand creates a new actions command.
func NewActionsCommand(app *App) *ActionsCommand {
	return &ActionsCommand{
		BaseCommand: NewBaseCommand(
			"actions",
			"List actions and their slot assignments",
			"actions [options]",
		),
		app: app,
	}
}

// SetupFlags configures the flags for the actions command.
func (c *ActionsCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.json, "json", false, "Print JSON instead of a table")
}

type actionRow struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Assigned string `json:"assigned,omitempty"`
}

// Execute lists the actions.
func (c *ActionsCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return usageError(c, stderr, "unexpected arguments: %v", args)
	}

	assigned := make(map[string]string)
	collect := func(prefix string, labels, snapshot []string) {
		for i, label := range labels {
			assigned[prefix+label] = snapshot[i]
		}
	}
	collect(extension.PresetActionPrefix, c.app.Brushes.Slots().Labels(), c.app.Brushes.Slots().Snapshot())
	collect(extension.ScriptActionPrefix, c.app.Scripts.Slots().Labels(), c.app.Scripts.Slots().Snapshot())

	var rows []actionRow
	for _, a := range c.app.Actions.List() {
		rows = append(rows, actionRow{ID: a.ID, Label: a.Label, Assigned: assigned[a.ID]})
	}

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	unassigned := c.app.Printer.Sprintf(i18n.MsgUnassigned)
	w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ACTION\tLABEL\tASSIGNED")
	for _, r := range rows {
		value := r.Assigned
		if _, isSlot := assigned[r.ID]; isSlot && value == "" {
			value = unassigned
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Label, value)
	}
	_, _ = fmt.Fprintf(w, "\ntoggle to previous preset: %s\n", onOff(c.app.Brushes.Switcher().Toggle()))
	return w.Flush()
}

// RunCommand triggers actions, the way pressing their shortcuts would. The
// previous brush preset is remembered only for the life of the process, so
// toggling back needs the same id twice within one invocation.
type RunCommand struct {
	*BaseCommand
	app *App
}

// NewRunCommand creates a new run command.
func NewRunCommand(app *App) *RunCommand {
	return &RunCommand{
		BaseCommand: NewBaseCommand(
			"run",
			"Trigger one or more actions in order",
			"run <action-id> [action-id...]  (toggle-to-previous only spans one invocation)",
		),
		app: app,
	}
}

// Execute triggers each action. Unknown ids fail before anything runs.
func (c *RunCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return usageError(c, stderr, "no action given")
	}
	for _, id := range args {
		if _, ok := c.app.Actions.Get(id); !ok {
			_, _ = fmt.Fprintf(stderr, "Unknown action: %s\n", id)
			_, _ = fmt.Fprintln(stderr, "Use 'tenslots actions' to list actions.")
			return fmt.Errorf("unknown action: %s", id)
		}
	}
	for _, id := range args {
		if err := c.app.Actions.Trigger(id); err != nil {
			return err
		}
	}
	return nil
}

// AssignCommand assigns a resource to one slot.
type AssignCommand struct {
	*BaseCommand
	app *App
}

// NewAssignCommand creates a new assign command.
func NewAssignCommand(app *App) *AssignCommand {
	return &AssignCommand{
		BaseCommand: NewBaseCommand(
			"assign",
			"Assign a brush preset or script to a slot",
			"assign brushes|scripts <slot> <preset-or-script>",
		),
		app: app,
	}
}

// Execute assigns and persists.
func (c *AssignCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) != 3 {
		return usageError(c, stderr, "expected 3 arguments, got %d", len(args))
	}
	return assignSlot(c, c.app, args[0], args[1], args[2], stdout, stderr)
}

// UnassignCommand clears one slot.
type UnassignCommand struct {
	*BaseCommand
	app *App
}

// NewUnassignCommand creates a new unassign command.
func NewUnassignCommand(app *App) *UnassignCommand {
	return &UnassignCommand{
		BaseCommand: NewBaseCommand(
			"unassign",
			"Clear a brush preset or script slot",
			"unassign brushes|scripts <slot>",
		),
		app: app,
	}
}

// Execute clears and persists.
func (c *UnassignCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) != 2 {
		return usageError(c, stderr, "expected 2 arguments, got %d", len(args))
	}
	return assignSlot(c, c.app, args[0], args[1], "", stdout, stderr)
}

func assignSlot(cmd Command, app *App, set, label, id string, stdout, stderr io.Writer) error {
	owner, ok := app.owner(set)
	if !ok {
		return usageError(cmd, stderr, "unknown slot set %q", set)
	}
	if set == "scripts" && id != "" {
		abs, err := filepath.Abs(id)
		if err != nil {
			return err
		}
		id = abs
	}
	if err := owner.Assign(label, id); err != nil {
		_, _ = fmt.Fprintf(stderr, "Cannot assign slot %s: %v\n", label, err)
		return err
	}
	if id == "" {
		_, _ = fmt.Fprintf(stdout, "%s slot %s cleared\n", set, label)
	} else {
		_, _ = fmt.Fprintf(stdout, "%s slot %s = %s\n", set, label, id)
	}
	return nil
}

// ToggleCommand shows or sets toggle-to-previous for brush presets.
type ToggleCommand struct {
	*BaseCommand
	app *App
}

// NewToggleCommand creates a new toggle command.
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{
		BaseCommand: NewBaseCommand(
			"toggle",
			"Show or set whether a second press restores the previous preset",
			"toggle [on|off]",
		),
		app: app,
	}
}

// Execute shows or sets the flag.
func (c *ToggleCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	switch len(args) {
	case 0:
		_, _ = fmt.Fprintln(stdout, onOff(c.app.Brushes.Switcher().Toggle()))
		return nil
	case 1:
	default:
		return usageError(c, stderr, "unexpected arguments: %v", args[1:])
	}

	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
	default:
		return usageError(c, stderr, "expected on or off, got %q", args[0])
	}
	if err := c.app.Brushes.SetToggle(enabled); err != nil {
		_, _ = fmt.Fprintln(stderr, c.app.Printer.Sprintf(i18n.MsgSettingsSaveError, err))
		return err
	}
	_, _ = fmt.Fprintln(stdout, onOff(enabled))
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// EditCommand opens the terminal assignment editor.
type EditCommand struct {
	*BaseCommand
	app *App
	in  io.Reader
}

// NewEditCommand creates a new edit command reading keys from in.
func NewEditCommand(app *App, in io.Reader) *EditCommand {
	return &EditCommand{
		BaseCommand: NewBaseCommand(
			"edit",
			"Edit slot assignments interactively",
			"edit brushes|scripts",
		),
		app: app,
		in:  in,
	}
}

// Execute runs the editor through the editor action, so it behaves exactly
// like the ten_brushes and ten_scripts menu entries.
func (c *EditCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) != 1 {
		return usageError(c, stderr, "expected brushes or scripts")
	}
	var id string
	switch args[0] {
	case "brushes":
		id = extension.BrushesEditorAction
	case "scripts":
		id = extension.ScriptsEditorAction
	default:
		return usageError(c, stderr, "unknown slot set %q", args[0])
	}

	c.app.EnableEditor(ctx, c.in, stdout)
	c.app.Notices.Drain()
	if err := c.app.Actions.Trigger(id); err != nil {
		return err
	}
	// the failure was already shown as a notice
	if len(c.app.Notices.Drain()) > 0 {
		return errEditorFailed
	}
	return nil
}

var errEditorFailed = errors.New("assignment editor failed")
