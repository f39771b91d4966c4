package command

import (
	"context"
	"flag"
	"io"

	"github.com/joeycumines/ten-slots/internal/mcpserver"
	"github.com/joeycumines/ten-slots/internal/settings"
)

// ServeCommand exposes every action as an MCP tool over stdio.
type ServeCommand struct {
	*BaseCommand
	app     *App
	version string
	watch   bool
}

// NewServeCommand creates a new serve command.
func NewServeCommand(app *App, version string) *ServeCommand {
	return &ServeCommand{
		BaseCommand: NewBaseCommand(
			"serve",
			"Serve actions as MCP tools over stdin/stdout",
			"serve [options]",
		),
		app:     app,
		version: version,
	}
}

// SetupFlags configures the flags for the serve command.
func (c *ServeCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.watch, "watch", true, "Reload assignments when the settings file changes")
}

// Execute serves until the client disconnects or ctx is cancelled. Notices
// and script output must not reach stdout, which carries the protocol; the
// App is expected to write them elsewhere.
func (c *ServeCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return usageError(c, stderr, "unexpected arguments: %v", args)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if _, ok := c.app.Settings.(*settings.ConfigBackend); ok && c.watch {
		go func() {
			err := watchFile(ctx, c.app.ConfigPath, c.app.Logger, func() {
				if err := c.app.Reload(); err != nil {
					c.app.Logger.Warn("settings reload failed", "error", err)
				}
			})
			if err != nil {
				c.app.Logger.Warn("not watching settings file", "error", err)
			}
		}()
	}

	return mcpserver.New(c.app.Actions, c.app.Notices, c.version, c.app.Logger).Serve(ctx)
}
