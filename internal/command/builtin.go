package command

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/joeycumines/ten-slots/internal/config"
	"github.com/joeycumines/ten-slots/internal/i18n"
)

// HelpCommand displays help information for commands.
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command.
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(
			"help",
			"Display help information for commands",
			"help [command]",
		),
		registry: registry,
	}
}

// Execute displays help information.
func (c *HelpCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, "tenslots - ten brush preset and ten script shortcuts")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Usage: tenslots <command> [options] [args...]")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Available commands:")

		w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
		for _, name := range c.registry.List() {
			if cmd, err := c.registry.Get(name); err == nil {
				_, _ = fmt.Fprintf(w, "  %s\t%s\n", name, cmd.Description())
			}
		}
		_ = w.Flush()

		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Use 'tenslots help <command>' for more information about a specific command (includes flags).")
		return nil
	}

	cmd, err := c.registry.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		return err
	}

	_, _ = fmt.Fprintf(stdout, "Command: %s\n", cmd.Name())
	_, _ = fmt.Fprintf(stdout, "Description: %s\n", cmd.Description())
	_, _ = fmt.Fprintf(stdout, "Usage: tenslots %s\n", cmd.Usage())

	// Show command-specific flags (if any) by invoking SetupFlags on a temporary FlagSet
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	buf := &bytes.Buffer{}
	fs.SetOutput(buf)
	cmd.SetupFlags(fs)
	fs.PrintDefaults()
	if buf.Len() > 0 {
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Flags:")
		_, _ = fmt.Fprint(stdout, buf.String())
	}
	return nil
}

// VersionCommand displays version information.
type VersionCommand struct {
	*BaseCommand
	version string
}

// NewVersionCommand creates a new version command.
func NewVersionCommand(version string) *VersionCommand {
	return &VersionCommand{
		BaseCommand: NewBaseCommand(
			"version",
			"Display version information",
			"version",
		),
		version: version,
	}
}

// Execute displays version information.
func (c *VersionCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return usageError(c, stderr, "unexpected arguments: %v", args)
	}
	_, _ = fmt.Fprintf(stdout, "tenslots version %s\n", c.version)
	return nil
}

// ConfigCommand reads and writes the settings file.
type ConfigCommand struct {
	*BaseCommand
	app     *App
	section string
	showAll bool
}

// NewConfigCommand creates a new config command.
func NewConfigCommand(app *App) *ConfigCommand {
	return &ConfigCommand{
		BaseCommand: NewBaseCommand(
			"config",
			"Manage configuration settings",
			"config [options] [key] [value] | config validate | config schema",
		),
		app: app,
	}
}

// SetupFlags configures the flags for the config command.
func (c *ConfigCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.section, "section", "", "Settings group the key belongs to (default: global)")
	fs.BoolVar(&c.showAll, "all", false, "Show every configured option")
}

// Execute manages configuration.
func (c *ConfigCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := c.app.Config
	if len(args) == 0 {
		if c.showAll {
			c.printAll(stdout, cfg)
			return nil
		}
		_, _ = fmt.Fprintf(stdout, "Settings file: %s\n", c.app.ConfigPath)
		_, _ = fmt.Fprintln(stdout, "Configuration management:")
		_, _ = fmt.Fprintln(stdout, "  config <key>                   - Get configuration value")
		_, _ = fmt.Fprintln(stdout, "  config <key> <value>           - Set configuration value")
		_, _ = fmt.Fprintln(stdout, "  config -section <s> <key> ...  - Same, inside [s]")
		_, _ = fmt.Fprintln(stdout, "  config -all                    - Show all configuration")
		_, _ = fmt.Fprintln(stdout, "  config validate                - Validate configuration")
		_, _ = fmt.Fprintln(stdout, "  config schema                  - Show configuration schema")
		return nil
	}

	if c.section == "" {
		switch args[0] {
		case "validate":
			return c.executeValidate(stdout, cfg)
		case "schema":
			_, _ = fmt.Fprint(stdout, config.DefaultSchema().FormatHelp())
			return nil
		}
	}

	switch len(args) {
	case 1:
		// schema-aware: env → config → default
		key := args[0]
		value := config.DefaultSchema().Resolve(cfg, c.section, key)
		if _, exists := cfg.GetOption(c.section, key); value != "" || exists {
			_, _ = fmt.Fprintf(stdout, "%s: %s\n", key, value)
		} else {
			_, _ = fmt.Fprintf(stdout, "Configuration key '%s' not found\n", key)
		}
		return nil
	case 2:
		key, value := args[0], args[1]
		if !config.DefaultSchema().IsKnown(c.section, key) {
			_, _ = fmt.Fprintf(stderr, "Warning: '%s' is not a known option\n", key)
		}
		if err := c.app.Settings.WriteSetting(c.section, key, value); err != nil {
			_, _ = fmt.Fprintln(stderr, c.app.Printer.Sprintf(i18n.MsgSettingsSaveError, err))
			return err
		}
		cfg.SetOption(c.section, key, value)
		_, _ = fmt.Fprintf(stdout, "Set configuration: %s = %s\n", key, value)
		return nil
	}
	return usageError(c, stderr, "invalid number of arguments")
}

func (c *ConfigCommand) printAll(stdout io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(stdout, "Global configuration:")
	printOptions(stdout, "  ", cfg.Global)
	for _, section := range cfg.SectionNames() {
		_, _ = fmt.Fprintf(stdout, "\n[%s]\n", section)
		printOptions(stdout, "  ", cfg.Sections[section])
	}
}

func printOptions(w io.Writer, indent string, opts map[string]string) {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", indent, k, opts[k])
	}
}

// executeValidate validates the current config against the schema.
func (c *ConfigCommand) executeValidate(stdout io.Writer, cfg *config.Config) error {
	issues := config.ValidateConfig(cfg, config.DefaultSchema())
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(stdout, "Configuration is valid.")
		return nil
	}
	_, _ = fmt.Fprintf(stdout, "Configuration has %d issue(s):\n", len(issues))
	for _, issue := range issues {
		_, _ = fmt.Fprintf(stdout, "  - %s\n", issue)
	}
	return nil
}
