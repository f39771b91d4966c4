package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeycumines/ten-slots/internal/command"
	"github.com/joeycumines/ten-slots/internal/config"
	"github.com/joeycumines/ten-slots/internal/logging"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin *os.File, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("tenslots", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "Settings file (default $"+config.ConfigEnvVar+" or ~/.ten-slots/config)")
	logLevel := global.String("log-level", "", "Log level: debug, info, warn, error (default from log.level)")
	err := global.Parse(args)
	switch {
	case errors.Is(err, flag.ErrHelp):
		args = []string{"help"}
	case err != nil:
		return err
	default:
		args = global.Args()
	}

	if *configPath == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		*configPath = p
	}
	cfg, err := config.LoadFromPath(*configPath)
	if err != nil {
		return err
	}

	logOpts, err := logging.Resolve(*logLevel, cfg)
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(logOpts, stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	// stdout and stdin carry the protocol while serving
	serving := len(args) > 0 && args[0] == "serve"
	notices := stdout
	if serving {
		notices = stderr
	}

	app, err := command.NewApp(ctx, command.Options{
		ConfigPath: *configPath,
		Config:     cfg,
		Backend:    os.Getenv(command.BackendEnvVar),
		Out:        notices,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	if !serving {
		app.EnableEditor(ctx, stdin, stdout)
	}

	registry := command.NewRegistry()
	registry.Register(command.NewHelpCommand(registry))
	registry.Register(command.NewVersionCommand(version))
	registry.Register(command.NewConfigCommand(app))
	registry.Register(command.NewActionsCommand(app))
	registry.Register(command.NewRunCommand(app))
	registry.Register(command.NewAssignCommand(app))
	registry.Register(command.NewUnassignCommand(app))
	registry.Register(command.NewToggleCommand(app))
	registry.Register(command.NewEditCommand(app, stdin))
	registry.Register(command.NewServeCommand(app, version))

	return registry.Dispatch(ctx, args, stdout, stderr)
}
