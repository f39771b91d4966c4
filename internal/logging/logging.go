// Package logging builds the process logger from flags and config.
//
// Human-readable text goes to stderr. When log.file is configured, JSON
// records are additionally written to that file with size-based rotation.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeycumines/ten-slots/internal/config"
)

// Options is the resolved logging configuration.
type Options struct {
	Level     slog.Level
	File      string
	MaxSizeMB int
	MaxFiles  int
}

// ParseLevel parses debug, info, warn or error (case-insensitive). The empty
// string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
}

// Resolve merges the level flag with the config. A non-empty flagLevel wins,
// then verbose (debug), then log.level; everything else comes from the config schema, including
// environment overrides and defaults. cfg may be nil.
func Resolve(flagLevel string, cfg *config.Config) (Options, error) {
	schema := config.DefaultSchema()
	if cfg == nil {
		cfg = config.NewConfig()
	}

	levelStr := flagLevel
	switch {
	case levelStr != "":
	case schema.ResolveBool(cfg, "", "verbose"):
		levelStr = "debug"
	default:
		levelStr = schema.Resolve(cfg, "", "log.level")
	}
	level, err := ParseLevel(levelStr)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Level:     level,
		File:      schema.Resolve(cfg, "", "log.file"),
		MaxSizeMB: schema.ResolveInt(cfg, "", "log.max-size-mb"),
		MaxFiles:  schema.ResolveInt(cfg, "", "log.max-files"),
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxFiles < 0 {
		opts.MaxFiles = 5
	}
	return opts, nil
}

// New builds a logger writing text to stderr and, when opts.File is set, JSON
// to a rotating file. The returned closer releases the file; it is never nil.
func New(opts Options, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	text := slog.NewTextHandler(stderr, handlerOpts)
	if opts.File == "" {
		return slog.New(text), nopCloser{}, nil
	}
	w, err := OpenRotatingWriter(opts.File, opts.MaxSizeMB, opts.MaxFiles)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
	}
	return slog.New(slog.NewMultiHandler(text, slog.NewJSONHandler(w, handlerOpts))), w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
