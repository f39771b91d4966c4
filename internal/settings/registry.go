package settings

import (
	"fmt"
	"log/slog"
)

// BackendFactory creates a Backend for the given settings path.
type BackendFactory func(path string, logger *slog.Logger) (Backend, error)

// BackendRegistry maps backend names to their factory functions.
var BackendRegistry = map[string]BackendFactory{
	"file": func(path string, logger *slog.Logger) (Backend, error) {
		return OpenConfigBackend(path, logger)
	},
	"memory": func(string, *slog.Logger) (Backend, error) {
		return NewMemoryBackend(), nil
	},
}

// Open creates a backend by name.
func Open(name, path string, logger *slog.Logger) (Backend, error) {
	factory, ok := BackendRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown settings backend: %s", name)
	}
	return factory(path, logger)
}
