package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joeycumines/ten-slots/internal/config"
	"github.com/joeycumines/ten-slots/internal/storage"
)

// DefaultLockTimeout bounds how long a write waits for another process to
// release the settings file.
const DefaultLockTimeout = 5 * time.Second

// ConfigBackend is a Backend over the sectioned config file. Settings groups
// map to `[group]` sections, with group "" stored before the first header.
//
// Reads are served from the parsed file; every write updates the file in
// place under an exclusive lock and then the in-memory copy.
type ConfigBackend struct {
	mu          sync.RWMutex
	path        string
	cfg         *config.Config
	logger      *slog.Logger
	lockTimeout time.Duration
}

// NewConfigBackend wraps an already loaded config. A nil cfg is treated as
// an empty file.
func NewConfigBackend(path string, cfg *config.Config, logger *slog.Logger) *ConfigBackend {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigBackend{
		path:        path,
		cfg:         cfg,
		logger:      logger,
		lockTimeout: DefaultLockTimeout,
	}
}

// OpenConfigBackend loads the config file at path and wraps it.
func OpenConfigBackend(path string, logger *slog.Logger) (*ConfigBackend, error) {
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return NewConfigBackend(path, cfg, logger), nil
}

// Path returns the backing file path.
func (b *ConfigBackend) Path() string { return b.path }

// Config returns the in-memory config. Callers must not mutate it.
func (b *ConfigBackend) Config() *config.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cfg
}

// SetLockTimeout overrides DefaultLockTimeout.
func (b *ConfigBackend) SetLockTimeout(d time.Duration) {
	b.mu.Lock()
	b.lockTimeout = d
	b.mu.Unlock()
}

// ReadSetting implements Backend.
func (b *ConfigBackend) ReadSetting(group, key, defaultValue string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if v, ok := b.cfg.GetOption(group, key); ok {
		return v
	}
	return defaultValue
}

// WriteSetting implements Backend.
func (b *ConfigBackend) WriteSetting(group, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), b.lockTimeout)
	defer cancel()

	err := storage.WithLock(ctx, b.path, func() error {
		return config.SetSectionKeyInFile(b.path, group, key, value)
	})
	if err != nil {
		return fmt.Errorf("failed to write setting %s/%s: %w", group, key, err)
	}

	b.cfg.SetOption(group, key, value)
	b.logger.Debug("setting written", "group", group, "key", key, "path", b.path)
	return nil
}

// Reload re-reads the backing file, picking up changes made by other
// processes. The previous in-memory state is kept if the file cannot be read.
func (b *ConfigBackend) Reload() error {
	cfg, err := config.LoadFromPath(b.path)
	if err != nil {
		return fmt.Errorf("failed to reload settings: %w", err)
	}
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
	return nil
}

var _ Backend = (*ConfigBackend)(nil)
