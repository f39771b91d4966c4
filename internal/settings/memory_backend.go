package settings

import (
	"fmt"
	"strings"
	"sync"
)

// MemoryBackend is a map-backed Backend for tests and ephemeral runs.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]map[string]string
	writes int
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]map[string]string)}
}

// ReadSetting implements Backend.
func (b *MemoryBackend) ReadSetting(group, key, defaultValue string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if v, ok := b.values[group][key]; ok {
		return v
	}
	return defaultValue
}

// WriteSetting implements Backend.
func (b *MemoryBackend) WriteSetting(group, key, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("setting %s/%s must be a single line", group, key)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.values[group] == nil {
		b.values[group] = make(map[string]string)
	}
	b.values[group][key] = value
	b.writes++
	return nil
}

// Lookup reports the raw stored value, distinguishing absent from empty.
func (b *MemoryBackend) Lookup(group, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[group][key]
	return v, ok
}

// Writes returns how many successful WriteSetting calls were made.
func (b *MemoryBackend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

var _ Backend = (*MemoryBackend)(nil)
