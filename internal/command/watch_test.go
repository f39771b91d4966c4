package command

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/ten-slots/internal/config"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("lang en\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	ready := make(chan struct{})
	go func() {
		close(ready)
		done <- watchFile(ctx, path, slog.Default(), func() { calls.Add(1) })
	}()
	<-ready

	// unrelated files in the same directory are ignored
	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0644))
		require.NoError(t, config.SetSectionKeyInFile(path, "", "lang", "de"))
		return calls.Load() > 0
	}, 5*time.Second, 250*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), filepath.Join(t.TempDir(), "nope", "config"), slog.Default(), func() {})
	assert.Error(t, err)
}

func TestServeReloadsOnChange(t *testing.T) {
	a := newTestApp(t, "tenbrushes ink\n", "ink", "charcoal")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = watchFile(ctx, a.config, a.Logger, func() { _ = a.Reload() })
	}()

	require.Eventually(t, func() bool {
		require.NoError(t, config.SetSectionKeyInFile(a.config, "", "tenbrushes", "charcoal"))
		var first string
		a.Actions.Exclusive(func() { first = a.Brushes.Slots().Snapshot()[0] })
		return first == "charcoal"
	}, 5*time.Second, 250*time.Millisecond)
}
