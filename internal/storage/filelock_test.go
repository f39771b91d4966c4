package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireLockHandle(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "config.lock")

	f, ok, err := AcquireLockHandle(lockPath)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	f2, ok, err := AcquireLockHandle(lockPath)
	if err != nil {
		t.Fatalf("second acquire returned error: %v", err)
	}
	if ok || f2 != nil {
		t.Fatal("second acquire should report the lock as held")
	}

	if err := ReleaseLockHandle(f); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("lock file was not removed after release")
	}
}

func TestWithLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	t.Run("runs fn and releases", func(t *testing.T) {
		called := false
		if err := WithLock(context.Background(), path, func() error {
			called = true
			return nil
		}); err != nil {
			t.Fatalf("WithLock failed: %v", err)
		}
		if !called {
			t.Fatal("fn was not called")
		}
		if _, err := os.Stat(LockPath(path)); !os.IsNotExist(err) {
			t.Error("lock file left behind")
		}
	})

	t.Run("propagates fn error", func(t *testing.T) {
		want := errors.New("boom")
		if err := WithLock(context.Background(), path, func() error { return want }); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	})

	t.Run("gives up when context ends", func(t *testing.T) {
		held, ok, err := AcquireLockHandle(LockPath(path))
		if err != nil || !ok {
			t.Fatalf("setup acquire: ok=%v err=%v", ok, err)
		}
		defer ReleaseLockHandle(held)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err = WithLock(ctx, path, func() error {
			t.Error("fn must not run while the lock is held")
			return nil
		})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
	})
}
