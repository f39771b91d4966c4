package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrWouldBlock signals that a non-blocking lock attempt failed because
// another process holds the lock.
var ErrWouldBlock = errors.New("file lock would block")

// lockRetryInterval is how long WithLock sleeps between attempts.
const lockRetryInterval = 25 * time.Millisecond

// AcquireLockHandle attempts to take an exclusive lock on path without
// blocking. ok is false (with a nil error) when the lock is held elsewhere.
func AcquireLockHandle(path string) (f *os.File, ok bool, err error) {
	f, err = acquireFileLock(path)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		if errors.Is(err, ErrWouldBlock) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return f, true, nil
}

// ReleaseLockHandle releases a lock obtained by AcquireLockHandle and removes
// the lock artifact.
func ReleaseLockHandle(f *os.File) error { return releaseFileLock(f) }

// LockPath returns the lock artifact used to guard writes to path.
func LockPath(path string) string { return path + ".lock" }

// WithLock runs fn while holding the lock for path, retrying until the lock
// is free or ctx is done.
func WithLock(ctx context.Context, path string, fn func() error) error {
	lockPath := LockPath(path)
	for {
		f, ok, err := AcquireLockHandle(lockPath)
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", lockPath, err)
		}
		if ok {
			fnErr := fn()
			if err := ReleaseLockHandle(f); err != nil {
				return errors.Join(fnErr, fmt.Errorf("failed to release lock %s: %w", lockPath, err))
			}
			return fnErr
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for lock %s: %w", lockPath, ctx.Err())
		case <-time.After(lockRetryInterval):
		}
	}
}
