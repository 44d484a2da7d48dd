package flock

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// Lock is a held exclusive lock on a lock file.
type Lock struct {
	f *os.File
}

// Acquire opens (creating if needed) the lock file at path and takes an
// exclusive lock on it, retrying until timeout elapses or ctx is done.
// A timeout yields an error wrapping errors.ErrLockTimeout.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, constants.LockFilePerm) //#nosec G302,G304 -- lock file needs write access, path is built by the storage layer
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		default:
		}

		if err := Exclusive(f.Fd()); err == nil {
			return &Lock{f: f}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("%w: %s", taskerrors.ErrLockTimeout, path)
		}

		time.Sleep(constants.LockRetryInterval)
	}
}

// Release unlocks and closes the lock file. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}

	if err := Unlock(l.f.Fd()); err != nil {
		_ = l.f.Close()
		l.f = nil
		return fmt.Errorf("failed to release lock: %w", err)
	}

	err := l.f.Close()
	l.f = nil
	return err
}
