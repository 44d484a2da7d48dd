// Package flock provides cross-platform file locking utilities.
//
// Exclusive and Unlock are non-blocking primitives over a file descriptor.
// Acquire wraps them in a retry loop bounded by a timeout and the context,
// which is how the storage layer serializes concurrent task commands:
//
//	lock, err := flock.Acquire(ctx, path+".lock", 5*time.Second)
//	if err != nil {
//	    return err // wraps errors.ErrLockTimeout on timeout
//	}
//	defer func() { _ = lock.Release() }()
package flock
