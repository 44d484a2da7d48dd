// Package clock provides an abstraction for time operations to improve testability.
// The task tree stamps every inserted task through a Clock so tests can pin
// timestamps instead of comparing against time.Now().
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system time in UTC.
type RealClock struct{}

// Now returns the current UTC time truncated to seconds, which is the
// precision persisted in the storage document.
func (RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

var (
	_ Clock = RealClock{}
	_ Clock = FixedClock{}
)
