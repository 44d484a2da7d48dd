package tui

import (
	"fmt"
	"time"
)

// relativeUnits are tried from largest to smallest.
//
//nolint:gochecknoglobals // static lookup table
var relativeUnits = []struct {
	name string
	size time.Duration
}{
	{"year", 365 * 24 * time.Hour},
	{"month", 30 * 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
	{"day", 24 * time.Hour},
	{"hour", time.Hour},
	{"minute", time.Minute},
}

// RelativeTime formats t relative to now: "just now", "1 minute ago",
// "3 days ago", "2 years ago". Times in the future read as "just now".
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	for _, u := range relativeUnits {
		if diff < u.size {
			continue
		}
		n := int(diff / u.size)
		if n == 1 {
			return "1 " + u.name + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, u.name)
	}
	return "just now"
}
