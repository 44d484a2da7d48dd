// Package render turns a task tree into display lines. It never mutates the
// tree: grouped views are computed from copies of the canonical order.
package render

import (
	"time"

	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

// Options controls what the renderer prints.
type Options struct {
	// Depth is how many descendant levels to print below each listed task.
	// Negative means unlimited.
	Depth int

	HideDescription bool
	HideTimestamp   bool
	HideSubCounter  bool
	// HideTree replaces the ascii branch glyphs with plain indentation.
	HideTree bool
	// HideCompleted omits tasks in the terminal state, with their subtrees.
	HideCompleted bool

	Group   task.GroupBy
	NoColor bool

	// Location is used to display timestamps; nil means time.Local.
	Location *time.Location
}

// DefaultOptions prints everything at unlimited depth.
func DefaultOptions() Options {
	return Options{Depth: -1}
}

// TimestampLayout is the layout used for task timestamps.
const TimestampLayout = "2006-01-02 15:04"

// Tree glyphs.
const (
	branchMid  = "├── "
	branchLast = "└── "
	pipe       = "│   "
	blank      = "    "
	separator  = "────────────────────"
)
