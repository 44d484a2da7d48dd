package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/clock"
	"github.com/MikyStar/CLI-Manager-sub000/internal/render"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
	"github.com/MikyStar/CLI-Manager-sub000/internal/tui"
)

var (
	glamourRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	glamourRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// getGlamourRenderer returns a cached glamour renderer for markdown rendering.
// The renderer is initialized once and reused across all calls.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// showResult is the JSON output of 'task show'.
type showResult struct {
	Task     *task.Task `json:"task"`
	Parent   *int       `json:"parent"`
	Position int        `json:"position"`
	Depth    int        `json:"depth"`
}

func addShowCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show full details of a task",
		Long: `Show every attribute of a task, its place in the tree and its
description rendered as markdown.

Examples:
  task show 3          # Details of task 3
  task show 3 -o json  # As JSON, with sub-tasks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.runShow(cmd, id)
		},
	}

	root.AddCommand(cmd)
}

func (a *app) runShow(cmd *cobra.Command, id int) error {
	s, err := a.openStorage(cmd.Context())
	if err != nil {
		return err
	}
	tr := s.Tree()

	var match task.Match
	if err := tr.Retrieve(id, func(m task.Match) { match = m }); err != nil {
		return err
	}
	depth, err := tr.Depth(id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if a.jsonOutput() {
		result := showResult{Task: match.Task, Position: match.Index, Depth: depth}
		if match.Parent != nil {
			result.Parent = &match.Parent.ID
		}
		return a.output(w).JSON(result)
	}

	opts := a.renderOptions()
	a.output(w).Lines(detailLines(s.States(), match, depth, opts, clock.RealClock{}.Now()))
	if match.Task.Description != "" {
		_, _ = fmt.Fprintln(w)
		renderDescription(w, match.Task.Description, opts.NoColor)
	}
	return nil
}

// detailLines renders the attribute block of 'task show'.
func detailLines(states task.States, m task.Match, depth int, opts render.Options, now time.Time) []string {
	t := m.Task
	bold := func(s string) string {
		if opts.NoColor {
			return s
		}
		return tui.StyleBold.Render(s)
	}

	state, _ := states.Get(t.State)
	marker := state.Icon
	if marker == "" {
		marker = "[" + t.State + "]"
	}
	if !opts.NoColor {
		marker = tui.StateStyle(state.HexColor).Render(marker)
	}

	lines := []string{
		bold(fmt.Sprintf("%d. %s", t.ID, t.Name)),
		fmt.Sprintf("  State:     %s %s", marker, t.State),
	}
	if t.Priority != nil {
		lines = append(lines, fmt.Sprintf("  Priority:  %d", *t.Priority))
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	lines = append(lines, fmt.Sprintf("  Created:   %s (%s)",
		t.Timestamp.In(loc).Format(render.TimestampLayout), tui.RelativeTime(t.Timestamp, now)))

	if m.Parent != nil {
		lines = append(lines, fmt.Sprintf("  Parent:    %d. %s", m.Parent.ID, m.Parent.Name))
	}
	lines = append(lines, fmt.Sprintf("  Depth:     %d", depth))

	if descendants := t.Flatten()[1:]; len(descendants) > 0 {
		done := task.ComputeStats(states, descendants).Completed()
		lines = append(lines, fmt.Sprintf("  Sub-tasks: %d/%d done", done.Count, len(descendants)))
	}
	return lines
}

// renderDescription renders a markdown description using glamour, or as
// plain indented text when colors are disabled or rendering fails.
func renderDescription(w io.Writer, description string, plain bool) {
	if !plain {
		if renderer := getGlamourRenderer(); renderer != nil {
			if rendered, err := renderer.Render(description); err == nil {
				_, _ = fmt.Fprint(w, rendered)
				return
			}
		}
	}
	for _, line := range strings.Split(description, "\n") {
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}
}
