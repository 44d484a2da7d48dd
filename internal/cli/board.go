package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/render"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

// boardResult is the JSON output of 'task board'.
type boardResult struct {
	File   string       `json:"file"`
	States []task.State `json:"states"`
	Tasks  []*task.Task `json:"tasks"`
	Stats  task.Stats   `json:"stats"`
}

func addBoardCommand(root *cobra.Command, a *app) {
	var columns bool

	cmd := &cobra.Command{
		Use:     "board [ids...]",
		Aliases: []string{"ls"},
		Short:   "Print tasks",
		Long: `Print every task as a tree followed by completion statistics, or only the
listed tasks and their sub-tasks. With --columns, print one section per
state instead.

Examples:
  task board                      # Everything
  task board 2 5                  # Tasks 2 and 5 with their sub-tasks
  task board --depth 0            # Root tasks only
  task board --group priority     # Sorted by priority
  task board --columns            # One column per state`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids []int
			if len(args) > 0 {
				parsed, err := parseIDs(args)
				if err != nil {
					return err
				}
				ids = parsed
			}
			return a.runBoard(cmd, ids, columns)
		},
	}

	cmd.Flags().BoolVar(&columns, "columns", false, "print one section per state")

	root.AddCommand(cmd)
}

func (a *app) runBoard(cmd *cobra.Command, ids []int, columns bool) error {
	if columns && len(ids) > 0 {
		return errors.NewExitCode2Error(fmt.Errorf("%w: --columns cannot be combined with task ids", errors.ErrInvalidArgument))
	}

	s, err := a.openStorage(cmd.Context())
	if err != nil {
		return err
	}
	tr := s.Tree()
	out := a.output(cmd.OutOrStdout())

	if a.jsonOutput() {
		result := boardResult{File: s.Path(), States: tr.States(), Tasks: tr.Roots(), Stats: tr.Stats()}
		if len(ids) > 0 {
			result.Tasks = make([]*task.Task, 0, len(ids))
			var all []*task.Task
			for _, id := range ids {
				t, err := tr.Get(id)
				if err != nil {
					return err
				}
				result.Tasks = append(result.Tasks, t)
				all = append(all, t.Flatten()...)
			}
			result.Stats = task.ComputeStats(tr.States(), all)
		}
		return out.JSON(result)
	}

	opts := a.renderOptions()
	var lines []string
	switch {
	case columns:
		lines = render.Board(tr, opts)
	case len(ids) > 0:
		lines, err = render.Subset(tr, ids, opts)
		if err != nil {
			return err
		}
	default:
		lines = render.Forest(tr, opts)
	}

	out.Lines(lines)
	return nil
}

func addStatsCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print task counts per state",
		Long: `Print how many tasks, at any depth, are in each state and the share
that is completed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStorage(cmd.Context())
			if err != nil {
				return err
			}

			stats := s.Tree().Stats()
			out := a.output(cmd.OutOrStdout())
			if a.jsonOutput() {
				return out.JSON(stats)
			}
			out.Lines(render.NewPrinter(s.States(), a.renderOptions()).Stats(stats))
			return nil
		},
	}

	root.AddCommand(cmd)
}
