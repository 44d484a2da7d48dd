package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

func addMoveCommand(root *cobra.Command, a *app) {
	var dest int

	cmd := &cobra.Command{
		Use:   "move <ids...> --to <id>",
		Short: "Move tasks under another task",
		Long: `Re-parent tasks, with their sub-tasks and ids, as the last sub-tasks of
the destination. A task cannot be moved under itself or its own sub-tasks.

Examples:
  task move 4 --to 1      # Task 4 becomes a sub-task of task 1
  task move 4,5 --to 1    # Both, in that order`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if dest < 0 {
				return errors.NewExitCode2Error(fmt.Errorf("%w: --to must be a task id", errors.ErrInvalidArgument))
			}

			ctx := cmd.Context()
			s, err := a.openStorage(ctx)
			if err != nil {
				return err
			}

			moved, err := s.Move(ctx, ids, dest)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Moved %s %s under %d", plural(len(moved), "task"), formatIDs(moved), dest)
			return a.report(cmd.OutOrStdout(), s, msg, moved)
		},
	}

	cmd.Flags().IntVar(&dest, "to", -1, "id of the destination task")
	_ = cmd.MarkFlagRequired("to")

	root.AddCommand(cmd)
}
