package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/storage"
)

// stateChange is a storage operation moving tasks along the state list.
type stateChange func(s *storage.Storage, ctx context.Context, ids []int, recursive bool) ([]int, error)

func addCheckCommand(root *cobra.Command, a *app) {
	root.AddCommand(newStateCommand(a, stateCommandDef{
		use:   "check <ids...>",
		short: "Mark tasks as completed",
		long: `Set tasks to the last declared state.

Examples:
  task check 2          # Complete task 2
  task check 1 -r       # Complete task 1 and all its sub-tasks`,
		verb:   "Checked",
		change: (*storage.Storage).Check,
	}))
}

func addIncrCommand(root *cobra.Command, a *app) {
	root.AddCommand(newStateCommand(a, stateCommandDef{
		use:   "incr <ids...>",
		short: "Move tasks to their next state",
		long: `Advance tasks to the state following their current one.

A task already in the last state fails the whole command and nothing is
changed. Listing an id twice advances it twice.

Examples:
  task incr 2           # todo -> wip
  task incr 2 2         # todo -> done
  task incr 1 -r        # Task 1 and all its sub-tasks to task 1's next state`,
		verb:   "Incremented",
		change: (*storage.Storage).Increment,
	}))
}

type stateCommandDef struct {
	use    string
	short  string
	long   string
	verb   string
	change stateChange
}

func newStateCommand(a *app, def stateCommandDef) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   def.use,
		Short: def.short,
		Long:  def.long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := a.openStorage(ctx)
			if err != nil {
				return err
			}

			changed, err := def.change(s, ctx, ids, recursive)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("%s %s %s", def.verb, plural(len(changed), "task"), formatIDs(changed))
			return a.report(cmd.OutOrStdout(), s, msg, changed)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "also apply to every sub-task")

	return cmd
}
