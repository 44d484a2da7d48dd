package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

type editOptions struct {
	name        string
	description string
	state       string
	priority    int
	recursive   bool
}

func addEditCommand(root *cobra.Command, a *app) {
	var opts editOptions

	cmd := &cobra.Command{
		Use:   "edit <ids...>",
		Short: "Edit tasks",
		Long: `Change the name, description, state or priority of tasks.

Only the given fields change. With --recursive the change also applies to
every sub-task of the listed tasks.

Examples:
  task edit 3 -n "Write the README"    # Rename task 3
  task edit 1,2 -s wip                 # Set two tasks to wip
  task edit 4 -s done -r               # Task 4 and all its sub-tasks`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&opts.state, "state", "s", "", "new state")
	cmd.Flags().IntVarP(&opts.priority, "priority", "p", 0, "new priority")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "also edit every sub-task")

	root.AddCommand(cmd)
}

func (a *app) runEdit(cmd *cobra.Command, args []string, opts editOptions) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var patch task.Patch
	if flags.Changed("name") {
		patch.Name = &opts.name
	}
	if flags.Changed("description") {
		patch.Description = &opts.description
	}
	if flags.Changed("state") {
		patch.State = &opts.state
	}
	if flags.Changed("priority") {
		patch.Priority = &opts.priority
	}
	if patch.IsEmpty() {
		return errors.NewExitCode2Error(
			fmt.Errorf("%w: nothing to edit, pass --name, --description, --state or --priority", errors.ErrInvalidArgument))
	}

	ctx := cmd.Context()
	s, err := a.openStorage(ctx)
	if err != nil {
		return err
	}

	edited, err := s.Edit(ctx, ids, patch, opts.recursive)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Edited %s %s", plural(len(edited), "task"), formatIDs(edited))
	return a.report(cmd.OutOrStdout(), s, msg, edited)
}
