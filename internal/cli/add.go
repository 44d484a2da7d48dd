package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

type addOptions struct {
	description string
	state       string
	priority    int
	parent      int
	id          int
}

func addAddCommand(root *cobra.Command, a *app) {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add [name...]",
		Short: "Add a task",
		Long: `Add a task as the last root, or as the last sub-task of --parent.

The task gets the smallest free id unless --id is given, and starts in the
first declared state unless --state is given. Without a name, the name is
asked for interactively.

Examples:
  task add Write the changelog           # New root task
  task add "Fix tests" -p 1 -d "flaky"   # With priority and description
  task add Review --parent 3             # Sub-task of task 3
  task add Deploy -s wip --id 10         # Explicit state and id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAdd(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&opts.state, "state", "s", "", "initial state (default: first declared state)")
	cmd.Flags().IntVarP(&opts.priority, "priority", "p", 0, "task priority")
	cmd.Flags().IntVar(&opts.parent, "parent", task.NoID, "id of the parent task")
	cmd.Flags().IntVar(&opts.id, "id", task.NoID, "explicit id for the new task")

	root.AddCommand(cmd)
}

func (a *app) runAdd(cmd *cobra.Command, args []string, opts addOptions) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	if flags.Changed("parent") && opts.parent < 0 {
		return errors.NewExitCode2Error(fmt.Errorf("%w: --parent must be a task id", errors.ErrInvalidArgument))
	}
	if flags.Changed("id") && opts.id < 0 {
		return errors.NewExitCode2Error(fmt.Errorf("%w: --id must be non-negative", errors.ErrInvalidArgument))
	}

	name, err := a.taskName(args)
	if err != nil {
		return err
	}

	s, err := a.openStorage(ctx)
	if err != nil {
		return err
	}

	state := opts.state
	if !flags.Changed("state") {
		state = s.States().Initial().Name
	}

	var taskOpts []task.Option
	if opts.description != "" {
		taskOpts = append(taskOpts, task.WithDescription(opts.description))
	}
	if flags.Changed("priority") {
		taskOpts = append(taskOpts, task.WithPriority(opts.priority))
	}
	if flags.Changed("id") {
		taskOpts = append(taskOpts, task.WithID(opts.id))
	}

	parent := task.NoID
	if flags.Changed("parent") {
		parent = opts.parent
	}

	id, err := s.Add(ctx, task.New(name, state, taskOpts...), parent)
	if err != nil {
		return err
	}

	return a.report(cmd.OutOrStdout(), s, fmt.Sprintf("Added task %d: %s", id, name), []int{id})
}

// taskName joins the name arguments, or prompts for a name on a terminal.
func (a *app) taskName(args []string) (string, error) {
	if name := strings.TrimSpace(strings.Join(args, " ")); name != "" {
		return name, nil
	}

	if a.jsonOutput() || !terminalCheck() {
		return "", errors.NewExitCode2Error(fmt.Errorf("%w: task name", errors.ErrUserInputRequired))
	}
	return promptName()
}
