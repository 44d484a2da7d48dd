package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/storage"
)

func addDeleteCommand(root *cobra.Command, a *app) {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <ids...>",
		Aliases: []string{"rm"},
		Short:   "Delete tasks and their sub-tasks",
		Long: `Delete tasks together with all their sub-tasks. Freed ids are reused by
later additions.

This operation cannot be undone. Use --force to skip confirmation.

Examples:
  task delete 3            # Confirm and delete task 3
  task delete 3,4 --force  # Delete without confirmation`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDelete(cmd, args, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	root.AddCommand(cmd)
}

func (a *app) runDelete(cmd *cobra.Command, args []string, force bool) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := a.openStorage(ctx)
	if err != nil {
		return err
	}

	if !force {
		confirmed, err := a.confirmDeletion(s, ids)
		if err != nil {
			return err
		}
		if !confirmed {
			a.output(cmd.OutOrStdout()).Info("Operation canceled.")
			return nil
		}
	}

	deleted, err := s.Delete(ctx, ids)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Deleted %s %s", plural(len(deleted), "task"), formatIDs(deleted))
	return a.report(cmd.OutOrStdout(), s, msg, deleted)
}

// confirmDeletion checks the ids exist and asks the user to confirm.
func (a *app) confirmDeletion(s *storage.Storage, ids []int) (bool, error) {
	tr := s.Tree()

	names := make([]string, 0, len(ids))
	subtasks := 0
	for _, id := range ids {
		t, err := tr.Get(id)
		if err != nil {
			return false, err
		}
		names = append(names, fmt.Sprintf("%d. %s", t.ID, t.Name))
		subtasks += len(t.Flatten()) - 1
	}

	if !terminalCheck() {
		return false, fmt.Errorf("cannot delete %s: %w", formatIDs(ids), errors.ErrNonInteractiveMode)
	}

	return confirmDelete(names, subtasks)
}
