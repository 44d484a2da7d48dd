package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// formRunner is an interface that matches huh.Form's Run method.
type formRunner interface {
	Run() error
}

// terminalCheck reports whether stdin is an interactive terminal.
// It can be replaced in tests.
//
//nolint:gochecknoglobals // Test injection point - standard Go testing pattern
var terminalCheck = isTerminal

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

// createDeleteConfirmForm is the factory for delete confirmation forms.
// This variable can be overridden in tests to inject mock forms.
//
//nolint:gochecknoglobals // Test injection point - standard Go testing pattern
var createDeleteConfirmForm = defaultCreateDeleteConfirmForm

// createNameInputForm is the factory for the task name prompt.
//
//nolint:gochecknoglobals // Test injection point - standard Go testing pattern
var createNameInputForm = defaultCreateNameInputForm

func defaultCreateDeleteConfirmForm(names []string, subtasks int, confirm *bool) formRunner {
	description := strings.Join(names, "\n")
	if subtasks > 0 {
		description += fmt.Sprintf("\n\n⚠️  %d %s will be deleted with them.", subtasks, plural(subtasks, "sub-task"))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %d %s?", len(names), plural(len(names), "task"))).
				Description(description).
				Affirmative("Yes, delete").
				Negative("No, cancel").
				Value(confirm),
		),
	)
}

func defaultCreateNameInputForm(name *string) formRunner {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("%w: name cannot be empty", errors.ErrInvalidArgument)
					}
					return nil
				}).
				Value(name),
		),
	)
}

// runForm runs a prompt and maps an aborted form to ErrOperationCanceled.
func runForm(form formRunner) error {
	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return errors.ErrOperationCanceled
		}
		return fmt.Errorf("failed to get input: %w", err)
	}
	return nil
}

// confirmDelete asks whether the listed tasks should be deleted.
func confirmDelete(names []string, subtasks int) (bool, error) {
	var confirm bool
	if err := runForm(createDeleteConfirmForm(names, subtasks, &confirm)); err != nil {
		return false, err
	}
	return confirm, nil
}

// promptName asks for a task name.
func promptName() (string, error) {
	var name string
	if err := runForm(createNameInputForm(&name)); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}
