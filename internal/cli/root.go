// Package cli provides the command-line interface for task.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MikyStar/CLI-Manager-sub000/internal/config"
	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/logging"
	"github.com/MikyStar/CLI-Manager-sub000/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// app is the state shared by every command of one invocation. It is filled
// by the root command's PersistentPreRunE.
type app struct {
	flags   *GlobalFlags
	cfg     *config.Config
	workDir string
	closer  io.Closer
}

// newRootCmd creates and returns the root command for the task CLI.
// This function-based approach avoids package-level globals, making the
// code more testable.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	a := &app{flags: flags}

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Tree-structured todo manager",
		Long: `task keeps a tree of tasks in a JSON file next to your project.

Tasks move through an ordered list of states (todo, wip, done by default),
can carry sub-tasks to any depth, and are printed as a board.

Examples:
  task init                       # Create tasks.json with the default states
  task add "Write docs" -p 1      # Add a root task
  task add "Intro" --parent 0     # Add a sub-task
  task incr 1                     # Move task 1 to its next state
  task                            # Print the board`,
		Version: formatVersion(info),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBoard(cmd, nil, false)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.teardown()
		},
		// Errors are printed by Execute through tui.Output.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	addInitCommand(cmd, a)
	addAddCommand(cmd, a)
	addEditCommand(cmd, a)
	addCheckCommand(cmd, a)
	addIncrCommand(cmd, a)
	addMoveCommand(cmd, a)
	addDeleteCommand(cmd, a)
	addExtractCommand(cmd, a)
	addBoardCommand(cmd, a)
	addStatsCommand(cmd, a)
	addShowCommand(cmd, a)

	return cmd
}

// setup validates the global flags, loads the configuration and installs the
// logger in the command context.
func (a *app) setup(cmd *cobra.Command) error {
	if !IsValidOutputFormat(a.flags.Output) {
		return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, a.flags.Output, ValidOutputFormats())
	}

	workDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	a.workDir = workDir

	if err := absFileFlag(cmd.Flags(), workDir); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, workDir, cmd.Flags())
	if stderrors.Is(err, errors.ErrConfigInvalid) {
		return errors.NewExitCode2Error(err)
	}
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closer := logging.New(logging.Options{
		Verbose:    a.flags.Verbose,
		Quiet:      a.flags.Quiet,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	a.closer = closer
	cmd.SetContext(logger.WithContext(ctx))

	if cfg.Print.NoColor {
		tui.DisableColor()
	} else {
		tui.CheckNoColor()
	}

	logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("storage", cfg.StoragePath(workDir)).
		Msg("command started")
	return nil
}

func (a *app) teardown() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// absFileFlag resolves an explicitly set relative --file against workDir, so
// that it is not later resolved against the project config directory.
func absFileFlag(flags *pflag.FlagSet, workDir string) error {
	f := flags.Lookup("file")
	if f == nil || !f.Changed || f.Value.String() == "" || filepath.IsAbs(f.Value.String()) {
		return nil
	}
	return f.Value.Set(filepath.Join(workDir, f.Value.String()))
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// A failing command has its error printed, on stderr for text output and on
// stdout for JSON output, before the error is returned for the exit code.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	return execute(ctx, cmd, flags)
}

func execute(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil || stderrors.Is(err, errors.ErrJSONErrorOutput) {
		return err
	}

	if flags.Output == OutputJSON {
		tui.NewOutput(cmd.OutOrStdout(), OutputJSON).Error(err)
	} else {
		tui.NewOutput(cmd.ErrOrStderr(), OutputText).Error(err)
	}
	return err
}
