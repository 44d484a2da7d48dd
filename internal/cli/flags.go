package cli

import (
	stderrors "errors"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/tui"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input.
	ExitInvalidInput = 2
	// ExitInterrupted is used when SIGINT or SIGTERM stopped the command.
	ExitInterrupted = 130
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = tui.FormatText
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = tui.FormatJSON
)

// GlobalFlags holds flags available to all commands.
//
// Storage and print flags only override the configuration when they are set
// explicitly; their zero values here are never read directly.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool

	File            string
	LockTimeout     time.Duration
	Depth           int
	HideDescription bool
	HideTimestamp   bool
	HideSubCounter  bool
	HideTree        bool
	HideCompleted   bool
	Group           string
	NoColor         bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()

	pf.StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	pf.StringVarP(&flags.File, "file", "f", "", "storage file (default from config, tasks.json)")
	pf.DurationVar(&flags.LockTimeout, "lock-timeout", 0, "how long to wait for the storage lock (e.g. 5s)")

	pf.IntVar(&flags.Depth, "depth", -1, "descendant levels to print, -1 for all")
	pf.BoolVar(&flags.HideDescription, "hide-description", false, "do not print descriptions")
	pf.BoolVar(&flags.HideTimestamp, "hide-timestamp", false, "do not print timestamps")
	pf.BoolVar(&flags.HideSubCounter, "hide-sub-counter", false, "do not print sub-task counters")
	pf.BoolVar(&flags.HideTree, "hide-tree", false, "indent sub-tasks without tree glyphs")
	pf.BoolVar(&flags.HideCompleted, "hide-completed", false, "do not print completed tasks")
	pf.StringVar(&flags.Group, "group", "", "order tasks by state, priority or id")
	pf.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// ExitCodeForError returns the appropriate exit code for the given error.
// Returns ExitSuccess (0) for nil errors, ExitInvalidInput (2) for user input
// errors (invalid flags, bad arguments), and ExitError (1) for all other errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.IsExitCode2Error(err) {
		return ExitInvalidInput
	}

	if stderrors.Is(err, errors.ErrInvalidOutputFormat) {
		return ExitInvalidInput
	}

	// Cobra flag parsing errors (mutually exclusive flags, unknown flags, etc.)
	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag and argument validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
		"accepts ",
		"requires at least",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
