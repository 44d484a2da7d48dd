package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Storage
	// ===================
	{
		err: ErrFileNotFound,
		info: ErrorInfo{
			Message: "No task storage file was found.",
			Action:  "Run 'task init' to create one, or point --file at an existing storage file.",
		},
	},
	{
		err: ErrMalformedDocument,
		info: ErrorInfo{
			Message: "The task storage file is not a valid task document.",
			Action:  "Fix the JSON in the storage file or restore it from a backup.",
		},
	},
	{
		err: ErrPersist,
		info: ErrorInfo{
			Message: "Changes could not be written to the storage file.",
			Action:  "Check file permissions and free disk space, then retry.",
		},
	},
	{
		err: ErrFileAlreadyExists,
		info: ErrorInfo{
			Message: "The target file already exists.",
			Action:  "Choose another path or remove the existing file first.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "The storage file is locked by another task command.",
			Action:  "Wait for the other command to finish and retry.",
		},
	},

	// ===================
	// Task tree
	// ===================
	{
		err: ErrTaskNotFound,
		info: ErrorInfo{
			Message: "Task not found.",
			Action:  "Run 'task board' to list the existing task ids.",
		},
	},
	{
		err: ErrDuplicateID,
		info: ErrorInfo{
			Message: "A task with this id already exists.",
			Action:  "Omit --id to let the next free id be assigned.",
		},
	},
	{
		err: ErrUnknownState,
		info: ErrorInfo{
			Message: "The state is not declared in the storage file.",
			Action:  "Use one of the states listed under meta.states in the storage file.",
		},
	},
	{
		err: ErrNoStates,
		info: ErrorInfo{
			Message: "At least one state must be defined.",
			Action:  "Add states to your configuration file.",
		},
	},
	{
		err: ErrNoFurtherState,
		info: ErrorInfo{
			Message: "The task is already in its final state.",
			Action:  "",
		},
	},
	{
		err: ErrDescendantCycle,
		info: ErrorInfo{
			Message: "A task cannot be moved under itself or one of its sub-tasks.",
			Action:  "Pick a destination outside the moved task's subtree.",
		},
	},

	// ===================
	// Configuration & input
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is missing.",
			Action:  "",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "The configuration contains an invalid value.",
			Action:  "Check .taskrc.yaml and ~/.task/config.yaml for typos.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
	{
		err: ErrUserInputRequired,
		info: ErrorInfo{
			Message: "Required input was not provided.",
			Action:  "Pass the missing argument or run the command in an interactive terminal.",
		},
	},
	{
		err: ErrNonInteractiveMode,
		info: ErrorInfo{
			Message: "Confirmation is required but no terminal is attached.",
			Action:  "Re-run with --force.",
		},
	},
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation canceled.",
			Action:  "",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries a direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
