// Package errors provides centralized error handling for the task manager.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrFileNotFound indicates that the storage file does not exist.
	ErrFileNotFound = errors.New("storage file not found")

	// ErrMalformedDocument indicates the storage file is not valid JSON or
	// does not match the document schema.
	ErrMalformedDocument = errors.New("malformed storage document")

	// ErrPersist indicates the storage document could not be written back to disk.
	// The in-memory tree may have diverged from the file when this is returned.
	ErrPersist = errors.New("failed to persist storage document")

	// ErrFileAlreadyExists indicates an attempt to create a storage file at a
	// path that is already occupied.
	ErrFileAlreadyExists = errors.New("file already exists")

	// ErrUnknownState indicates a state that is not declared in the storage metadata.
	ErrUnknownState = errors.New("unknown state")

	// ErrNoStates indicates an empty states list was supplied.
	ErrNoStates = errors.New("no states defined")

	// ErrTaskNotFound indicates that a referenced task id is absent from the tree.
	ErrTaskNotFound = errors.New("task not found")

	// ErrDuplicateID indicates that an insertion would create two tasks sharing an id.
	ErrDuplicateID = errors.New("duplicate task id")

	// ErrNoFurtherState indicates an increment was requested on a task already
	// in the terminal state.
	ErrNoFurtherState = errors.New("no further state")

	// ErrDescendantCycle indicates a move would place a task under itself or
	// one of its own descendants.
	ErrDescendantCycle = errors.New("cannot move a task under itself or its descendants")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUserInputRequired indicates user input is required but not provided.
	// Commands should exit with code 2 when this error is returned.
	ErrUserInputRequired = errors.New("user input required")

	// ErrNonInteractiveMode indicates that an operation requiring confirmation
	// was attempted in non-interactive mode without the force flag.
	ErrNonInteractiveMode = errors.New("use --force in non-interactive mode")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
