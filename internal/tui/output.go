// Package tui provides terminal output for the task CLI: a styled writer for
// terminals, a JSON writer for scripts, and the shared lipgloss styles.
package tui

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output formats accepted by NewOutput.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output provides methods for structured output to a terminal.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error message with its suggested action, if any.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Lines prints already rendered lines.
	Lines(lines []string)
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
}

// NewOutput creates the appropriate output based on format.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
